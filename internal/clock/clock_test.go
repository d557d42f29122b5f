package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClockStartsAtZero(t *testing.T) {
	t.Parallel()

	c := New()
	require.Equal(t, time.Duration(0), c.Current())
	require.Equal(t, time.Unix(0, 0).UTC(), c.Now())
}

func TestAdvanceAccumulates(t *testing.T) {
	t.Parallel()

	c := New()
	start := c.Now()

	c.Advance(time.Second)
	require.Equal(t, time.Second, c.Elapsed(start))

	c.Advance(500 * time.Millisecond)
	require.Equal(t, 1500*time.Millisecond, c.Elapsed(start))
}

func TestAdvanceIgnoresNegative(t *testing.T) {
	t.Parallel()

	c := New()
	c.Advance(time.Second)
	c.Advance(-time.Hour)
	require.Equal(t, time.Second, c.Current())
}

func TestSetAndReset(t *testing.T) {
	t.Parallel()

	c := New()
	c.Set(100 * time.Second)
	require.Equal(t, 100*time.Second, c.Current())

	c.Reset()
	require.Equal(t, time.Duration(0), c.Current())
}

func TestElapsedNeverNegative(t *testing.T) {
	t.Parallel()

	c := New()
	c.Advance(time.Minute)
	future := c.Now().Add(time.Hour)
	require.Equal(t, time.Duration(0), c.Elapsed(future))
}
