package random

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSameSeedSameSequence(t *testing.T) {
	t.Parallel()

	a := NewSource("create user")
	b := NewSource("create user")

	for i := 0; i < 100; i++ {
		require.Equal(t, a.NextInt(0, 1_000_000), b.NextInt(0, 1_000_000))
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	t.Parallel()

	a := NewSource("create user")
	b := NewSource("delete user")

	require.NotEqual(t, a.NextString(32), b.NextString(32))
}

func TestNextUUIDIsDeterministicV4(t *testing.T) {
	t.Parallel()

	a := NewSource("scenario")
	b := NewSource("scenario")

	ua := a.NextUUID()
	ub := b.NextUUID()

	require.Equal(t, ua, ub)
	require.Equal(t, uuid.Version(4), ua.Version())
}

func TestNextStringCharsetAndLength(t *testing.T) {
	t.Parallel()

	s := NewSource("charset")
	out := s.NextString(64)
	require.Len(t, out, 64)
	for _, r := range out {
		require.Contains(t, alphanumeric, string(r))
	}

	require.Empty(t, s.NextString(0))
	require.Empty(t, s.NextString(-3))
}

func TestNextHexCharset(t *testing.T) {
	t.Parallel()

	s := NewSource("hex")
	out := s.NextHex(40)
	require.Len(t, out, 40)
	for _, r := range out {
		require.Contains(t, hexdigits, string(r))
	}
}

func TestNextIntRange(t *testing.T) {
	t.Parallel()

	s := NewSource("range")
	for i := 0; i < 1000; i++ {
		v := s.NextInt(10, 20)
		require.GreaterOrEqual(t, v, int64(10))
		require.Less(t, v, int64(20))
	}
}

func TestChoose(t *testing.T) {
	t.Parallel()

	s := NewSource("choose")

	_, ok := Choose(s, []string(nil))
	require.False(t, ok)

	items := []string{"a", "b", "c"}
	v, ok := Choose(s, items)
	require.True(t, ok)
	require.Contains(t, items, v)
}

func TestShuffleIsDeterministic(t *testing.T) {
	t.Parallel()

	a := NewSource("shuffle")
	b := NewSource("shuffle")

	itemsA := []int{1, 2, 3, 4, 5, 6, 7, 8}
	itemsB := []int{1, 2, 3, 4, 5, 6, 7, 8}
	Shuffle(a, itemsA)
	Shuffle(b, itemsB)

	require.Equal(t, itemsA, itemsB)
	require.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, itemsA)
}
