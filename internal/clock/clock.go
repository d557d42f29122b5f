// Package clock provides the virtualized time source shared by one run.
//
// Time never advances on its own: it moves only when a step explicitly
// requests an advance, so time-dependent assertions are reproducible and
// simulated duration is decoupled from wall-clock duration.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock is an explicitly-advanced virtual clock. The zero value is not
// usable; construct with New. Exactly one instance exists per run and is
// handed to every handler invocation.
type Clock struct {
	nanos atomic.Int64
	epoch time.Time
}

// New returns a clock positioned at the Unix epoch with zero offset.
func New() *Clock {
	return &Clock{epoch: time.Unix(0, 0).UTC()}
}

// Now returns the current virtual time.
func (c *Clock) Now() time.Time {
	return c.epoch.Add(time.Duration(c.nanos.Load()))
}

// Current returns the total simulated duration since the clock started.
func (c *Clock) Current() time.Duration {
	return time.Duration(c.nanos.Load())
}

// Elapsed returns the simulated duration since the given instant.
func (c *Clock) Elapsed(since time.Time) time.Duration {
	d := c.Now().Sub(since)
	if d < 0 {
		return 0
	}
	return d
}

// Advance moves the clock forward. Negative durations are ignored.
func (c *Clock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.nanos.Add(int64(d))
}

// Set positions the clock at an absolute offset from its epoch.
func (c *Clock) Set(d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.nanos.Store(int64(d))
}

// Reset returns the clock to zero offset.
func (c *Clock) Reset() {
	c.nanos.Store(0)
}
