package hugecache

import "time"

// Clock is the time source the cache measures its adaptive-sizing windows
// against. Production code uses RealClock; tests inject a FakeClock so
// window math is deterministic. All time-series computations inside the
// cache are done in ticks, never wall time directly.
type Clock interface {
	// Now returns the current tick count.
	Now() int64
	// Freq returns ticks per second.
	Freq() int64
}

// RealClock is a Clock backed by the monotonic wall clock, with one tick per
// nanosecond.
type RealClock struct{ start time.Time }

// NewRealClock constructs a RealClock anchored at the current time.
func NewRealClock() *RealClock { return &RealClock{start: time.Now()} }

// Now returns nanoseconds elapsed since the clock was constructed.
func (c *RealClock) Now() int64 { return int64(time.Since(c.start)) }

// Freq returns one tick per nanosecond.
func (c *RealClock) Freq() int64 { return int64(time.Second) }

// FakeClock is a manually-advanced Clock for deterministic tests.
type FakeClock struct {
	ticks int64
	freq  int64
}

// NewFakeClock constructs a FakeClock at one tick per nanosecond (a Freq of
// int64(time.Second)), which lets tests advance the clock with ordinary
// durations.
func NewFakeClock() *FakeClock {
	return &FakeClock{freq: int64(time.Second)}
}

// Now returns the current tick count.
func (c *FakeClock) Now() int64 { return c.ticks }

// Freq returns ticks per second.
func (c *FakeClock) Freq() int64 { return c.freq }

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.ticks += int64(d)
}

// ticksFor converts a duration to a tick count at clk's frequency.
func ticksFor(clk Clock, d time.Duration) int64 {
	return int64(d.Seconds() * float64(clk.Freq()))
}
