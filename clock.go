package canvasanim

import "time"

// Clock is a monotonic time source. The scheduler samples it at submission
// time and, through Update, once per frame.
type Clock interface {
	Now() time.Duration
}

// monoClock measures time since its creation with the runtime's monotonic
// clock.
type monoClock struct {
	origin time.Time
}

func newMonoClock() *monoClock {
	return &monoClock{origin: time.Now()}
}

func (c *monoClock) Now() time.Duration {
	return time.Since(c.origin)
}

// ManualClock is a Clock advanced explicitly. It is used by tests, scripted
// playback and the ebiten Driver, which steps it by one frame per update.
type ManualClock struct {
	now time.Duration
}

// Now returns the current time.
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Set moves the clock to t. Moving backwards is ignored.
func (c *ManualClock) Set(t time.Duration) {
	if t > c.now {
		c.now = t
	}
}

// Advance moves the clock forward by d and returns the new time.
func (c *ManualClock) Advance(d time.Duration) time.Duration {
	if d > 0 {
		c.now += d
	}
	return c.now
}
