// Package timer provides the countdown clock for the session engine.
//
// The clock owns no timers of its own: the tick source is external (the TUI
// schedules one message per second, tests call Tick in a loop), which keeps
// the countdown deterministic under test. Each Tick decrements the remaining
// seconds by exactly one while running, down to a floor of zero.
package timer

// Clock is a single-owner countdown with start/pause/reset semantics
type Clock struct {
	seeded    int
	remaining int
	running   bool
}

// New returns a stopped clock seeded with the given number of seconds
func New(seconds int) *Clock {
	c := &Clock{}
	c.Reset(seconds)
	return c
}

// Reset stops the clock and reseeds it. Negative seeds clamp to zero.
func (c *Clock) Reset(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	c.seeded = seconds
	c.remaining = seconds
	c.running = false
}

// Start begins (or resumes) ticking from the current remaining value
func (c *Clock) Start() {
	if c.remaining == 0 {
		return
	}
	c.running = true
}

// Pause stops ticking without resetting the remaining value
func (c *Clock) Pause() {
	c.running = false
}

// Tick advances the countdown by one second. It returns true exactly once,
// on the tick that exhausts the clock; the clock stops itself at that point
// and never auto-restarts. Ticks while stopped are no-ops, so a tick that
// fires after a pause or reset cannot corrupt state.
func (c *Clock) Tick() bool {
	if !c.running {
		return false
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.running = false
		return true
	}
	return false
}

// Remaining returns the seconds left on the countdown
func (c *Clock) Remaining() int {
	return c.remaining
}

// Seeded returns the seconds the clock was last reseeded with
func (c *Clock) Seeded() int {
	return c.seeded
}

// Running reports whether the clock is ticking
func (c *Clock) Running() bool {
	return c.running
}

// Progress returns elapsed fraction in [0, 1] for rendering a progress bar
func (c *Clock) Progress() float64 {
	if c.seeded <= 0 {
		return 1
	}
	return float64(c.seeded-c.remaining) / float64(c.seeded)
}
