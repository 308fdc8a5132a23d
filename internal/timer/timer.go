// Package timer provides the CHIP-8 delay and sound timers.
// Both decrement towards zero at 60 Hz measured against the
// wall clock, independent of how fast instructions execute.
package timer

import "time"

// tickInterval is the 60 Hz decrement cadence.
const tickInterval = time.Second / 60

// Controller holds the delay and sound timers.
type Controller struct {
	delay uint8
	sound uint8

	lastTick time.Time
	now      func() time.Time
}

// NewController returns a new timer controller with both timers
// at zero.
func NewController() *Controller {
	c := &Controller{
		now: time.Now,
	}
	c.lastTick = c.now()

	return c
}

// Tick decrements both timers by one if at least a 60 Hz period
// has elapsed since the last decrement. It is called once per
// emulation cycle, before fetch, so the timer cadence stays
// decoupled from the instruction cadence.
func (c *Controller) Tick() {
	t := c.now()
	if t.Sub(c.lastTick) < tickInterval {
		return
	}
	c.lastTick = t

	if c.delay > 0 {
		c.delay--
	}
	if c.sound > 0 {
		c.sound--
	}
}

// Delay returns the delay timer value.
func (c *Controller) Delay() uint8 {
	return c.delay
}

// SetDelay sets the delay timer value.
func (c *Controller) SetDelay(v uint8) {
	c.delay = v
}

// Sound returns the sound timer value.
func (c *Controller) Sound() uint8 {
	return c.sound
}

// SetSound sets the sound timer value.
func (c *Controller) SetSound(v uint8) {
	c.sound = v
}
