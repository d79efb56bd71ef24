package game

import (
	"time"

	"heli-sim/internal/config"
)

// Clock measures wall time between frames and clamps it before it reaches
// the simulation, so a stalled frame never becomes one huge step.
type Clock struct {
	now      func() time.Time
	maxDelta func() float64
	last     time.Time
}

// NewClock returns a clock using the runtime max frame delta.
func NewClock() *Clock {
	return &Clock{now: time.Now, maxDelta: config.GetMaxFrameDelta}
}

// Tick returns the clamped seconds since the previous Tick. The first call
// returns 0.
func (c *Clock) Tick() float64 {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	return min(dt, c.maxDelta())
}

// Reset forgets the previous frame, e.g. after a blocking load.
func (c *Clock) Reset() { c.last = time.Time{} }
