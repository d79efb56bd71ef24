package game

import (
	"log"
	"time"

	"heli-sim/internal/profiling"
)

// Frame is the presentation side of the loop: a window, or nothing at all.
type Frame interface {
	ShouldClose() bool
	// Poll delivers pending input events into the session's input manager.
	Poll()
	Present(p Pose)
}

// Loop calls Session.Step exactly once per presented frame.
type Loop struct {
	Session *Session
	Frame   Frame
	Clock   *Clock
	Limiter *FPSLimiter

	// SlowFrame is the processing time above which a frame is logged.
	SlowFrame time.Duration
}

// NewLoop returns a loop with the runtime clock and limiter.
func NewLoop(s *Session, f Frame) *Loop {
	return &Loop{
		Session:   s,
		Frame:     f,
		Clock:     NewClock(),
		Limiter:   NewFPSLimiter(),
		SlowFrame: 50 * time.Millisecond,
	}
}

// Run ticks until the frame asks to close.
func (l *Loop) Run() {
	l.Clock.Reset()
	for !l.Frame.ShouldClose() {
		l.Tick()
	}
}

// Tick runs one frame: poll, step, present, pace.
func (l *Loop) Tick() {
	profiling.ResetFrame()
	start := time.Now()

	l.Frame.Poll()
	dt := l.Clock.Tick()
	l.Session.Step(dt)
	l.Frame.Present(l.Session.Pose())

	if d := time.Since(start); l.SlowFrame > 0 && d > l.SlowFrame && profiling.Enabled() {
		log.Printf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
	}

	l.Limiter.Wait(l.Session.Paused)
}
