package game

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"heli-sim/internal/config"
	"heli-sim/internal/flight"
	"heli-sim/internal/input"
	"heli-sim/internal/world"
)

// Pose is what the presentation side reads each frame.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Velocity    mgl64.Vec3
	Direction   mgl64.Vec3
	Altitude    float64    // above the terrain under the vehicle
	Ground      mgl64.Vec3 // terrain normal under the vehicle
	Grounded    bool
}

// Session wires one world, one controller and the input snapshot they share.
type Session struct {
	World      *world.World
	Controller *flight.Controller
	Input      *input.Manager

	Paused bool
	Frames int
}

// NewSession builds the world described by cfg and spawns the vehicle on it.
func NewSession(cfg *config.Config, in *input.Manager) (*Session, error) {
	w, err := world.New(cfg.World)
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	return NewSessionWithWorld(w, cfg.Flight, in)
}

// NewSessionWithWorld spawns a vehicle on an existing world.
func NewSessionWithWorld(w *world.World, fc flight.Config, in *input.Manager) (*Session, error) {
	bounds := w.Bounds()
	ctrl, err := flight.New(fc, flight.Deps{
		Input:     in,
		Terrain:   w.Terrain(),
		Obstacles: w.Obstacles(),
		Bounds:    &bounds,
	})
	if err != nil {
		return nil, err
	}
	return &Session{World: w, Controller: ctrl, Input: in}, nil
}

// Step handles the session keys, runs one simulation update unless paused,
// then clears the per-frame input.
func (s *Session) Step(dt float64) {
	in := s.Input
	if in.JustPressed(input.ActionPause) {
		s.Paused = !s.Paused
	}
	if in.JustPressed(input.ActionReset) {
		s.Controller.Reset()
	}
	if in.JustPressed(input.ActionToggleProfiling) {
		log.Printf("profiling: %v", config.ToggleProfiling())
	}
	if !s.Paused {
		s.Controller.Update(dt)
		s.Frames++
	}
	in.PostUpdate()
}

// Pose returns the committed vehicle pose.
func (s *Session) Pose() Pose {
	c := s.Controller
	terrain := s.World.Terrain()
	p := c.Position()
	return Pose{
		Position:    p,
		Orientation: c.Orientation(),
		Velocity:    c.Velocity(),
		Direction:   c.Direction(),
		Altitude:    p.Y() - terrain.Query(p.X(), p.Z()),
		Ground:      terrain.Normal(p.X(), p.Z()),
		Grounded:    c.Grounded(),
	}
}
