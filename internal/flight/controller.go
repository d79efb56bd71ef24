// Package flight integrates helicopter input into a committed vehicle pose,
// resolving the result against obstacles, terrain and the world box.
package flight

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"heli-sim/internal/collision"
	"heli-sim/internal/geom"
	"heli-sim/internal/input"
	"heli-sim/internal/profiling"
)

// HeightSource answers terrain heights. Implementations return -Inf or a value
// far below the vehicle where no floor should apply.
type HeightSource interface {
	Query(x, z float64) float64
}

// HeightFunc adapts a plain function to HeightSource.
type HeightFunc func(x, z float64) float64

func (f HeightFunc) Query(x, z float64) float64 { return f(x, z) }

// ObstacleSource reports the deepest contact of a sphere with static geometry.
type ObstacleSource interface {
	SphereIntersect(center mgl64.Vec3, radius float64) (collision.Manifold, bool)
}

// Input is the read-only view of the frame's input snapshot.
type Input interface {
	IsActive(a input.Action) bool
	MouseDelta() (dx, dy float64)
}

// Deps are the collaborators the controller reads each frame. Any of them may
// be nil, which turns the corresponding stage into a pass-through.
type Deps struct {
	Input     Input
	Terrain   HeightSource
	Obstacles ObstacleSource
	Bounds    *geom.WorldBounds
}

// Contact flags record which collision stages fired during the last Update.
type Contact uint8

const (
	ContactObstacle Contact = 1 << iota
	ContactTerrain
	ContactBoundary
)

// Euler is the accumulated control input, applied in yaw, pitch, roll order.
type Euler struct {
	Pitch, Yaw, Roll float64
}

// Quat converts the angles to an orientation: yaw about Y, then pitch about
// X, then roll about Z, all in the rotating frame.
func (e Euler) Quat() mgl64.Quat {
	qy := mgl64.QuatRotate(e.Yaw, mgl64.Vec3{0, 1, 0})
	qx := mgl64.QuatRotate(e.Pitch, mgl64.Vec3{1, 0, 0})
	qz := mgl64.QuatRotate(e.Roll, mgl64.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz)
}

// State is a snapshot of the vehicle.
type State struct {
	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Acceleration mgl64.Vec3
	Orientation  mgl64.Quat
	Target       Euler
	Contacts     Contact
}

// Controller owns the vehicle state. It is not safe for concurrent use.
type Controller struct {
	cfg  Config
	deps Deps

	spawn    mgl64.Vec3
	hasSpawn bool

	state State
}

// Option customises a Controller at construction.
type Option func(*Controller)

// WithSpawn fixes the reset position instead of deriving it from the terrain.
func WithSpawn(pos mgl64.Vec3) Option {
	return func(c *Controller) {
		c.spawn = pos
		c.hasSpawn = true
	}
}

// New validates cfg and returns a controller already reset to its spawn.
func New(cfg Config, deps Deps, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{cfg: cfg, deps: deps}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset()
	return c, nil
}

// Config returns the handling constants.
func (c *Controller) Config() Config { return c.cfg }

// Reset returns the vehicle to its spawn, level and at rest.
func (c *Controller) Reset() {
	c.state = State{
		Position:    c.spawnPoint(),
		Orientation: mgl64.QuatIdent(),
	}
}

func (c *Controller) spawnPoint() mgl64.Vec3 {
	if c.hasSpawn {
		return c.spawn
	}
	ground := 0.0
	if h, ok := c.groundAt(0, 0); ok {
		ground = h
	}
	return mgl64.Vec3{0, ground + c.cfg.SpawnClearance + c.cfg.Radius, 0}
}

// Teleport places the vehicle at pos moving at vel, keeping its orientation.
func (c *Controller) Teleport(pos, vel mgl64.Vec3) {
	c.state.Position = pos
	c.state.Velocity = vel
}

func (c *Controller) Position() mgl64.Vec3    { return c.state.Position }
func (c *Controller) Velocity() mgl64.Vec3    { return c.state.Velocity }
func (c *Controller) Orientation() mgl64.Quat { return c.state.Orientation }
func (c *Controller) State() State            { return c.state }

// Direction returns the unit forward vector, -Z in the vehicle frame.
func (c *Controller) Direction() mgl64.Vec3 {
	return c.state.Orientation.Rotate(mgl64.Vec3{0, 0, -1})
}

// Grounded reports whether the last Update rested the vehicle on terrain or
// on a floor-like obstacle.
func (c *Controller) Grounded() bool {
	return c.state.Contacts&(ContactTerrain|ContactObstacle) != 0 && c.state.Velocity.Y() == 0
}

func (c *Controller) active(a input.Action) bool {
	return c.deps.Input != nil && c.deps.Input.IsActive(a)
}

func (c *Controller) groundAt(x, z float64) (float64, bool) {
	if c.deps.Terrain == nil {
		return 0, false
	}
	h := c.deps.Terrain.Query(x, z)
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, false
	}
	return h, true
}

// Update advances the vehicle by dt seconds. The caller clamps dt.
func (c *Controller) Update(dt float64) {
	defer profiling.Track("flight.Update")()
	cfg := &c.cfg
	s := &c.state
	frames := dt * 60

	// 1. rotational input: pointer deltas are per-frame, yaw keys are per-second
	if c.deps.Input != nil {
		dx, dy := c.deps.Input.MouseDelta()
		if dx != 0 || dy != 0 {
			s.Target.Pitch -= dy * cfg.MouseSensitivity
			s.Target.Roll -= dx * cfg.MouseSensitivity
			s.Target.Pitch = mgl64.Clamp(s.Target.Pitch, -cfg.PitchLimit, cfg.PitchLimit)
		}
	}
	yaw := 0.0
	if c.active(input.ActionYawLeft) {
		yaw++
	}
	if c.active(input.ActionYawRight) {
		yaw--
	}
	s.Target.Yaw += yaw * cfg.YawRate * frames

	// 2. ease towards the target; a per-frame lerp, not a damped spring
	s.Orientation = slerp(s.Orientation, s.Target.Quat(), cfg.RotationalLerp*frames)

	// 3. forces
	s.Acceleration = mgl64.Vec3{}
	up := s.Orientation.Rotate(mgl64.Vec3{0, 1, -cfg.ForwardTilt})
	thrusting := c.active(input.ActionThrust)
	thrust := 0.0
	if thrusting {
		thrust += cfg.Thrust
	}
	if c.active(input.ActionReverse) {
		thrust -= cfg.ReverseThrust
	}
	if thrust != 0 {
		c.applyForce(up.Mul(thrust))
	}
	c.applyForce(mgl64.Vec3{0, -cfg.Gravity * cfg.Mass, 0})

	// 4. semi-implicit Euler with frame-rate independent damping
	s.Velocity = s.Velocity.Add(s.Acceleration.Mul(dt))
	s.Velocity = s.Velocity.Mul(math.Pow(cfg.LinearDamping, frames))

	// 5. tentative position
	next := s.Position.Add(s.Velocity.Mul(dt))
	s.Contacts = 0

	// 6a. obstacles
	if c.deps.Obstacles != nil {
		if m, ok := c.deps.Obstacles.SphereIntersect(next, cfg.Radius); ok {
			s.Contacts |= ContactObstacle
			next = next.Add(m.Normal.Mul(m.Depth))
			s.Velocity = s.Velocity.Sub(m.Normal.Mul(s.Velocity.Dot(m.Normal) * (1 + cfg.ObstacleRestitution)))
			if m.Normal.Y() > cfg.FloorNormalY {
				damp := math.Exp(-cfg.ObstacleFriction * dt)
				s.Velocity[0] *= damp
				s.Velocity[2] *= damp
				if math.Abs(s.Velocity.Y()) < cfg.RestSpeed && !thrusting && m.Normal.Y() > cfg.FlatFloorNormalY {
					s.Velocity[1] = 0
				}
			}
		}
	}

	// 6b. terrain, applied even when an obstacle already moved the vehicle
	if h, ok := c.groundAt(next.X(), next.Z()); ok {
		floor := h + cfg.Radius
		if next.Y() < floor {
			s.Contacts |= ContactTerrain
			next[1] = floor
			if s.Velocity.Y() < 0 {
				s.Velocity[1] *= -cfg.TerrainBounce
			}
			s.Velocity[0] *= cfg.TerrainFriction
			s.Velocity[2] *= cfg.TerrainFriction
			if thrusting && up.Y() > cfg.LiftoffUpright {
				// liftoff: keep the vertical velocity
			} else if s.Velocity.Y() < cfg.SettleSpeed {
				s.Velocity[1] = 0
			}
		}
	}

	// 6c. world box, one side per axis
	if b := c.deps.Bounds; b != nil {
		r := cfg.Radius
		for _, axis := range [2]int{0, 2} {
			lo, hi := b.MinX, b.MaxX
			if axis == 2 {
				lo, hi = b.MinZ, b.MaxZ
			}
			if next[axis] > hi-r {
				next[axis] = hi - r
				s.Velocity[axis] *= -cfg.BoundaryRestitution
				s.Contacts |= ContactBoundary
			} else if next[axis] < lo+r {
				next[axis] = lo + r
				s.Velocity[axis] *= -cfg.BoundaryRestitution
				s.Contacts |= ContactBoundary
			}
		}
	}

	// 7. commit
	s.Position = next
}

func (c *Controller) applyForce(f mgl64.Vec3) {
	c.state.Acceleration = c.state.Acceleration.Add(f.Mul(1 / c.cfg.Mass))
}

// slerp interpolates along the shorter arc and renormalizes the result.
func slerp(from, to mgl64.Quat, t float64) mgl64.Quat {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to.Normalize()
	}
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl64.QuatSlerp(from, to, t).Normalize()
}
