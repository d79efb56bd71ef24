package flight_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"heli-sim/internal/collision"
	"heli-sim/internal/flight"
	"heli-sim/internal/geom"
	"heli-sim/internal/heightfield"
	"heli-sim/internal/input"
)

const dt = 1.0 / 60

var flat = flight.HeightFunc(func(x, z float64) float64 { return 0 })

type obstacleFunc func(center mgl64.Vec3, radius float64) (collision.Manifold, bool)

func (f obstacleFunc) SphereIntersect(c mgl64.Vec3, r float64) (collision.Manifold, bool) {
	return f(c, r)
}

// floorAt is an obstacle surface filling everything below y.
func floorAt(y float64) obstacleFunc {
	return func(c mgl64.Vec3, r float64) (collision.Manifold, bool) {
		depth := y + r - c.Y()
		if depth <= 0 {
			return collision.Manifold{}, false
		}
		return collision.Manifold{Normal: mgl64.Vec3{0, 1, 0}, Depth: depth}, true
	}
}

func newController(t *testing.T, cfg flight.Config, deps flight.Deps, opts ...flight.Option) *flight.Controller {
	t.Helper()
	c, err := flight.New(cfg, deps, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestConfigValidation(t *testing.T) {
	cfg := flight.DefaultConfig()
	cfg.Mass = 0
	if _, err := flight.New(cfg, flight.Deps{}); !errors.Is(err, flight.ErrInvalidConfig) {
		t.Errorf("mass 0: expected ErrInvalidConfig, got %v", err)
	}
	cfg = flight.DefaultConfig()
	cfg.Radius = -1
	if err := cfg.Validate(); !errors.Is(err, flight.ErrInvalidConfig) {
		t.Errorf("negative radius: expected ErrInvalidConfig, got %v", err)
	}
	if err := flight.DefaultConfig().Validate(); err != nil {
		t.Errorf("default config rejected: %v", err)
	}
}

// Scenario: at rest 0.01 above flat terrain, no input, five seconds.
func TestSettlesOnFlatTerrain(t *testing.T) {
	cfg := flight.DefaultConfig()
	cfg.Mass = 1
	c := newController(t, cfg, flight.Deps{Input: input.NewManager(), Terrain: flat},
		flight.WithSpawn(mgl64.Vec3{0, cfg.Radius + 0.01, 0}))

	for i := 0; i < 300; i++ {
		c.Update(dt)
	}
	if v := c.Velocity(); v.Len() > 1e-9 {
		t.Errorf("final velocity %v, want ~0", v)
	}
	if y := c.Position().Y(); math.Abs(y-cfg.Radius) > 1e-9 {
		t.Errorf("final y = %g, want collider radius %g", y, cfg.Radius)
	}
	if !c.Grounded() {
		t.Error("vehicle should be grounded")
	}
}

// Scenario: full thrust only, mass 1, one second.
func TestThrustOvercomesGravity(t *testing.T) {
	cfg := flight.DefaultConfig()
	cfg.Mass = 1
	in := input.NewManager()
	in.Press(input.ActionThrust)
	c := newController(t, cfg, flight.Deps{Input: in, Terrain: flat},
		flight.WithSpawn(mgl64.Vec3{0, cfg.Radius, 0}))

	for i := 0; i < 60; i++ {
		c.Update(dt)
	}
	if vy := c.Velocity().Y(); !(vy > 0) {
		t.Errorf("vertical velocity %g, want > 0", vy)
	}
	if y := c.Position().Y(); !(y > cfg.Radius) {
		t.Errorf("vehicle did not leave the ground, y = %g", y)
	}
	// the tilted thrust axis pushes the level vehicle forward
	if vz := c.Velocity().Z(); !(vz < 0) {
		t.Errorf("expected forward drift along -Z, vz = %g", vz)
	}
}

// Scenario: moving at (10,0,0) across the +X wall in one step.
func TestBoundaryBounce(t *testing.T) {
	cfg := flight.DefaultConfig()
	b := geom.CenteredBounds(100, 100, -10, 10)
	start := mgl64.Vec3{b.MaxX - cfg.Radius - 0.1, 5, 0}
	c := newController(t, cfg, flight.Deps{Bounds: &b}, flight.WithSpawn(start))
	c.Teleport(start, mgl64.Vec3{10, 0, 0})

	c.Update(dt)

	if x := c.Position().X(); x != b.MaxX-cfg.Radius {
		t.Errorf("x = %g, want %g", x, b.MaxX-cfg.Radius)
	}
	vx := c.Velocity().X()
	if !(vx < 0) || math.Abs(vx) >= 10 {
		t.Errorf("vx = %g, want reversed and reduced", vx)
	}
	if c.State().Contacts&flight.ContactBoundary == 0 {
		t.Error("boundary contact not recorded")
	}
}

func TestBoundaryInvariant(t *testing.T) {
	cfg := flight.DefaultConfig()
	b := geom.CenteredBounds(40, 30, -10, 10)
	c := newController(t, cfg, flight.Deps{Terrain: flat, Bounds: &b}, flight.WithSpawn(mgl64.Vec3{0, 5, 0}))

	rng := rand.New(rand.NewSource(4))
	const eps = 1e-9
	for i := 0; i < 500; i++ {
		if i%20 == 0 {
			v := mgl64.Vec3{rng.Float64()*200 - 100, rng.Float64() * 10, rng.Float64()*200 - 100}
			c.Teleport(c.Position(), v)
		}
		c.Update(dt)
		p := c.Position()
		if p.X() < b.MinX+cfg.Radius-eps || p.X() > b.MaxX-cfg.Radius+eps ||
			p.Z() < b.MinZ+cfg.Radius-eps || p.Z() > b.MaxZ-cfg.Radius+eps {
			t.Fatalf("frame %d: position %v escaped the inset bounds", i, p)
		}
	}
}

func TestTerrainClampInvariant(t *testing.T) {
	cfg := flight.DefaultConfig()
	hills := flight.HeightFunc(func(x, z float64) float64 {
		return 8*math.Sin(x*0.05) + 5*math.Cos(z*0.07)
	})
	in := input.NewManager()
	c := newController(t, cfg, flight.Deps{Input: in, Terrain: hills})

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 900; i++ {
		if rng.Intn(4) == 0 {
			in.Press(input.ActionThrust)
		} else {
			in.Release(input.ActionThrust)
		}
		in.AddMouseDelta(rng.Float64()*40-20, rng.Float64()*40-20)
		c.Update(dt)
		in.PostUpdate()

		p := c.Position()
		if floor := hills.Query(p.X(), p.Z()) + cfg.Radius; p.Y() < floor-1e-9 {
			t.Fatalf("frame %d: y = %g below floor %g", i, p.Y(), floor)
		}
	}
}

func TestOrientationStaysUnit(t *testing.T) {
	in := input.NewManager()
	c := newController(t, flight.DefaultConfig(), flight.Deps{Input: in, Terrain: flat})

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 2000; i++ {
		in.ReleaseAll()
		switch rng.Intn(3) {
		case 0:
			in.Press(input.ActionYawLeft)
		case 1:
			in.Press(input.ActionYawRight)
		}
		in.AddMouseDelta(rng.NormFloat64()*50, rng.NormFloat64()*50)
		c.Update(rng.Float64() * 0.1)
		in.PostUpdate()

		if l := c.Orientation().Len(); math.Abs(l-1) > 1e-9 {
			t.Fatalf("frame %d: |orientation| = %.12f", i, l)
		}
	}
}

func TestPitchClamp(t *testing.T) {
	cfg := flight.DefaultConfig()
	in := input.NewManager()
	c := newController(t, cfg, flight.Deps{Input: in})

	in.AddMouseDelta(0, 1e6)
	c.Update(dt)
	if p := c.State().Target.Pitch; p != -cfg.PitchLimit {
		t.Errorf("pitch = %g, want -%g", p, cfg.PitchLimit)
	}
	in.PostUpdate()
	in.AddMouseDelta(0, -1e7)
	c.Update(dt)
	if p := c.State().Target.Pitch; p != cfg.PitchLimit {
		t.Errorf("pitch = %g, want %g", p, cfg.PitchLimit)
	}
}

func TestYawKeysTurnTarget(t *testing.T) {
	cfg := flight.DefaultConfig()
	in := input.NewManager()
	in.Press(input.ActionYawLeft)
	c := newController(t, cfg, flight.Deps{Input: in})

	for i := 0; i < 60; i++ {
		c.Update(dt)
	}
	if y := c.State().Target.Yaw; math.Abs(y-60*cfg.YawRate) > 1e-9 {
		t.Errorf("target yaw %g, want %g", y, 60*cfg.YawRate)
	}
	// turning left about +Y swings the forward vector towards -X
	if d := c.Direction(); !(d.X() < 0) {
		t.Errorf("direction %v did not turn left", d)
	}
}

func TestObstacleBounceAndRest(t *testing.T) {
	cfg := flight.DefaultConfig()
	start := mgl64.Vec3{0, 3 + cfg.Radius + 0.1, 0}
	c := newController(t, cfg, flight.Deps{Obstacles: floorAt(3)}, flight.WithSpawn(start))

	c.Teleport(start, mgl64.Vec3{4, -10, 0})
	c.Update(dt)
	if c.State().Contacts&flight.ContactObstacle == 0 {
		t.Fatal("expected an obstacle contact")
	}
	if y := c.Position().Y(); math.Abs(y-(3+cfg.Radius)) > 1e-9 {
		t.Errorf("not pushed out of the floor, y = %g", y)
	}
	if vy := c.Velocity().Y(); !(vy > 0.5) {
		t.Errorf("expected a bounce, vy = %g", vy)
	}
	if vx := c.Velocity().X(); !(vx < 4*math.Exp(-cfg.ObstacleFriction*dt)+1e-9) {
		t.Errorf("floor friction not applied, vx = %g", vx)
	}

	c.Teleport(mgl64.Vec3{0, 3 + cfg.Radius, 0}, mgl64.Vec3{0, -0.1, 0})
	c.Update(dt)
	if vy := c.Velocity().Y(); vy != 0 {
		t.Errorf("slow contact should come to rest, vy = %g", vy)
	}
}

func TestNilDependenciesAreNoOps(t *testing.T) {
	cfg := flight.DefaultConfig()
	for name, deps := range map[string]flight.Deps{
		"empty": {},
		"typed nil": {
			Terrain:   (*heightfield.Sampler)(nil),
			Obstacles: (*collision.World)(nil),
		},
	} {
		c := newController(t, cfg, deps)
		if y := c.Position().Y(); y != cfg.SpawnClearance+cfg.Radius {
			t.Errorf("%s: spawn y = %g", name, y)
		}
		for i := 0; i < 60; i++ {
			c.Update(dt)
		}
		if c.State().Contacts != 0 {
			t.Errorf("%s: contacts recorded without collaborators", name)
		}
		if !(c.Velocity().Y() < 0) {
			t.Errorf("%s: gravity not applied", name)
		}
	}
}

func TestResetRestoresSpawn(t *testing.T) {
	cfg := flight.DefaultConfig()
	ground := flight.HeightFunc(func(x, z float64) float64 { return 12 })
	in := input.NewManager()
	c := newController(t, cfg, flight.Deps{Input: in, Terrain: ground})

	want := mgl64.Vec3{0, 12 + cfg.SpawnClearance + cfg.Radius, 0}
	if c.Position() != want {
		t.Fatalf("spawn %v, want %v", c.Position(), want)
	}

	in.Press(input.ActionThrust)
	in.Press(input.ActionYawRight)
	in.AddMouseDelta(100, 50)
	for i := 0; i < 30; i++ {
		c.Update(dt)
	}
	c.Reset()

	if c.Position() != want || c.Velocity() != (mgl64.Vec3{}) {
		t.Errorf("reset left pose %v / %v", c.Position(), c.Velocity())
	}
	if c.Orientation() != mgl64.QuatIdent() || c.State().Target != (flight.Euler{}) {
		t.Errorf("reset left orientation %v", c.Orientation())
	}
}

func TestEulerQuatOrder(t *testing.T) {
	// pitch after yaw: the nose should still point along the yawed heading
	e := flight.Euler{Yaw: math.Pi / 2, Pitch: 0.3}
	fwd := e.Quat().Rotate(mgl64.Vec3{0, 0, -1})
	if !(fwd.X() < -0.9) || !(fwd.Y() > 0.25) {
		t.Errorf("forward %v, want mostly -X and pitched up", fwd)
	}
}

func BenchmarkUpdate(b *testing.B) {
	bounds := geom.CenteredBounds(1024, 1024, -100, 200)
	in := input.NewManager()
	in.Press(input.ActionThrust)
	c, _ := flight.New(flight.DefaultConfig(), flight.Deps{Input: in, Terrain: flat, Obstacles: floorAt(-50), Bounds: &bounds})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Update(dt)
	}
}
