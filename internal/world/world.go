// Package world builds the static flight world: terrain heightfield,
// obstacle structures and the collision index over them.
package world

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"heli-sim/internal/collision"
	"heli-sim/internal/geom"
	"heli-sim/internal/heightfield"
	"heli-sim/internal/profiling"
	"heli-sim/internal/terrain"
)

// ErrInvalidConfig wraps every world configuration error.
var ErrInvalidConfig = errors.New("invalid world config")

const (
	padRadius   = 20.0
	padHeight   = 30.0
	padLift     = 5.0 // pad center sits this far above the terrain
	padSegments = 12
	// structures keep this distance from the pad and the world edge
	structureClearance = 60.0
)

// Config describes the world to build.
type Config struct {
	Generator  terrain.GeneratorConfig `json:"generator"`
	Resolution int                     `json:"resolution"` // grid cells per side
	Size       float64                 `json:"size"`       // world footprint per side, centered on the origin
	MinHeight  float64                 `json:"minHeight"`
	MaxHeight  float64                 `json:"maxHeight"`
	Structures int                     `json:"structures"`
	SpawnPad   bool                    `json:"spawnPad"`
}

// DefaultConfig returns a 1024x1024 world over a 256x256 grid.
func DefaultConfig() Config {
	return Config{
		Generator:  terrain.DefaultGeneratorConfig(),
		Resolution: 256,
		Size:       1024,
		MinHeight:  -100,
		MaxHeight:  200,
		Structures: 0,
		SpawnPad:   true,
	}
}

// Validate checks the sizes and height limits.
func (c Config) Validate() error {
	switch {
	case c.Resolution < 2:
		return fmt.Errorf("%w: resolution %d below 2", ErrInvalidConfig, c.Resolution)
	case !(c.Size > 0):
		return fmt.Errorf("%w: size %g", ErrInvalidConfig, c.Size)
	case !(c.MaxHeight > c.MinHeight):
		return fmt.Errorf("%w: height limits [%g,%g]", ErrInvalidConfig, c.MinHeight, c.MaxHeight)
	case c.Structures < 0:
		return fmt.Errorf("%w: negative structure count", ErrInvalidConfig)
	}
	return nil
}

// World is immutable once New returns.
type World struct {
	cfg        Config
	bounds     geom.WorldBounds
	terrain    *heightfield.Sampler
	obstacles  *collision.World
	structures []Structure
	spawn      mgl64.Vec3
}

// New generates the terrain, places the obstacles and indexes them.
// It blocks until the world is complete.
func New(cfg Config) (*World, error) {
	defer profiling.Track("world.New")()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gen, err := terrain.NewGenerator(cfg.Generator)
	if err != nil {
		return nil, fmt.Errorf("terrain generator: %w", err)
	}

	start := time.Now()
	grid := gen.Generate(cfg.Resolution, cfg.Resolution)
	log.Printf("world: generated %dx%d %s terrain (seed %d) in %v",
		cfg.Resolution, cfg.Resolution, kindName(cfg.Generator.Kind), cfg.Generator.Seed, time.Since(start))

	bounds := geom.CenteredBounds(cfg.Size, cfg.Size, cfg.MinHeight, cfg.MaxHeight)
	sampler, err := heightfield.New(grid, bounds)
	if err != nil {
		return nil, err
	}

	w := &World{cfg: cfg, bounds: bounds, terrain: sampler}

	ground := sampler.Query(0, 0)
	w.spawn = mgl64.Vec3{0, ground, 0}
	if cfg.SpawnPad {
		center := r3.Vector{Y: ground + padLift}
		w.structures = append(w.structures, Structure{
			Kind:      SpawnPad,
			Position:  geom.FromR3(center),
			Triangles: geom.Cylinder(center, padRadius, padRadius, padHeight, padSegments, false),
		})
		w.spawn[1] = center.Y + padHeight/2
	}

	w.structures = append(w.structures, placeStructures(sampler, bounds, cfg.Generator.Seed, cfg.Structures)...)

	var tris []geom.Triangle
	for _, s := range w.structures {
		tris = append(tris, s.Triangles...)
	}
	start = time.Now()
	w.obstacles = collision.Build(tris)
	log.Printf("world: indexed %d obstacle triangles from %d structures in %v",
		w.obstacles.Len(), len(w.structures), time.Since(start))

	return w, nil
}

func kindName(k string) string {
	if k == "" {
		return "fbm"
	}
	return k
}

// Bounds returns the traversable world box.
func (w *World) Bounds() geom.WorldBounds { return w.bounds }

// Terrain returns the heightfield sampler.
func (w *World) Terrain() *heightfield.Sampler { return w.terrain }

// Obstacles returns the collision index over all structures.
func (w *World) Obstacles() *collision.World { return w.obstacles }

// Grid returns the normalized terrain grid.
func (w *World) Grid() *terrain.HeightGrid { return w.terrain.Grid() }

// Structures returns the placed obstacles, spawn pad first when present.
func (w *World) Structures() []Structure { return w.structures }

// Spawn returns the landing point at the origin: the top of the spawn pad,
// or the bare terrain without one.
func (w *World) Spawn() mgl64.Vec3 { return w.spawn }

// Seed returns the terrain seed.
func (w *World) Seed() int64 { return w.cfg.Generator.Seed }

// Config returns the configuration the world was built from.
func (w *World) Config() Config { return w.cfg }
