package terrain

import (
	"errors"
	"fmt"

	"heli-sim/internal/profiling"
)

// ErrUnknownGenerator is returned for an unrecognised generator kind.
var ErrUnknownGenerator = errors.New("unknown heightmap generator")

// HeightmapGenerator produces a normalized height grid. Implementations are
// deterministic for a given seed and configuration.
type HeightmapGenerator interface {
	Generate(width, height int) *HeightGrid
}

// Adder contributes a pass into an existing grid.
type Adder interface {
	AddTo(base *HeightGrid, amplitude float64)
}

// Compile-time interface checks.
var (
	_ HeightmapGenerator = (*Fbm)(nil)
	_ HeightmapGenerator = (*DiamondSquare)(nil)
	_ HeightmapGenerator = (*Layered)(nil)
	_ HeightmapGenerator = (*Pipeline)(nil)
	_ Adder              = (*Fbm)(nil)
	_ Adder              = (*DiamondSquare)(nil)
)

// Layer is one weighted pass of a Layered generator.
type Layer struct {
	Pass      Adder
	Amplitude float64
}

// Layered sums several passes into one grid, then normalizes.
type Layered struct {
	Layers []Layer
}

func (l *Layered) Generate(width, height int) *HeightGrid {
	g := NewHeightGrid(width, height)
	for _, layer := range l.Layers {
		layer.Pass.AddTo(g, layer.Amplitude)
	}
	g.Normalize()
	return g
}

// Pipeline runs a generator and then its filters in order. The result is
// clipped to [0,1] whatever the filters did.
type Pipeline struct {
	Source  HeightmapGenerator
	Filters []Filter
}

func (p *Pipeline) Generate(width, height int) *HeightGrid {
	defer profiling.Track("terrain.Generate")()
	g := p.Source.Generate(width, height)
	for _, f := range p.Filters {
		f.Apply(g)
	}
	g.Clamp01()
	return g
}

// GeneratorConfig selects and parameterises a generator.
type GeneratorConfig struct {
	Kind             string         `json:"kind"`  // fbm, diamond-square, perlin-diamond
	Noise            string         `json:"noise"` // perlin, value
	Seed             int64          `json:"seed"`
	Fbm              NoiseConfig    `json:"fbm"`
	Roughness        float64        `json:"roughness"`
	DiamondAmplitude float64        `json:"diamondAmplitude"` // weight of the diamond-square pass in perlin-diamond
	Filters          []FilterConfig `json:"filters"`
}

// DefaultGeneratorConfig returns an fBm generator over perlin noise.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Kind:             "fbm",
		Noise:            "perlin",
		Seed:             42,
		Fbm:              DefaultNoiseConfig(),
		Roughness:        1,
		DiamondAmplitude: 0.25,
	}
}

// NewGenerator builds the generator described by cfg, validating it up front.
func NewGenerator(cfg GeneratorConfig) (HeightmapGenerator, error) {
	filters, err := buildFilters(cfg.Filters)
	if err != nil {
		return nil, err
	}

	var src HeightmapGenerator
	switch cfg.Kind {
	case "", "fbm":
		fbm, err := newFbmFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		src = fbm
	case "diamond-square":
		src = NewDiamondSquare(cfg.Seed, cfg.Roughness)
	case "perlin-diamond":
		fbm, err := newFbmFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		src = &Layered{Layers: []Layer{
			{Pass: fbm, Amplitude: 1},
			{Pass: NewDiamondSquare(cfg.Seed+1, cfg.Roughness), Amplitude: cfg.DiamondAmplitude},
		}}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, cfg.Kind)
	}

	return &Pipeline{Source: src, Filters: filters}, nil
}

func newFbmFromConfig(cfg GeneratorConfig) (*Fbm, error) {
	noise, err := NewNoiseSource(cfg.Noise, cfg.Seed)
	if err != nil {
		return nil, err
	}
	fbm, err := NewFbm(noise, cfg.Fbm)
	if err != nil {
		return nil, fmt.Errorf("fbm: %w", err)
	}
	return fbm, nil
}
