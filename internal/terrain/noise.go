package terrain

import (
	"errors"
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
)

// ErrUnknownNoise is returned when a noise primitive name is not recognised.
var ErrUnknownNoise = errors.New("unknown noise primitive")

// NoiseSource is a seeded 2D base-noise primitive returning values roughly in [-1, 1].
// Every source owns its own state, so generators never share a permutation table.
type NoiseSource interface {
	Noise2D(x, y float64) float64
}

// NewNoiseSource builds a primitive by name.
func NewNoiseSource(kind string, seed int64) (NoiseSource, error) {
	switch kind {
	case "", "perlin":
		return NewPerlinSource(seed), nil
	case "value":
		return NewValueSource(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNoise, kind)
	}
}

// PerlinSource is single-octave gradient noise. Octave summation is done by Fbm,
// not by the perlin package.
type PerlinSource struct {
	p *perlin.Perlin
}

func NewPerlinSource(seed int64) *PerlinSource {
	return &PerlinSource{p: perlin.NewPerlin(2, 2, 1, seed)}
}

func (s *PerlinSource) Noise2D(x, y float64) float64 {
	return s.p.Noise2D(x, y)
}

// ValueSource is lattice value noise over a SplitMix64 hash with quintic fade.
type ValueSource struct {
	seed int64
}

func NewValueSource(seed int64) *ValueSource {
	return &ValueSource{seed: seed}
}

func (s *ValueSource) Noise2D(x, y float64) float64 {
	return valueNoise2D(x, y, s.seed)*2 - 1
}

// ConstantSource always returns the same value. Useful for flat fields.
type ConstantSource float64

func (c ConstantSource) Noise2D(x, y float64) float64 { return float64(c) }

// fade is the smootherstep curve 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func hash2(x, y, seed int64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

func latticeValue(x, y, seed int64) float64 {
	return float64(hash2(x, y, seed)&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// valueNoise2D returns a value in [0,1].
func valueNoise2D(x, y float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	ix, iy := int64(x0), int64(y0)

	fx := fade(x - x0)
	fy := fade(y - y0)

	v00 := latticeValue(ix, iy, seed)
	v10 := latticeValue(ix+1, iy, seed)
	v01 := latticeValue(ix, iy+1, seed)
	v11 := latticeValue(ix+1, iy+1, seed)

	return lerp(lerp(v00, v10, fx), lerp(v01, v11, fx), fy)
}
