package terrain

import "math"

// Fbm sums octaves of a base noise primitive (fractal Brownian motion).
type Fbm struct {
	src NoiseSource
	cfg NoiseConfig
}

// NewFbm validates cfg eagerly so a bad config never reaches generation.
func NewFbm(src NoiseSource, cfg NoiseConfig) (*Fbm, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Fbm{src: src, cfg: cfg}, nil
}

// Config returns the validated noise parameters.
func (f *Fbm) Config() NoiseConfig { return f.cfg }

// sample returns the raw, un-normalized fBm value at grid cell (x, y).
func (f *Fbm) sample(x, y int) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	for range f.cfg.Octaves {
		sx := (float64(x) + f.cfg.OffsetX) / f.cfg.Scale * frequency
		sy := (float64(y) + f.cfg.OffsetY) / f.cfg.Scale * frequency
		sum += f.src.Noise2D(sx, sy) * amplitude
		amplitude *= f.cfg.Persistence
		frequency *= f.cfg.Lacunarity
	}
	return sum
}

// Generate fills a fresh grid and normalizes it to [0,1].
// When the noise is flat every cell is 0.5.
func (f *Fbm) Generate(width, height int) *HeightGrid {
	g := NewHeightGrid(width, height)
	lo, hi := math.Inf(1), math.Inf(-1)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			v := f.sample(x, y)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
			g.Values[y*g.Width+x] = v
		}
	}
	normalizeRange(g.Values, lo, hi)
	return g
}

// AddTo adds a normalized fBm pass scaled by amplitude into base.
func (f *Fbm) AddTo(base *HeightGrid, amplitude float64) {
	pass := f.Generate(base.Width, base.Height)
	for i, v := range pass.Values {
		base.Values[i] += v * amplitude
	}
}
