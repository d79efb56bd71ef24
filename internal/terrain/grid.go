package terrain

import "math"

// HeightGrid is a row-major grid of heights. Values[y*Width+x] holds cell (x, y).
// Generators leave every value in [0,1].
type HeightGrid struct {
	Width  int
	Height int
	Values []float64
}

// NewHeightGrid allocates a zeroed grid. Negative sizes yield an empty grid.
func NewHeightGrid(width, height int) *HeightGrid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &HeightGrid{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// Len returns the number of cells.
func (g *HeightGrid) Len() int { return len(g.Values) }

// At returns the value at cell (x, y). Out-of-range cells are clamped to the edge.
func (g *HeightGrid) At(x, y int) float64 {
	x = clampInt(x, 0, g.Width-1)
	y = clampInt(y, 0, g.Height-1)
	return g.Values[y*g.Width+x]
}

// Set writes cell (x, y); out-of-range writes are ignored.
func (g *HeightGrid) Set(x, y int, v float64) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return
	}
	g.Values[y*g.Width+x] = v
}

// MinMax returns the smallest and largest values. An empty grid returns (0, 0).
func (g *HeightGrid) MinMax() (lo, hi float64) {
	if len(g.Values) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range g.Values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Normalize remaps every value linearly from [min,max] to [0,1].
// A flat grid becomes a constant 0.5.
func (g *HeightGrid) Normalize() {
	lo, hi := g.MinMax()
	normalizeRange(g.Values, lo, hi)
}

func normalizeRange(values []float64, lo, hi float64) {
	if hi == lo {
		for i := range values {
			values[i] = 0.5
		}
		return
	}
	span := hi - lo
	for i, v := range values {
		values[i] = (v - lo) / span
	}
}

// Clamp01 clips every value into [0,1]. NaN becomes 0.
func (g *HeightGrid) Clamp01() {
	for i, v := range g.Values {
		if math.IsNaN(v) {
			g.Values[i] = 0
			continue
		}
		g.Values[i] = math.Max(0, math.Min(1, v))
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
