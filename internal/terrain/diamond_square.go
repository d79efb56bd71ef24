package terrain

import "math/rand/v2"

// DiamondSquare is midpoint-displacement synthesis on a (2^n)+1 grid.
// Its output is added into a base grid so it can be layered over other passes.
type DiamondSquare struct {
	seed      int64
	roughness float64
}

// NewDiamondSquare returns a generator whose displacement starts at roughness
// and halves every iteration.
func NewDiamondSquare(seed int64, roughness float64) *DiamondSquare {
	if roughness <= 0 {
		roughness = 1
	}
	return &DiamondSquare{seed: seed, roughness: roughness}
}

// Generate runs one pass over a zeroed grid and normalizes the result.
func (d *DiamondSquare) Generate(width, height int) *HeightGrid {
	g := NewHeightGrid(width, height)
	d.AddTo(g, 1)
	g.Normalize()
	return g
}

// AddTo adds the displacement field, scaled by amplitude, into base.
// Each call reseeds, so repeated calls add the same field.
func (d *DiamondSquare) AddTo(base *HeightGrid, amplitude float64) {
	if base.Width == 0 || base.Height == 0 {
		return
	}
	rng := rand.New(rand.NewPCG(uint64(d.seed), 0x5851F42D4C957F2D))

	segments := ceilPowerOfTwo(max(base.Width, base.Height))
	size := segments + 1
	hm := make([]float64, size*size)
	at := func(x, y int) *float64 { return &hm[x*size+y] }

	smoothing := d.roughness * amplitude
	for l := segments; l >= 2; l /= 2 {
		half := l / 2
		smoothing /= 2

		// square
		for x := 0; x < segments; x += l {
			for y := 0; y < segments; y += l {
				r := rng.Float64()*smoothing*2 - smoothing
				avg := (*at(x, y) + *at(x+l, y) + *at(x, y+l) + *at(x+l, y+l)) * 0.25
				*at(x+half, y+half) = avg + r
			}
		}

		// diamond, wrapping at the edges
		for x := 0; x < segments; x += half {
			for y := (x + half) % l; y < segments; y += l {
				r := rng.Float64()*smoothing*2 - smoothing
				avg := *at((x-half+size)%size, y) +
					*at((x+half)%size, y) +
					*at(x, (y+half)%size) +
					*at(x, (y-half+size)%size)
				avg = avg*0.25 + r
				*at(x, y) = avg
				if x == 0 {
					*at(segments, y) = avg
				}
				if y == 0 {
					*at(x, segments) = avg
				}
			}
		}
	}

	for i := 0; i < base.Width; i++ {
		for j := 0; j < base.Height; j++ {
			base.Values[j*base.Width+i] += *at(i, j)
		}
	}
}

// ceilPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func ceilPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
