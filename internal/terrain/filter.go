package terrain

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrUnknownFilter is returned for an unrecognised filter kind.
	ErrUnknownFilter = errors.New("unknown heightmap filter")
	// ErrInvalidFilter is returned for a filter whose parameters are out of range.
	ErrInvalidFilter = errors.New("invalid heightmap filter")
)

// Filter post-processes a normalized grid in place, keeping values in [0,1].
type Filter interface {
	Apply(g *HeightGrid)
}

// FilterFunc adapts a plain function to Filter.
type FilterFunc func(g *HeightGrid)

func (f FilterFunc) Apply(g *HeightGrid) { f(g) }

// FilterConfig describes one filter step.
type FilterConfig struct {
	Kind   string  `json:"kind"` // smooth, turbulence, step, ease
	Weight float64 `json:"weight,omitempty"`
	Levels int     `json:"levels,omitempty"`
	Curve  string  `json:"curve,omitempty"`
}

func buildFilters(cfgs []FilterConfig) ([]Filter, error) {
	out := make([]Filter, 0, len(cfgs))
	for _, c := range cfgs {
		switch c.Kind {
		case "smooth":
			if !(c.Weight > -1) {
				return nil, fmt.Errorf("%w: smooth weight %g must be above -1", ErrInvalidFilter, c.Weight)
			}
			out = append(out, Smooth(c.Weight))
		case "turbulence":
			out = append(out, FilterFunc(Turbulence))
		case "step":
			out = append(out, Step(c.Levels))
		case "ease":
			curve, ok := Curves[c.Curve]
			if !ok {
				return nil, fmt.Errorf("%w: ease curve %q", ErrUnknownFilter, c.Curve)
			}
			out = append(out, Ease(curve))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, c.Kind)
		}
	}
	return out, nil
}

// Smooth replaces each cell with the mean of its 3x3 neighbourhood, blended
// with the original value: (mean + v*weight) / (1 + weight).
func Smooth(weight float64) Filter {
	return FilterFunc(func(g *HeightGrid) {
		avg := make([]float64, len(g.Values))
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				sum, n := 0.0, 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := x+dx, y+dy
						if nx < 0 || ny < 0 || nx >= g.Width || ny >= g.Height {
							continue
						}
						sum += g.Values[ny*g.Width+nx]
						n++
					}
				}
				avg[y*g.Width+x] = sum / float64(n)
			}
		}
		w := 1 / (1 + weight)
		for i := range g.Values {
			g.Values[i] = (avg[i] + g.Values[i]*weight) * w
		}
	})
}

// Turbulence folds the field around its midpoint, turning valleys into ridges.
func Turbulence(g *HeightGrid) {
	for i, v := range g.Values {
		g.Values[i] = math.Abs(v*2 - 1)
	}
}

// Step quantizes heights into terraces of equal population. levels <= 0 picks
// a count from the grid size.
func Step(levels int) Filter {
	return FilterFunc(func(g *HeightGrid) {
		n := len(g.Values)
		if n == 0 {
			return
		}
		lv := levels
		if lv <= 0 {
			lv = max(1, int(math.Floor(math.Pow(float64(n)*0.5, 0.25))))
		}
		inc := n / lv
		if inc == 0 {
			return
		}

		sorted := slices.Clone(g.Values)
		slices.Sort(sorted)

		type bucket struct{ lo, hi, avg float64 }
		buckets := make([]bucket, lv)
		for i := range buckets {
			subset := sorted[i*inc : (i+1)*inc]
			sum := 0.0
			for _, v := range subset {
				sum += v
			}
			buckets[i] = bucket{lo: subset[0], hi: subset[len(subset)-1], avg: sum / float64(len(subset))}
		}

		for i, v := range g.Values {
			assigned := false
			for _, b := range buckets {
				if v >= b.lo && v <= b.hi {
					g.Values[i] = b.avg
					assigned = true
					break
				}
			}
			if !assigned {
				g.Values[i] = buckets[lv-1].avg
			}
		}
	})
}

// Curve maps [0,1] onto [0,1].
type Curve func(x float64) float64

// Curves holds the named easing curves accepted by the "ease" filter.
var Curves = map[string]Curve{
	"linear":      func(x float64) float64 { return x },
	"ease-in":     func(x float64) float64 { return x * x },
	"ease-out":    func(x float64) float64 { return -x * (x - 2) },
	"ease-in-out": func(x float64) float64 { return x * x * (3 - 2*x) },
	"in-ease-out": func(x float64) float64 { return 0.5*math.Pow(2*x-1, 3) + 0.5 },
}

// Ease reshapes the height distribution with c.
func Ease(c Curve) Filter {
	return FilterFunc(func(g *HeightGrid) {
		for i, v := range g.Values {
			g.Values[i] = c(v)
		}
	})
}
