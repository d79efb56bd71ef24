// Package heightfield answers continuous terrain-height queries over a
// normalized height grid.
package heightfield

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"heli-sim/internal/geom"
	"heli-sim/internal/terrain"
)

var (
	ErrEmptyGrid        = errors.New("heightfield: grid is empty")
	ErrGridSize         = errors.New("heightfield: grid values do not match its size")
	ErrDegenerateBounds = errors.New("heightfield: degenerate world bounds")
)

// Sampler maps world (x, z) onto a HeightGrid spread over WorldBounds.
// Grid column 0 sits at MinX; grid row 0 sits at MaxZ.
type Sampler struct {
	grid   *terrain.HeightGrid
	bounds geom.WorldBounds
}

// New takes ownership of grid. The grid must not be modified afterwards.
func New(grid *terrain.HeightGrid, bounds geom.WorldBounds) (*Sampler, error) {
	if grid == nil || grid.Width == 0 || grid.Height == 0 {
		return nil, ErrEmptyGrid
	}
	if len(grid.Values) != grid.Width*grid.Height {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrGridSize, len(grid.Values), grid.Width, grid.Height)
	}
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateBounds, err)
	}
	return &Sampler{grid: grid, bounds: bounds}, nil
}

// Bounds returns the world box the grid is spread over.
func (s *Sampler) Bounds() geom.WorldBounds { return s.bounds }

// Grid returns the underlying grid. Callers must treat it as read-only.
func (s *Sampler) Grid() *terrain.HeightGrid { return s.grid }

// Contains reports whether (x, z) lies over the terrain.
func (s *Sampler) Contains(x, z float64) bool {
	return s != nil && s.bounds.ContainsXZ(x, z)
}

// Query returns the bilinearly interpolated terrain height at (x, z).
// Points outside the footprint return Bounds().MinY. A nil Sampler returns
// negative infinity so that no floor is ever enforced.
func (s *Sampler) Query(x, z float64) float64 {
	if s == nil {
		return math.Inf(-1)
	}
	b := s.bounds
	u := (x - b.MinX) / b.Width()
	v := 1 - (z-b.MinZ)/b.Depth()
	if !(u >= 0 && u <= 1 && v >= 0 && v <= 1) {
		return b.MinY
	}

	g := s.grid
	fx := u * float64(g.Width-1)
	fy := v * float64(g.Height-1)
	x0, y0 := int(fx), int(fy)
	x1, y1 := min(x0+1, g.Width-1), min(y0+1, g.Height-1)
	tx, ty := fx-float64(x0), fy-float64(y0)

	row0 := y0 * g.Width
	row1 := y1 * g.Width
	top := g.Values[row0+x0]*(1-tx) + g.Values[row0+x1]*tx
	bottom := g.Values[row1+x0]*(1-tx) + g.Values[row1+x1]*tx
	h := top*(1-ty) + bottom*ty

	return b.MinY + h*(b.MaxY-b.MinY)
}

// Normal estimates the surface normal at (x, z) by central differences over
// one grid cell.
func (s *Sampler) Normal(x, z float64) mgl64.Vec3 {
	if s == nil {
		return mgl64.Vec3{0, 1, 0}
	}
	ex := s.bounds.Width() / float64(max(1, s.grid.Width-1))
	ez := s.bounds.Depth() / float64(max(1, s.grid.Height-1))
	dx := (s.Query(x+ex, z) - s.Query(x-ex, z)) / (2 * ex)
	dz := (s.Query(x, z+ez) - s.Query(x, z-ez)) / (2 * ez)
	return mgl64.Vec3{-dx, 1, -dz}.Normalize()
}
