package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// WorldBounds is the axis-aligned box of traversable world space.
// It is a plain value and is never mutated after world-init.
type WorldBounds struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
	MinY, MaxY float64
}

// CenteredBounds builds bounds for a terrain of the given footprint centered on
// the origin, with the vertical range taken from the terrain height limits.
func CenteredBounds(width, depth, minHeight, maxHeight float64) WorldBounds {
	return WorldBounds{
		MinX: -width / 2,
		MaxX: width / 2,
		MinZ: -depth / 2,
		MaxZ: depth / 2,
		MinY: minHeight,
		MaxY: maxHeight,
	}
}

// Width returns the X extent.
func (b WorldBounds) Width() float64 { return b.MaxX - b.MinX }

// Depth returns the Z extent.
func (b WorldBounds) Depth() float64 { return b.MaxZ - b.MinZ }

// Validate reports degenerate or inverted bounds.
func (b WorldBounds) Validate() error {
	if !(b.MaxX > b.MinX) || !(b.MaxZ > b.MinZ) {
		return fmt.Errorf("degenerate horizontal extent x=[%g,%g] z=[%g,%g]", b.MinX, b.MaxX, b.MinZ, b.MaxZ)
	}
	if b.MaxY < b.MinY {
		return fmt.Errorf("inverted height range [%g,%g]", b.MinY, b.MaxY)
	}
	return nil
}

// ContainsXZ reports whether (x, z) lies inside the horizontal footprint.
func (b WorldBounds) ContainsXZ(x, z float64) bool {
	return x >= b.MinX && x <= b.MaxX && z >= b.MinZ && z <= b.MaxZ
}

// Contains reports whether p lies inside the box, vertical range included.
func (b WorldBounds) Contains(p mgl64.Vec3) bool {
	return b.ContainsXZ(p.X(), p.Z()) && p.Y() >= b.MinY && p.Y() <= b.MaxY
}

// Inset shrinks the horizontal footprint by r on every side.
func (b WorldBounds) Inset(r float64) WorldBounds {
	b.MinX += r
	b.MaxX -= r
	b.MinZ += r
	b.MaxZ -= r
	return b
}

// ToR3 converts a mathgl vector to an r3 vector.
func ToR3(v mgl64.Vec3) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// FromR3 converts an r3 vector to a mathgl vector.
func FromR3(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}
