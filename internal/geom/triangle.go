package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// Triangle is a single static collision face.
type Triangle struct {
	A, B, C r3.Vector
}

// Points returns the three corners.
func (t Triangle) Points() [3]r3.Vector {
	return [3]r3.Vector{t.A, t.B, t.C}
}

// Centroid returns the mean of the three corners.
func (t Triangle) Centroid() r3.Vector {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

// Normal returns the unit face normal following the A->B->C winding.
// Degenerate triangles return the zero vector.
func (t Triangle) Normal() r3.Vector {
	n := t.B.Sub(t.A).Cross(t.C.Sub(t.A))
	l := n.Norm()
	if l == 0 {
		return r3.Vector{}
	}
	return n.Mul(1 / l)
}

// Translate returns the triangle moved by d.
func (t Triangle) Translate(d r3.Vector) Triangle {
	return Triangle{A: t.A.Add(d), B: t.B.Add(d), C: t.C.Add(d)}
}

// ClosestPoint returns the point on the triangle nearest to p.
// Real-Time Collision Detection, Ericson, 5.1.5.
func (t Triangle) ClosestPoint(p r3.Vector) r3.Vector {
	a, b, c := t.A, t.B, t.C
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max r3.Vector
}

// EmptyAABB returns an inverted box that any Extend call will overwrite.
func EmptyAABB() AABB {
	return AABB{
		Min: r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// Extend grows the box to include p.
func (b AABB) Extend(p r3.Vector) AABB {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
	return b
}

// Extent returns Max-Min.
func (b AABB) Extent() r3.Vector {
	return b.Max.Sub(b.Min)
}

// SphereOverlaps reports whether a sphere touches the box.
func (b AABB) SphereOverlaps(center r3.Vector, radius float64) bool {
	dx := math.Max(0, math.Max(b.Min.X-center.X, center.X-b.Max.X))
	dy := math.Max(0, math.Max(b.Min.Y-center.Y, center.Y-b.Max.Y))
	dz := math.Max(0, math.Max(b.Min.Z-center.Z, center.Z-b.Max.Z))
	return dx*dx+dy*dy+dz*dz <= radius*radius
}

// TrianglesAABB computes the box enclosing every triangle.
func TrianglesAABB(tris []Triangle) AABB {
	box := EmptyAABB()
	for _, t := range tris {
		for _, p := range t.Points() {
			box = box.Extend(p)
		}
	}
	return box
}
