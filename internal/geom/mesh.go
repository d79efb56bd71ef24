package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

func quad(a, b, c, d r3.Vector) []Triangle {
	return []Triangle{{A: a, B: b, C: c}, {A: a, B: c, C: d}}
}

// Box returns the 12 outward-wound triangles of an axis-aligned box.
func Box(center, size r3.Vector) []Triangle {
	h := size.Mul(0.5)
	x := r3.Vector{X: h.X}
	y := r3.Vector{Y: h.Y}
	z := r3.Vector{Z: h.Z}

	// normal, u, v with u x v == normal
	faces := [6][3]r3.Vector{
		{x, y, z},
		{x.Mul(-1), z, y},
		{y, z, x},
		{y.Mul(-1), x, z},
		{z, x, y},
		{z.Mul(-1), y, x},
	}

	tris := make([]Triangle, 0, 12)
	for _, f := range faces {
		n, u, v := f[0], f[1], f[2]
		c := center.Add(n)
		tris = append(tris, quad(
			c.Sub(u).Sub(v),
			c.Add(u).Sub(v),
			c.Add(u).Add(v),
			c.Sub(u).Add(v),
		)...)
	}
	return tris
}

// Cylinder returns a Y-aligned (possibly tapered) cylinder centered on center.
// Open cylinders have no caps.
func Cylinder(center r3.Vector, radiusTop, radiusBottom, height float64, segments int, open bool) []Triangle {
	if segments < 3 {
		segments = 3
	}
	half := height / 2
	ring := func(r, y float64, i int) r3.Vector {
		theta := 2 * math.Pi * float64(i%segments) / float64(segments)
		return center.Add(r3.Vector{X: r * math.Cos(theta), Y: y, Z: r * math.Sin(theta)})
	}
	top := center.Add(r3.Vector{Y: half})
	bottom := center.Add(r3.Vector{Y: -half})

	tris := make([]Triangle, 0, segments*4)
	for i := 0; i < segments; i++ {
		b0, b1 := ring(radiusBottom, -half, i), ring(radiusBottom, -half, i+1)
		t0, t1 := ring(radiusTop, half, i), ring(radiusTop, half, i+1)
		tris = append(tris, quad(b0, t0, t1, b1)...)
		if open {
			continue
		}
		tris = append(tris,
			Triangle{A: top, B: t1, C: t0},
			Triangle{A: bottom, B: b0, C: b1},
		)
	}
	return tris
}
