// Package collision indexes static obstacle geometry for sphere queries.
package collision

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"heli-sim/internal/geom"
)

const leafSize = 8

// Manifold describes one contact. Normal points from the surface towards the
// sphere center and Depth is the penetration distance.
type Manifold struct {
	Normal mgl64.Vec3
	Depth  float64
}

type node struct {
	box         geom.AABB
	left, right int32 // child indices, -1 for leaves
	start, end  int32 // triangle range for leaves
}

// World is an immutable bounding volume hierarchy over triangles.
type World struct {
	tris  []geom.Triangle
	nodes []node
}

// Build indexes tris. The slice is copied and reordered internally.
func Build(tris []geom.Triangle) *World {
	w := &World{tris: slices.Clone(tris)}
	if len(w.tris) > 0 {
		w.nodes = make([]node, 0, 2*len(w.tris)/leafSize+1)
		w.build(0, len(w.tris))
	}
	return w
}

func (w *World) build(start, end int) int32 {
	idx := int32(len(w.nodes))
	w.nodes = append(w.nodes, node{
		box:   geom.TrianglesAABB(w.tris[start:end]),
		left:  -1,
		right: -1,
		start: int32(start),
		end:   int32(end),
	})
	if end-start <= leafSize {
		return idx
	}

	// median split along the longest axis of the centroid spread
	centroids := geom.EmptyAABB()
	for _, t := range w.tris[start:end] {
		centroids = centroids.Extend(t.Centroid())
	}
	axis := longestAxis(centroids.Extent())
	sub := w.tris[start:end]
	slices.SortFunc(sub, func(a, b geom.Triangle) int {
		ca, cb := component(a.Centroid(), axis), component(b.Centroid(), axis)
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		}
		return 0
	})
	mid := start + (end-start)/2

	left := w.build(start, mid)
	right := w.build(mid, end)
	w.nodes[idx].left = left
	w.nodes[idx].right = right
	return idx
}

func longestAxis(e r3.Vector) int {
	switch {
	case e.X >= e.Y && e.X >= e.Z:
		return 0
	case e.Y >= e.Z:
		return 1
	}
	return 2
}

func component(v r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

// Len returns the number of indexed triangles.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return len(w.tris)
}

// Bounds returns the box enclosing all triangles, or false for an empty world.
func (w *World) Bounds() (geom.AABB, bool) {
	if w == nil || len(w.nodes) == 0 {
		return geom.AABB{}, false
	}
	return w.nodes[0].box, true
}

// SphereIntersect returns the deepest contact between the sphere and the
// indexed triangles. A nil or empty World never reports a contact.
func (w *World) SphereIntersect(center mgl64.Vec3, radius float64) (Manifold, bool) {
	if w == nil || len(w.nodes) == 0 || !(radius > 0) {
		return Manifold{}, false
	}
	c := geom.ToR3(center)

	var best Manifold
	found := false

	stack := make([]int32, 0, 32)
	stack = append(stack, 0)
	for len(stack) > 0 {
		n := &w.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if !n.box.SphereOverlaps(c, radius) {
			continue
		}
		if n.left >= 0 {
			stack = append(stack, n.left, n.right)
			continue
		}
		for _, t := range w.tris[n.start:n.end] {
			m, ok := sphereTriangle(c, radius, t)
			if ok && (!found || m.Depth > best.Depth) {
				best, found = m, true
			}
		}
	}
	return best, found
}

func sphereTriangle(c r3.Vector, radius float64, t geom.Triangle) (Manifold, bool) {
	p := t.ClosestPoint(c)
	d := c.Sub(p)
	dist := d.Norm()
	depth := radius - dist
	if depth <= 0 {
		return Manifold{}, false
	}

	var n r3.Vector
	if dist > 1e-12 {
		n = d.Mul(1 / dist)
	} else {
		n = t.Normal()
		if n == (r3.Vector{}) {
			return Manifold{}, false
		}
	}
	if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsNaN(n.Z) {
		return Manifold{}, false
	}
	return Manifold{Normal: geom.FromR3(n), Depth: depth}, true
}
