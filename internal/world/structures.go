package world

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"heli-sim/internal/geom"
	"heli-sim/internal/heightfield"
)

// StructureKind names one of the obstacle shapes.
type StructureKind int

const (
	SpawnPad StructureKind = iota
	Skyscraper
	Tunnel
	CubeGrid
	Bridge
	CoolerTower
)

var structureNames = [...]string{
	SpawnPad:    "spawn-pad",
	Skyscraper:  "skyscraper",
	Tunnel:      "tunnel",
	CubeGrid:    "cube-grid",
	Bridge:      "bridge",
	CoolerTower: "cooler-tower",
}

func (k StructureKind) String() string {
	if k < 0 || int(k) >= len(structureNames) {
		return "unknown"
	}
	return structureNames[k]
}

// Structure is a placed obstacle. Position is the ground point it stands on,
// or the center for the spawn pad.
type Structure struct {
	Kind      StructureKind
	Position  mgl64.Vec3
	Triangles []geom.Triangle
}

// builders produce a structure standing on the ground at the origin.
var builders = map[StructureKind]func() []geom.Triangle{
	Skyscraper: func() []geom.Triangle {
		return geom.Box(r3.Vector{Y: 100}, r3.Vector{X: 5, Y: 200, Z: 5})
	},
	Tunnel: func() []geom.Triangle {
		tube := geom.Cylinder(r3.Vector{}, 8, 8, 30, 32, true)
		for i := range tube {
			tube[i] = rotateZ90(tube[i]).Translate(r3.Vector{Y: 8})
		}
		return tube
	},
	CubeGrid: func() []geom.Triangle {
		const size, spacing = 3.0, 12.0
		var tris []geom.Triangle
		for x := -1; x <= 1; x++ {
			for y := -1; y <= 1; y++ {
				for z := -1; z <= 1; z++ {
					c := r3.Vector{X: float64(x) * spacing, Y: float64(y+1)*spacing + size/2, Z: float64(z) * spacing}
					tris = append(tris, geom.Box(c, r3.Vector{X: size, Y: size, Z: size})...)
				}
			}
		}
		return tris
	},
	Bridge: func() []geom.Triangle {
		deck := r3.Vector{Y: 11}
		tris := geom.Box(deck, r3.Vector{X: 30, Y: 2, Z: 6})
		for _, px := range []float64{-10, 10} {
			tris = append(tris, geom.Box(deck.Add(r3.Vector{X: px, Y: -6}), r3.Vector{X: 2, Y: 10, Z: 2})...)
		}
		return tris
	},
	CoolerTower: func() []geom.Triangle {
		return geom.Cylinder(r3.Vector{Y: 10}, 6, 12, 20, 32, false)
	},
}

// rotateZ90 lays a Y-aligned shape on its side, its axis along X.
func rotateZ90(t geom.Triangle) geom.Triangle {
	rot := func(p r3.Vector) r3.Vector { return r3.Vector{X: -p.Y, Y: p.X, Z: p.Z} }
	return geom.Triangle{A: rot(t.A), B: rot(t.B), C: rot(t.C)}
}

// placeStructures scatters up to n random structures over the terrain,
// keeping clear of the spawn pad and the world edge. Candidates that land
// too close to the pad are dropped. Placement is seeded from the world seed.
func placeStructures(ground *heightfield.Sampler, b geom.WorldBounds, seed int64, n int) []Structure {
	if n == 0 {
		return nil
	}
	inner := b.Inset(structureClearance)
	if inner.MinX >= inner.MaxX || inner.MinZ >= inner.MaxZ {
		return nil
	}
	rng := rand.New(rand.NewPCG(uint64(seed), 0x2545F4914F6CDD1D))

	out := make([]Structure, 0, n)
	for range n {
		kind := StructureKind(1 + rng.IntN(len(structureNames)-1))
		x := inner.MinX + rng.Float64()*inner.Width()
		z := inner.MinZ + rng.Float64()*inner.Depth()
		if math.Hypot(x, z) < padRadius+structureClearance || !ground.Contains(x, z) {
			continue
		}
		pos := r3.Vector{X: x, Y: ground.Query(x, z), Z: z}
		tris := builders[kind]()
		for i := range tris {
			tris[i] = tris[i].Translate(pos)
		}
		out = append(out, Structure{Kind: kind, Position: geom.FromR3(pos), Triangles: tris})
	}
	return out
}
