package terrain_test

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"testing"

	"golang.org/x/image/tiff"

	"heli-sim/internal/terrain"
)

func TestNewGeneratorKinds(t *testing.T) {
	for _, kind := range []string{"", "fbm", "diamond-square", "perlin-diamond"} {
		cfg := terrain.DefaultGeneratorConfig()
		cfg.Kind = kind
		cfg.Fbm.Scale = 40
		gen, err := terrain.NewGenerator(cfg)
		if err != nil {
			t.Fatalf("kind %q: %v", kind, err)
		}
		g := gen.Generate(33, 33)
		for i, v := range g.Values {
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Fatalf("kind %q: cell %d = %f outside [0,1]", kind, i, v)
			}
		}
	}
}

func TestNewGeneratorErrors(t *testing.T) {
	cfg := terrain.DefaultGeneratorConfig()
	cfg.Kind = "voronoi"
	if _, err := terrain.NewGenerator(cfg); !errors.Is(err, terrain.ErrUnknownGenerator) {
		t.Errorf("expected ErrUnknownGenerator, got %v", err)
	}

	cfg = terrain.DefaultGeneratorConfig()
	cfg.Fbm.Scale = 0
	if _, err := terrain.NewGenerator(cfg); !errors.Is(err, terrain.ErrInvalidScale) {
		t.Errorf("expected ErrInvalidScale, got %v", err)
	}

	cfg = terrain.DefaultGeneratorConfig()
	cfg.Noise = "worley"
	if _, err := terrain.NewGenerator(cfg); !errors.Is(err, terrain.ErrUnknownNoise) {
		t.Errorf("expected ErrUnknownNoise, got %v", err)
	}
}

func TestFilteredPipelineStaysNormalized(t *testing.T) {
	cfg := terrain.DefaultGeneratorConfig()
	cfg.Fbm.Scale = 30
	cfg.Filters = []terrain.FilterConfig{
		{Kind: "smooth", Weight: 0.5},
		{Kind: "ease", Curve: "ease-in-out"},
		{Kind: "step", Levels: 8},
	}
	gen, err := terrain.NewGenerator(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range gen.Generate(32, 32).Values {
		if v < 0 || v > 1 {
			t.Fatalf("cell %d = %f outside [0,1]", i, v)
		}
	}
}

func TestNewGeneratorRejectsDegenerateSmooth(t *testing.T) {
	for _, w := range []float64{-1, -3, math.NaN()} {
		cfg := terrain.DefaultGeneratorConfig()
		cfg.Filters = []terrain.FilterConfig{{Kind: "smooth", Weight: w}}
		if _, err := terrain.NewGenerator(cfg); !errors.Is(err, terrain.ErrInvalidFilter) {
			t.Errorf("smooth weight %g: expected ErrInvalidFilter, got %v", w, err)
		}
	}
}

type constGen float64

func (c constGen) Generate(width, height int) *terrain.HeightGrid {
	g := terrain.NewHeightGrid(width, height)
	for i := range g.Values {
		g.Values[i] = float64(c)
	}
	return g
}

func TestPipelineClampsFilterOutput(t *testing.T) {
	p := &terrain.Pipeline{
		Source: constGen(0.5),
		Filters: []terrain.Filter{terrain.FilterFunc(func(g *terrain.HeightGrid) {
			g.Values[0] = math.Inf(1)
			g.Values[1] = -2
			g.Values[2] = 1.5
			g.Values[3] = math.NaN()
		})},
	}
	g := p.Generate(4, 4)
	want := []float64{1, 0, 1, 0, 0.5}
	for i, w := range want {
		if g.Values[i] != w {
			t.Errorf("cell %d = %g, want %g", i, g.Values[i], w)
		}
	}
}

func TestExportPNG(t *testing.T) {
	gen, _ := terrain.NewGenerator(terrain.DefaultGeneratorConfig())
	g := gen.Generate(16, 12)

	var buf bytes.Buffer
	if err := terrain.WritePNG(&buf, g, 0); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
		t.Errorf("decoded PNG is %dx%d, want 16x12", b.Dx(), b.Dy())
	}

	buf.Reset()
	if err := terrain.WritePNG(&buf, g, 32); err != nil {
		t.Fatal(err)
	}
	img, err = png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("resampled PNG is %dx%d, want 32x32", b.Dx(), b.Dy())
	}
}

func TestExportTIFF(t *testing.T) {
	gen, _ := terrain.NewGenerator(terrain.DefaultGeneratorConfig())
	var buf bytes.Buffer
	if err := terrain.WriteTIFF(&buf, gen.Generate(8, 8), 0); err != nil {
		t.Fatal(err)
	}
	img, err := tiff.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("decoded TIFF is %dx%d, want 8x8", b.Dx(), b.Dy())
	}
}

func TestExportEmptyGrid(t *testing.T) {
	var buf bytes.Buffer
	if err := terrain.WritePNG(&buf, terrain.NewHeightGrid(0, 0), 0); !errors.Is(err, terrain.ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}
}
