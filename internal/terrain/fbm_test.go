package terrain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"
	"testing"
)

// hashGrid computes a SHA-256 hash over every value of the grid
func hashGrid(g *HeightGrid) [32]byte {
	h := sha256.New()
	var buf [8]byte
	for _, v := range g.Values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func TestNoiseConfigValidation(t *testing.T) {
	if _, err := NewNoiseConfig(0, 4, 0.5, 2, 0, 0); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("scale 0: expected ErrInvalidScale, got %v", err)
	}
	if _, err := NewNoiseConfig(-10, 4, 0.5, 2, 0, 0); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("scale -10: expected ErrInvalidScale, got %v", err)
	}
	if _, err := NewNoiseConfig(math.NaN(), 4, 0.5, 2, 0, 0); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("scale NaN: expected ErrInvalidScale, got %v", err)
	}
	if _, err := NewNoiseConfig(500, 0, 0.5, 2, 0, 0); !errors.Is(err, ErrInvalidOctaves) {
		t.Errorf("octaves 0: expected ErrInvalidOctaves, got %v", err)
	}
	if _, err := NewNoiseConfig(500, 4, 0.5, 2, 0, 0); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestNewFbmRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultNoiseConfig()
	cfg.Octaves = 0
	if _, err := NewFbm(NewPerlinSource(1), cfg); !errors.Is(err, ErrInvalidOctaves) {
		t.Errorf("expected construction to fail with ErrInvalidOctaves, got %v", err)
	}
}

func TestFbmRangeAndExtremes(t *testing.T) {
	cfg := DefaultNoiseConfig()
	cfg.Scale = 20
	f, err := NewFbm(NewValueSource(3), cfg)
	if err != nil {
		t.Fatal(err)
	}
	g := f.Generate(64, 48)
	if g.Width != 64 || g.Height != 48 || len(g.Values) != 64*48 {
		t.Fatalf("unexpected grid shape %dx%d (%d values)", g.Width, g.Height, len(g.Values))
	}
	lo, hi := g.MinMax()
	if lo != 0 || hi != 1 {
		t.Errorf("normalized grid should span exactly [0,1], got [%f,%f]", lo, hi)
	}
}

// Reference grid: seed=42, 256x256, scale=500, octaves=4, persistence=0.5,
// lacunarity=2.0 over perlin noise.
const (
	referenceOrigin = 0.299292244783
	referenceHash   = "909641c2f2e41ebe8936accb1a43a15788575132f782eb157bb7e49c9be6f73d"
)

func TestFbmDeterminismReference(t *testing.T) {
	cfg, err := NewNoiseConfig(500, 4, 0.5, 2.0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		f, err := NewFbm(NewPerlinSource(42), cfg)
		if err != nil {
			t.Fatal(err)
		}
		g := f.Generate(256, 256)
		if got := g.At(0, 0); math.Abs(got-referenceOrigin) > 1e-6 {
			t.Errorf("run %d: height at (0,0) = %.12f, want %.12f", i, got, referenceOrigin)
		}
		if sum := hashGrid(g); hex.EncodeToString(sum[:]) != referenceHash {
			t.Errorf("run %d: grid hash %x, want %s", i, sum, referenceHash)
		}
	}
}

func TestFbmSeedsDiffer(t *testing.T) {
	cfg := DefaultNoiseConfig()
	cfg.Scale = 50
	a, _ := NewFbm(NewPerlinSource(1), cfg)
	b, _ := NewFbm(NewPerlinSource(2), cfg)
	if hashGrid(a.Generate(32, 32)) == hashGrid(b.Generate(32, 32)) {
		t.Errorf("different seeds produced identical grids")
	}
}

func TestFbmFlatNoiseIsHalf(t *testing.T) {
	f, err := NewFbm(ConstantSource(0.3), DefaultNoiseConfig())
	if err != nil {
		t.Fatal(err)
	}
	g := f.Generate(16, 16)
	for i, v := range g.Values {
		if v != 0.5 {
			t.Fatalf("cell %d = %f, expected 0.5 for flat noise", i, v)
		}
	}
}

func TestFbmOffsetShiftsSamples(t *testing.T) {
	cfg := DefaultNoiseConfig()
	cfg.Scale = 10
	src := NewValueSource(9)
	base, _ := NewFbm(src, cfg)
	cfg.OffsetX = 1
	shifted, _ := NewFbm(src, cfg)

	// shifted cell x equals base cell x+1 before normalization
	for x := 0; x < 8; x++ {
		if a, b := shifted.sample(x, 3), base.sample(x+1, 3); math.Abs(a-b) > 1e-12 {
			t.Errorf("offset sample mismatch at x=%d: %f vs %f", x, a, b)
		}
	}
}

func BenchmarkFbmGenerate256(b *testing.B) {
	f, _ := NewFbm(NewPerlinSource(42), DefaultNoiseConfig())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Generate(256, 256)
	}
}
