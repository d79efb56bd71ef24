// Command heightmap generates a terrain heightmap and writes it as a
// 16-bit grayscale PNG or TIFF.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"heli-sim/internal/config"
	"heli-sim/internal/terrain"
)

func main() {
	fs := flag.NewFlagSet("heightmap", flag.ExitOnError)
	out := fs.String("out", "", "output file, .png or .tif (default heightmap_seed_<seed>.png)")
	size := fs.Int("image-size", 0, "resample the image to this many pixels per side, 0 keeps the grid size")
	cfg, err := config.ParseArgs(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("heightmap: %v", err)
	}

	gc := cfg.World.Generator
	path := *out
	if path == "" {
		path = fmt.Sprintf("heightmap_seed_%d.png", gc.Seed)
	}

	gen, err := terrain.NewGenerator(gc)
	if err != nil {
		log.Fatalf("heightmap: %v", err)
	}
	start := time.Now()
	grid := gen.Generate(cfg.World.Resolution, cfg.World.Resolution)
	log.Printf("heightmap: generated %dx%d in %v", grid.Width, grid.Height, time.Since(start))

	if err := write(path, grid, *size); err != nil {
		log.Fatalf("heightmap: %v", err)
	}
	log.Printf("heightmap: wrote %s", path)
}

func write(path string, grid *terrain.HeightGrid, size int) (err error) {
	encode := terrain.WritePNG
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
	case ".tif", ".tiff":
		encode = terrain.WriteTIFF
	default:
		return fmt.Errorf("unsupported image type %q", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := encode(w, grid, size); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return w.Flush()
}
