package terrain

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// ErrEmptyGrid is returned when an empty grid is exported.
var ErrEmptyGrid = errors.New("height grid is empty")

// Image renders the grid as 16-bit grayscale, row y of the grid becoming
// image row y. When size > 0 the image is resampled to size x size.
func (g *HeightGrid) Image(size int) (image.Image, error) {
	if g == nil || g.Width == 0 || g.Height == 0 {
		return nil, ErrEmptyGrid
	}
	img := image.NewGray16(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			v := math.Max(0, math.Min(1, g.Values[y*g.Width+x]))
			img.SetGray16(x, y, color.Gray16{Y: uint16(math.Round(v * 0xFFFF))})
		}
	}
	if size <= 0 || (size == g.Width && size == g.Height) {
		return img, nil
	}
	dst := image.NewGray16(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// WritePNG encodes the grid as a grayscale PNG.
func WritePNG(w io.Writer, g *HeightGrid, size int) error {
	img, err := g.Image(size)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WriteTIFF encodes the grid as a deflate-compressed grayscale TIFF.
func WriteTIFF(w io.Writer, g *HeightGrid, size int) error {
	img, err := g.Image(size)
	if err != nil {
		return err
	}
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}
