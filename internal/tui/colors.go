package tui

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/gdamore/tcell/v2"
)

// LoadColor decodes an image and returns its average color, ignoring transparent pixels. The
// terminal draws every asset as a single color.
func LoadColor(path string) (tcell.Color, error) {
	f, err := os.Open(path)
	if err != nil {
		return tcell.ColorDefault, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return AverageColor(img), nil
}

// AverageColor returns the mean of the pixels whose alpha is at least half.
func AverageColor(img image.Image) tcell.Color {
	var r, g, b, n uint64
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pr, pg, pb, pa := img.At(x, y).RGBA()
			if pa < 0x8000 {
				continue
			}
			// un-premultiply to 8 bits
			r += uint64(pr * 0xff / pa)
			g += uint64(pg * 0xff / pa)
			b += uint64(pb * 0xff / pa)
			n++
		}
	}
	if n == 0 {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(r/n), int32(g/n), int32(b/n))
}
