// Package placeholders draws stand-in art and music so the game runs without the real assets.
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"chosenoffset.com/slimecount/internal/simulation"
)

// SpriteSize is the side of the generated slime sprites. They are scaled down when drawn.
const SpriteSize = 100

// ColorPalette defines the placeholder colors.
var ColorPalette = struct {
	Grass      color.RGBA
	GrassDark  color.RGBA
	Region     color.RGBA
	RegionEdge color.RGBA
	SlimeIn    color.RGBA
	SlimeOut   color.RGBA
	Outline    color.RGBA
	Eye        color.RGBA
}{
	Grass:      color.RGBA{90, 140, 70, 255},
	GrassDark:  color.RGBA{75, 120, 60, 255},
	Region:     color.RGBA{150, 110, 70, 200}, // Wooden pen, slightly see-through
	RegionEdge: color.RGBA{90, 60, 35, 255},
	SlimeIn:    color.RGBA{70, 140, 255, 255}, // Blue, like the enter log lines
	SlimeOut:   color.RGBA{200, 200, 210, 255},
	Outline:    color.RGBA{30, 30, 40, 255},
	Eye:        color.RGBA{20, 20, 20, 255},
}

// CreateBackground creates a checkered field the size of the canvas.
func CreateBackground() *image.RGBA {
	w, h := simulation.CanvasWidth, simulation.CanvasHeight
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{ColorPalette.Grass}, image.Point{}, draw.Src)

	const cell = 50
	for y := 0; y < h; y += cell {
		for x := 0; x < w; x += cell {
			if (x/cell+y/cell)%2 == 0 {
				continue
			}
			r := image.Rect(x, y, x+cell, y+cell)
			draw.Draw(img, r, &image.Uniform{ColorPalette.GrassDark}, image.Point{}, draw.Src)
		}
	}
	return img
}

// CreateRegion creates the pen the slimes are counted in.
func CreateRegion(fillColor, borderColor color.RGBA, borderWidth int) *image.RGBA {
	w, h := simulation.RegionWidth, simulation.RegionHeight
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	// Fill background
	draw.Draw(img, img.Bounds(), &image.Uniform{fillColor}, image.Point{}, draw.Src)

	// Draw borders
	for i := 0; i < borderWidth; i++ {
		for x := 0; x < w; x++ {
			img.Set(x, i, borderColor)
			img.Set(x, h-1-i, borderColor)
		}
		for y := 0; y < h; y++ {
			img.Set(i, y, borderColor)
			img.Set(w-1-i, y, borderColor)
		}
	}

	return img
}

// CreateSlime creates a round slime sprite with two eyes on a transparent background.
func CreateSlime(fillColor, outlineColor color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, SpriteSize, SpriteSize))

	center := SpriteSize / 2
	radius := SpriteSize/2 - 4

	for y := 0; y < SpriteSize; y++ {
		for x := 0; x < SpriteSize; x++ {
			dx := x - center
			dy := y - center
			distSq := dx*dx + dy*dy

			if distSq <= radius*radius {
				img.Set(x, y, fillColor)
			} else if distSq <= (radius+3)*(radius+3) {
				img.Set(x, y, outlineColor)
			}
		}
	}

	eyeR := SpriteSize / 14
	for _, ex := range []int{center - SpriteSize/6, center + SpriteSize/6} {
		ey := center - SpriteSize/10
		for y := -eyeR; y <= eyeR; y++ {
			for x := -eyeR; x <= eyeR; x++ {
				if x*x+y*y <= eyeR*eyeR {
					img.Set(ex+x, ey+y, ColorPalette.Eye)
				}
			}
		}
	}

	return img
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// SaveJPEG saves an image to a JPEG file
func SaveJPEG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
}

// GenerateAndSave writes every placeholder asset into dir. music names the wav file.
func GenerateAndSave(dir, music string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create assets directory: %w", err)
	}

	images := []struct {
		name string
		img  image.Image
		save func(image.Image, string) error
	}{
		{"background.jpg", CreateBackground(), SaveJPEG},
		{"box.png", CreateRegion(ColorPalette.Region, ColorPalette.RegionEdge, 4), SavePNG},
		{"circle_in.png", CreateSlime(ColorPalette.SlimeIn, ColorPalette.Outline), SavePNG},
		{"circle_out.png", CreateSlime(ColorPalette.SlimeOut, ColorPalette.Outline), SavePNG},
	}
	for _, im := range images {
		path := filepath.Join(dir, im.name)
		if err := im.save(im.img, path); err != nil {
			return fmt.Errorf("failed to save %s: %w", im.name, err)
		}
		b := im.img.Bounds()
		fmt.Printf("✓ Generated %s (%dx%d pixels)\n", path, b.Dx(), b.Dy())
	}

	path := filepath.Join(dir, music)
	if err := SaveMusic(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", music, err)
	}
	fmt.Printf("✓ Generated %s (%s loop)\n", path, LoopDuration)
	return nil
}
