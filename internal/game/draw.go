package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/slimecount/internal/assets"
	"chosenoffset.com/slimecount/internal/core/geom"
	"chosenoffset.com/slimecount/internal/render"
	"chosenoffset.com/slimecount/internal/round"
	"chosenoffset.com/slimecount/internal/simulation"
)

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(color.RGBA{10, 10, 15, 255})

	field := g.Session.Field()
	g.drawCanvas(screen, field)
	g.drawTokens(screen)
	g.drawUI(screen)

	g.LogPanel.Draw(screen)
	g.Controls.Draw(screen)
}

func (g *Game) drawCanvas(screen render.Image, field round.Field) {
	if bg, ok := g.Images.Get(assets.Background); ok {
		g.drawImageRect(screen, bg, field.Canvas, 1)
	}

	if box, ok := g.Images.Get(assets.Region); ok {
		g.drawImageRect(screen, box, field.Region, 1)
	} else {
		r := field.Region
		g.Renderer.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 2, color.RGBA{200, 200, 200, 255})
	}
}

func (g *Game) drawTokens(screen render.Image) {
	in, okIn := g.Images.Get(assets.Entering)
	out, okOut := g.Images.Get(assets.Exiting)
	if !okIn || !okOut {
		return
	}

	for _, t := range g.Session.Tokens() {
		img := in
		if t.Direction == round.Exiting {
			img = out
		}
		g.drawImageRect(screen, img, TokenRect(t.Pos), t.Alpha)
	}
}

// TokenRect is the square a slime sprite is drawn in, centered on pos.
func TokenRect(pos geom.Point) geom.Rect {
	half := float64(simulation.TokenSize) / 2
	return geom.Rect{X: pos.X - half, Y: pos.Y - half, Width: simulation.TokenSize, Height: simulation.TokenSize}
}

func (g *Game) drawImageRect(screen, img render.Image, r geom.Rect, alpha float64) {
	w, h := img.Size()
	if w == 0 || h == 0 {
		return
	}

	opts := &render.DrawImageOptions{GeoM: render.NewGeoM()}
	opts.GeoM.Scale(r.Width/float64(w), r.Height/float64(h))
	opts.GeoM.Translate(r.X, r.Y)
	opts.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(img, opts)
}

func (g *Game) drawUI(screen render.Image) {
	if !g.Images.Ready() {
		text := fmt.Sprintf("Loading assets %d/%d", g.Images.Loaded(), g.Images.Total())
		g.Renderer.DrawText(screen, text, 20, 30, color.RGBA{255, 255, 255, 255})
	}

	// Draw on-screen messages
	y := 60.0
	for _, msg := range g.Messages {
		alpha := uint8(255 * (msg.TimeLeft / msg.MaxTime))
		g.Renderer.DrawText(screen, msg.Text, 20, int(y), color.RGBA{255, 255, 255, alpha})
		y += 20
	}
}
