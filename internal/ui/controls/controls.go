// Package controls implements the bar under the canvas: difficulty and duration selectors, the
// start and reveal buttons, the countdown and answer texts, and the blocking alert.
package controls

import (
	"fmt"
	"image/color"
	"time"

	"chosenoffset.com/slimecount/internal/core/geom"
	"chosenoffset.com/slimecount/internal/render"
	"chosenoffset.com/slimecount/internal/simulation"
)

// Action is what the player asked for this frame.
type Action int

const (
	None Action = iota
	Start
	Reveal
	Quit
)

// Bar is the control bar.
type Bar struct {
	renderer render.Renderer
	input    render.InputManager
	area     geom.Rect
	screen   geom.Rect

	difficulty int
	durations  []time.Duration
	duration   int

	countdown string
	answer    string
	alert     string

	lastMouseClick bool

	// Visual settings
	bgColor     color.RGBA
	buttonColor color.RGBA
	hoverColor  color.RGBA
	textColor   color.RGBA
	answerColor color.RGBA
}

// NewBar creates a bar drawn in area. screen is used to center the alert. The initial
// selection is matched against durations; an unknown duration selects the first one.
func NewBar(r render.Renderer, input render.InputManager, area, screen geom.Rect, durations []time.Duration, initial simulation.RoundConfig) *Bar {
	b := &Bar{
		renderer:    r,
		input:       input,
		area:        area,
		screen:      screen,
		durations:   durations,
		bgColor:     color.RGBA{25, 25, 35, 255},
		buttonColor: color.RGBA{60, 60, 90, 255},
		hoverColor:  color.RGBA{90, 90, 130, 255},
		textColor:   color.RGBA{230, 230, 230, 255},
		answerColor: color.RGBA{255, 220, 120, 255},
	}
	for i, d := range simulation.Difficulties {
		if d == initial.Difficulty {
			b.difficulty = i
		}
	}
	for i, d := range durations {
		if d == initial.Duration {
			b.duration = i
		}
	}
	return b
}

// Selection returns the round configuration currently selected.
func (b *Bar) Selection() simulation.RoundConfig {
	return simulation.RoundConfig{
		Difficulty: simulation.Difficulties[b.difficulty],
		Duration:   b.durations[b.duration],
	}
}

// CycleDifficulty selects the next difficulty, wrapping around.
func (b *Bar) CycleDifficulty() {
	b.difficulty = (b.difficulty + 1) % len(simulation.Difficulties)
}

// CycleDuration selects the next duration, wrapping around.
func (b *Bar) CycleDuration() {
	b.duration = (b.duration + 1) % len(b.durations)
}

// SetCountdown sets the countdown text.
func (b *Bar) SetCountdown(s string) { b.countdown = s }

// SetAnswer sets the answer text. An empty string hides it.
func (b *Bar) SetAnswer(s string) { b.answer = s }

// ShowAlert opens the blocking alert.
func (b *Bar) ShowAlert(msg string) { b.alert = msg }

// AlertVisible reports whether the alert is open.
func (b *Bar) AlertVisible() bool { return b.alert != "" }

// Alert returns the alert message.
func (b *Bar) Alert() string { return b.alert }

func (b *Bar) difficultyRect() geom.Rect {
	return geom.Rect{X: b.area.X + 20, Y: b.area.Y + 20, Width: 190, Height: 32}
}

func (b *Bar) durationRect() geom.Rect {
	return geom.Rect{X: b.area.X + 220, Y: b.area.Y + 20, Width: 160, Height: 32}
}

func (b *Bar) startRect() geom.Rect {
	return geom.Rect{X: b.area.X + 390, Y: b.area.Y + 20, Width: 110, Height: 32}
}

func (b *Bar) revealRect() geom.Rect {
	return geom.Rect{X: b.area.X + 510, Y: b.area.Y + 20, Width: 130, Height: 32}
}

func (b *Bar) alertRect() geom.Rect {
	c := b.screen.Center()
	return geom.Rect{X: c.X - 200, Y: c.Y - 60, Width: 400, Height: 120}
}

func (b *Bar) alertOKRect() geom.Rect {
	a := b.alertRect()
	return geom.Rect{X: a.X + a.Width/2 - 40, Y: a.Y + a.Height - 44, Width: 80, Height: 30}
}

// Update handles input and returns the requested action. pointerCaptured is true when
// another widget already took this frame's click.
func (b *Bar) Update(pointerCaptured bool) Action {
	mouseX, mouseY := b.input.GetCursorPosition()
	mousePressed := b.input.IsMouseButtonPressed(render.MouseButtonLeft)

	// Detect mouse click (button pressed this frame but not last frame)
	mouseClicked := mousePressed && !b.lastMouseClick && !pointerCaptured
	b.lastMouseClick = mousePressed
	cursor := geom.Point{X: float64(mouseX), Y: float64(mouseY)}

	if b.AlertVisible() {
		if b.input.IsKeyJustPressed(render.KeyEnter) || b.input.IsKeyJustPressed(render.KeyEscape) ||
			(mouseClicked && b.alertOKRect().Contains(cursor)) {
			b.alert = ""
		}
		return None
	}

	if b.input.IsKeyJustPressed(render.KeyEscape) {
		return Quit
	}
	if b.input.IsKeyJustPressed(render.KeyD) {
		b.CycleDifficulty()
	}
	if b.input.IsKeyJustPressed(render.KeyT) {
		b.CycleDuration()
	}
	if b.input.IsKeyJustPressed(render.KeySpace) {
		return Start
	}
	if b.input.IsKeyJustPressed(render.KeyR) {
		return Reveal
	}

	if !mouseClicked {
		return None
	}
	switch {
	case b.difficultyRect().Contains(cursor):
		b.CycleDifficulty()
	case b.durationRect().Contains(cursor):
		b.CycleDuration()
	case b.startRect().Contains(cursor):
		return Start
	case b.revealRect().Contains(cursor):
		return Reveal
	}
	return None
}

// Draw renders the bar and, when open, the alert on top of everything.
func (b *Bar) Draw(screen render.Image) {
	b.fill(screen, b.area, b.bgColor)

	sel := b.Selection()
	b.button(screen, b.difficultyRect(), "Difficulty: "+sel.Difficulty.Label())
	b.button(screen, b.durationRect(), fmt.Sprintf("Duration: %ds", int(sel.Duration.Seconds())))
	b.button(screen, b.startRect(), "Start [Space]")
	b.button(screen, b.revealRect(), "Reveal [R]")

	x := int(b.area.X) + 660
	b.renderer.DrawText(screen, b.countdown, x, int(b.area.Y)+40, b.textColor)
	if b.answer != "" {
		b.renderer.DrawText(screen, b.answer, int(b.area.X)+20, int(b.area.Y)+85, b.answerColor)
	}
	b.renderer.DrawText(screen, "[D] difficulty  [T] duration  [L] log  [Esc] quit",
		x, int(b.area.Y)+85, color.RGBA{150, 150, 150, 255})

	if b.AlertVisible() {
		b.drawAlert(screen)
	}
}

func (b *Bar) drawAlert(screen render.Image) {
	b.fill(screen, b.screen, color.RGBA{0, 0, 0, 140})
	a := b.alertRect()
	b.fill(screen, a, color.RGBA{40, 40, 55, 250})
	b.renderer.StrokeRect(screen, float32(a.X), float32(a.Y), float32(a.Width), float32(a.Height), 2, b.hoverColor)

	w, _ := b.renderer.MeasureText(b.alert)
	b.renderer.DrawText(screen, b.alert, int(a.X+a.Width/2)-w/2, int(a.Y)+40, b.textColor)
	b.button(screen, b.alertOKRect(), "OK")
}

func (b *Bar) button(screen render.Image, r geom.Rect, label string) {
	mx, my := b.input.GetCursorPosition()
	clr := b.buttonColor
	if r.Contains(geom.Point{X: float64(mx), Y: float64(my)}) {
		clr = b.hoverColor
	}
	b.fill(screen, r, clr)

	w, h := b.renderer.MeasureText(label)
	b.renderer.DrawText(screen, label, int(r.X+r.Width/2)-w/2, int(r.Y+r.Height/2)+h/2-3, b.textColor)
}

func (b *Bar) fill(screen render.Image, r geom.Rect, clr color.Color) {
	b.renderer.FillRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), clr)
}
