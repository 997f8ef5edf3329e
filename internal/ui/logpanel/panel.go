// Package logpanel shows the event log in a draggable, collapsible panel.
package logpanel

import (
	"image/color"

	"chosenoffset.com/slimecount/internal/core/geom"
	"chosenoffset.com/slimecount/internal/eventlog"
	"chosenoffset.com/slimecount/internal/render"
)

// Source supplies the entries to show.
type Source interface {
	Tail(n int) []eventlog.Entry
}

// Panel draws a Frame and the newest log entries, and feeds it pointer input.
type Panel struct {
	frame    *Frame
	renderer render.Renderer
	input    render.InputManager
	source   Source

	// Visual settings
	bgColor     color.RGBA
	headerColor color.RGBA
	borderColor color.RGBA
	lineHeight  int
	padding     int
}

// Entry colors by category.
var (
	EnterColor   = color.RGBA{110, 170, 255, 255}
	ExitColor    = color.RGBA{170, 170, 170, 255}
	NeutralColor = color.RGBA{240, 240, 240, 255}
)

// CategoryColor returns the text color for a category.
func CategoryColor(c eventlog.Category) color.RGBA {
	switch c {
	case eventlog.Enter:
		return EnterColor
	case eventlog.Exit:
		return ExitColor
	default:
		return NeutralColor
	}
}

// HeaderText is the title shown for the given state.
func HeaderText(expanded bool) string {
	if expanded {
		return "Event log  v"
	}
	return "Event log  ="
}

// NewPanel creates a panel for frame showing entries from source.
func NewPanel(frame *Frame, r render.Renderer, input render.InputManager, source Source) *Panel {
	return &Panel{
		frame:       frame,
		renderer:    r,
		input:       input,
		source:      source,
		bgColor:     color.RGBA{20, 20, 30, 210},
		headerColor: color.RGBA{45, 45, 70, 240},
		borderColor: color.RGBA{60, 60, 80, 255},
		lineHeight:  16,
		padding:     8,
	}
}

// Frame returns the panel's frame.
func (p *Panel) Frame() *Frame {
	return p.frame
}

// Update handles input. It returns true when the pointer press of this frame belonged to the
// panel and must not reach anything underneath.
func (p *Panel) Update() bool {
	if p.input.IsKeyJustPressed(render.KeyL) {
		p.frame.Toggle()
	}

	mx, my := p.input.GetCursorPosition()
	cursor := geom.Point{X: float64(mx), Y: float64(my)}

	consumed := false
	if p.input.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		consumed = p.frame.Press(cursor) != Missed
	}
	if p.frame.Dragging() {
		if p.input.IsMouseButtonPressed(render.MouseButtonLeft) {
			p.frame.Move(cursor)
		}
		if p.input.IsMouseButtonJustReleased(render.MouseButtonLeft) || !p.input.IsMouseButtonPressed(render.MouseButtonLeft) {
			p.frame.Release()
		}
	}
	return consumed
}

// VisibleLines returns how many entries fit in the body.
func (p *Panel) VisibleLines() int {
	return max(0, (int(p.frame.body)-p.padding)/p.lineHeight)
}

// Draw renders the panel
func (p *Panel) Draw(screen render.Image) {
	r := p.frame.Rect()
	h := p.frame.Header()

	p.renderer.FillRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), p.bgColor)
	p.renderer.FillRect(screen, float32(h.X), float32(h.Y), float32(h.Width), float32(h.Height), p.headerColor)
	p.renderer.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, p.borderColor)

	_, textH := p.renderer.MeasureText("M")
	baseline := int(h.Y+h.Height/2) + textH/2 - 2
	p.renderer.DrawText(screen, HeaderText(p.frame.Expanded()), int(h.X)+p.padding, baseline, NeutralColor)

	if !p.frame.Expanded() {
		return
	}

	body := p.frame.Body()
	y := int(body.Y) + p.padding + textH - 2
	for _, e := range p.source.Tail(p.VisibleLines()) {
		p.renderer.DrawText(screen, e.String(), int(body.X)+p.padding, y, CategoryColor(e.Category))
		y += p.lineHeight
	}
}
