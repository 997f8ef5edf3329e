package logpanel

import "chosenoffset.com/slimecount/internal/core/geom"

// HotspotWidth is the default width of the toggle area at the right end of the header.
const HotspotWidth = 28

// PressResult tells the caller what a press on the frame did.
type PressResult int

const (
	Missed  PressResult = iota // press was outside the frame
	Toggled                    // press hit the hotspot
	Grabbed                    // press started a drag
	Inside                     // press hit the body
)

// Frame is the position and open/closed state of the log panel. It holds no drawing or input
// code so both frontends share it.
type Frame struct {
	pos      geom.Point
	width    float64
	header   float64
	body     float64
	bounds   geom.Rect
	expanded bool
	hotspot  float64

	dragging bool
	grab     geom.Point
}

// NewFrame creates an expanded frame at pos, kept within bounds.
func NewFrame(pos geom.Point, width, header, body float64, bounds geom.Rect) *Frame {
	f := &Frame{
		pos:      pos,
		width:    width,
		header:   header,
		body:     body,
		bounds:   bounds,
		expanded: true,
		hotspot:  HotspotWidth,
	}
	f.clamp()
	return f
}

// Pos returns the top-left corner.
func (f *Frame) Pos() geom.Point { return f.pos }

// Expanded reports whether the body is shown.
func (f *Frame) Expanded() bool { return f.expanded }

// Dragging reports whether a drag is in progress.
func (f *Frame) Dragging() bool { return f.dragging }

// Height is the header height plus the body height when expanded.
func (f *Frame) Height() float64 {
	if f.expanded {
		return f.header + f.body
	}
	return f.header
}

// Rect is the area the frame currently covers.
func (f *Frame) Rect() geom.Rect {
	return geom.Rect{X: f.pos.X, Y: f.pos.Y, Width: f.width, Height: f.Height()}
}

// Header is the draggable title bar.
func (f *Frame) Header() geom.Rect {
	return geom.Rect{X: f.pos.X, Y: f.pos.Y, Width: f.width, Height: f.header}
}

// Hotspot is the toggle area inside the header.
func (f *Frame) Hotspot() geom.Rect {
	return geom.Rect{X: f.pos.X + f.width - f.hotspot, Y: f.pos.Y, Width: f.hotspot, Height: f.header}
}

// SetHotspotWidth overrides HotspotWidth, for frames measured in other units such as
// terminal cells.
func (f *Frame) SetHotspotWidth(w float64) {
	f.hotspot = w
}

// Body is the area entries are drawn in. It is empty when collapsed.
func (f *Frame) Body() geom.Rect {
	if !f.expanded {
		return geom.Rect{X: f.pos.X, Y: f.pos.Y + f.header, Width: f.width}
	}
	return geom.Rect{X: f.pos.X, Y: f.pos.Y + f.header, Width: f.width, Height: f.body}
}

// Toggle switches between collapsed and expanded.
func (f *Frame) Toggle() {
	f.expanded = !f.expanded
	f.clamp()
}

// Press handles a pointer press at p.
func (f *Frame) Press(p geom.Point) PressResult {
	switch {
	case f.Hotspot().Contains(p):
		f.Toggle()
		return Toggled
	case f.Header().Contains(p):
		f.dragging = true
		f.grab = p.Sub(f.pos)
		return Grabbed
	case f.Rect().Contains(p):
		return Inside
	default:
		return Missed
	}
}

// Move follows the pointer while dragging.
func (f *Frame) Move(p geom.Point) {
	if !f.dragging {
		return
	}
	f.pos = p.Sub(f.grab)
	f.clamp()
}

// Release ends a drag.
func (f *Frame) Release() {
	f.dragging = false
}

// SetBounds changes the area the frame must stay within.
func (f *Frame) SetBounds(bounds geom.Rect) {
	f.bounds = bounds
	f.clamp()
}

func (f *Frame) clamp() {
	b := f.bounds
	f.pos.X = max(b.X, min(f.pos.X, b.X+b.Width-f.width))
	f.pos.Y = max(b.Y, min(f.pos.Y, b.Y+b.Height-f.Height()))
}
