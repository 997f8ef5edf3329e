package round

import (
	"time"

	"chosenoffset.com/slimecount/internal/core/geom"
	"chosenoffset.com/slimecount/internal/simulation"
)

// Field is the fixed geometry a round plays on.
type Field struct {
	Canvas geom.Rect
	Region geom.Rect
}

// DefaultField returns the standard 1000x600 canvas with the region in the middle.
func DefaultField() Field {
	return Field{
		Canvas: geom.Rect{Width: simulation.CanvasWidth, Height: simulation.CanvasHeight},
		Region: geom.Rect{
			X:      simulation.RegionX,
			Y:      simulation.RegionY,
			Width:  simulation.RegionWidth,
			Height: simulation.RegionHeight,
		},
	}
}

// FadeArea is the region shrunk by the fade margin.
func (f Field) FadeArea() geom.Rect {
	return f.Region.Inset(simulation.FadeMargin)
}

// Crossing is emitted when a slime's recorded containment flips.
type Crossing struct {
	TokenID   uint64
	Direction Direction
	// Occupancy is the count after the crossing was applied.
	Occupancy int
	Pos       geom.Point
}

// State is the live slime set of one round together with its occupancy count.
type State struct {
	field     Field
	started   time.Time
	tokens    []*Token
	occupancy int
	nextID    uint64
}

// NewState creates an empty round that started at started.
func NewState(field Field, started time.Time) *State {
	return &State{field: field, started: started}
}

// Field returns the round geometry.
func (s *State) Field() Field {
	return s.field
}

// Started returns when the round began.
func (s *State) Started() time.Time {
	return s.started
}

// Occupancy returns how many slimes are currently counted inside the region.
func (s *State) Occupancy() int {
	return s.occupancy
}

// Len returns the number of live slimes.
func (s *State) Len() int {
	return len(s.tokens)
}

// Tokens returns a copy of the live slimes in iteration order.
func (s *State) Tokens() []Token {
	out := make([]Token, len(s.tokens))
	for i, t := range s.tokens {
		out[i] = *t
	}
	return out
}

// Add appends a slime to the live set and returns it with its ID assigned.
func (s *State) Add(t Token) Token {
	s.nextID++
	t.ID = s.nextID
	s.tokens = append(s.tokens, &t)
	return t
}

// Step advances every slime by one frame and returns the crossings it caused, in slime order.
// It is the only code that changes the occupancy count.
func (s *State) Step() []Crossing {
	var crossings []Crossing
	fade := s.field.FadeArea()
	live := s.tokens[:0]

	for _, t := range s.tokens {
		t.Progress += simulation.ProgressStep
		t.Pos = t.Pos.Add(t.Target.Sub(t.Pos).Scale(simulation.EaseFactor))

		inside := s.field.Region.Contains(t.Pos)

		switch {
		case t.Direction == Entering && inside && !t.WasInside:
			s.occupancy++
			t.WasInside = true
			crossings = append(crossings, Crossing{TokenID: t.ID, Direction: Entering, Occupancy: s.occupancy, Pos: t.Pos})
		case t.Direction == Exiting && !inside && t.WasInside:
			s.occupancy = max(0, s.occupancy-1)
			t.WasInside = false
			crossings = append(crossings, Crossing{TokenID: t.ID, Direction: Exiting, Occupancy: s.occupancy, Pos: t.Pos})
		}

		t.Alpha = FadeAlpha(t.Direction, t.Progress, fade.Contains(t.Pos))

		if !t.Settled() {
			live = append(live, t)
		}
	}

	for i := len(live); i < len(s.tokens); i++ {
		s.tokens[i] = nil
	}
	s.tokens = live
	return crossings
}
