// Package round implements the slime field: the tokens moving toward or away from the region,
// the spawner that creates them and the per-frame step that moves them and keeps the
// occupancy count.
package round

import (
	"chosenoffset.com/slimecount/internal/core/geom"
	"chosenoffset.com/slimecount/internal/simulation"
)

// Direction tells whether a slime is heading into the region or leaving it.
type Direction int

const (
	Entering Direction = iota
	Exiting
)

func (d Direction) String() string {
	if d == Exiting {
		return "exiting"
	}
	return "entering"
}

// Token is a single slime.
type Token struct {
	// ID is assigned by State.Add and is unique within a round.
	ID        uint64
	Pos       geom.Point
	Target    geom.Point
	Progress  float64
	Direction Direction
	// WasInside is the last containment state recorded as a crossing.
	WasInside bool
	// Alpha is the render opacity computed by the last step.
	Alpha float64
}

// NewToken creates a slime at pos heading for target. Exiting slimes start inside the region,
// so their initial containment is already recorded.
func NewToken(pos, target geom.Point, dir Direction) Token {
	return Token{
		Pos:       pos,
		Target:    target,
		Direction: dir,
		WasInside: dir == Exiting,
		Alpha:     1,
	}
}

// Remaining returns the distance left to the target.
func (t Token) Remaining() float64 {
	return geom.Dist(t.Pos, t.Target)
}

// Settled reports whether the slime is close enough to its target to be removed.
func (t Token) Settled() bool {
	return t.Remaining() <= simulation.SettleDistance
}

// FadeAlpha returns the opacity of a slime. Outside the fade area slimes are opaque; inside
// it entering slimes fade out and exiting slimes fade in as their progress grows.
func FadeAlpha(dir Direction, progress float64, inFade bool) float64 {
	if !inFade {
		return 1
	}
	var a float64
	if dir == Entering {
		a = 1 - (progress-0.3)*1.5
	} else {
		a = progress * 2.5
	}
	return clamp01(a)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
