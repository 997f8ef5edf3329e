package round

import (
	"chosenoffset.com/slimecount/internal/core/geom"
	"chosenoffset.com/slimecount/internal/simulation"
)

// Rand is the random source used by the spawner. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Spawner decides on each tick whether a slime enters, leaves or nothing happens.
//
// The two gates are independent: a slime enters when the first draw exceeds 0.5, otherwise
// one leaves when slimes are inside and a second draw exceeds 0.3. The second draw is only
// taken when the region is occupied.
type Spawner struct {
	field Field
	rng   Rand
}

// NewSpawner creates a spawner for field drawing from rng.
func NewSpawner(field Field, rng Rand) *Spawner {
	return &Spawner{field: field, rng: rng}
}

// Attempt runs one spawn tick against s. It returns the slime added, if any.
func (sp *Spawner) Attempt(s *State) (Token, bool) {
	shouldGoIn := sp.rng.Float64() > simulation.EnterThreshold
	canGoOut := s.Occupancy() > 0 && sp.rng.Float64() > simulation.ExitThreshold

	var t Token
	switch {
	case shouldGoIn:
		t = sp.entering()
	case canGoOut:
		t = sp.exiting()
	default:
		return Token{}, false
	}
	return s.Add(t), true
}

func (sp *Spawner) entering() Token {
	canvas := sp.field.Canvas
	x := canvas.X - simulation.EnterOffset
	if sp.rng.Float64() >= 0.5 {
		x = canvas.X + canvas.Width + simulation.EnterOffset
	}
	y := sp.between(simulation.EnterMinY, simulation.EnterMaxY)
	return NewToken(geom.Point{X: x, Y: y}, sp.insideSpawnArea(), Entering)
}

func (sp *Spawner) exiting() Token {
	canvas := sp.field.Canvas
	pos := sp.insideSpawnArea()
	tx := canvas.X - simulation.ExitOffset
	if pos.X >= canvas.X+canvas.Width/2 {
		tx = canvas.X + canvas.Width + simulation.ExitOffset
	}
	ty := sp.between(simulation.ExitMinY, simulation.ExitMaxY)
	return NewToken(pos, geom.Point{X: tx, Y: ty}, Exiting)
}

func (sp *Spawner) insideSpawnArea() geom.Point {
	area := sp.field.FadeArea()
	corner := area.Max()
	return geom.Point{
		X: sp.between(area.X, corner.X),
		Y: sp.between(area.Y, corner.Y),
	}
}

func (sp *Spawner) between(lo, hi float64) float64 {
	return sp.rng.Float64()*(hi-lo) + lo
}
