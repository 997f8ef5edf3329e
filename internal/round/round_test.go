package round

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/slimecount/internal/core/geom"
)

// scripted returns its values in order, then repeats the last one.
type scripted struct {
	values []float64
	i      int
}

func (s *scripted) Float64() float64 {
	v := s.values[min(s.i, len(s.values)-1)]
	s.i++
	return v
}

var start = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestEnteringTokenCrossesOnceThenSettles(t *testing.T) {
	s := NewState(DefaultField(), start)
	s.Add(NewToken(geom.Point{X: -40, Y: 300}, geom.Point{X: 500, Y: 300}, Entering))

	var enters, exits int
	frames := 0
	for s.Len() > 0 && frames < 1000 {
		for _, c := range s.Step() {
			if c.Direction == Entering {
				enters++
			} else {
				exits++
			}
		}
		frames++
	}

	require.Less(t, frames, 1000, "token never settled")
	assert.Equal(t, 1, enters)
	assert.Equal(t, 0, exits)
	assert.Equal(t, 1, s.Occupancy())
}

func TestEnteringCrossingHappensAtRegionEdge(t *testing.T) {
	s := NewState(DefaultField(), start)
	s.Add(NewToken(geom.Point{X: -40, Y: 300}, geom.Point{X: 500, Y: 300}, Entering))

	for {
		crossings := s.Step()
		if len(crossings) == 0 {
			continue
		}
		require.Len(t, crossings, 1)
		c := crossings[0]
		assert.GreaterOrEqual(t, c.Pos.X, 400.0)
		assert.Less(t, c.Pos.X, 420.0)
		assert.Equal(t, 1, c.Occupancy)
		assert.Equal(t, uint64(1), c.TokenID)
		break
	}
}

func TestExitingTokenDecrementsOccupancy(t *testing.T) {
	s := NewState(DefaultField(), start)
	s.Add(NewToken(geom.Point{X: 420, Y: 300}, geom.Point{X: 500, Y: 300}, Entering))
	s.Step()
	require.Equal(t, 1, s.Occupancy())

	s.Add(NewToken(geom.Point{X: 500, Y: 300}, geom.Point{X: 1060, Y: 300}, Exiting))

	var exits []Crossing
	for i := 0; i < 500 && s.Len() > 0; i++ {
		for _, c := range s.Step() {
			if c.Direction == Exiting {
				exits = append(exits, c)
			}
		}
	}

	require.Len(t, exits, 1)
	assert.Equal(t, 0, exits[0].Occupancy)
	assert.Equal(t, 0, s.Occupancy())
	assert.Greater(t, exits[0].Pos.X, 600.0)
}

func TestOccupancyClampsAtZero(t *testing.T) {
	s := NewState(DefaultField(), start)
	s.Add(NewToken(geom.Point{X: 420, Y: 300}, geom.Point{X: 500, Y: 300}, Entering))
	s.Step()
	require.Equal(t, 1, s.Occupancy())

	// Two exits were spawned while only one slime was counted inside.
	s.Add(NewToken(geom.Point{X: 590, Y: 300}, geom.Point{X: 1060, Y: 300}, Exiting))
	s.Add(NewToken(geom.Point{X: 595, Y: 250}, geom.Point{X: 1060, Y: 250}, Exiting))

	exits := 0
	for i := 0; i < 10; i++ {
		for _, c := range s.Step() {
			if c.Direction == Exiting {
				exits++
			}
			assert.GreaterOrEqual(t, c.Occupancy, 0)
		}
	}
	assert.Equal(t, 2, exits)
	assert.Equal(t, 0, s.Occupancy())
}

func TestTokenRemovedIffSettled(t *testing.T) {
	s := NewState(DefaultField(), start)
	s.Add(NewToken(geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 0}, Entering))
	s.Add(NewToken(geom.Point{X: 0, Y: 100}, geom.Point{X: 5.2, Y: 100}, Entering))

	s.Step()

	// 10 -> 9.5 remaining stays, 5.2 -> 4.94 remaining settles.
	tokens := s.Tokens()
	require.Len(t, tokens, 1)
	assert.Equal(t, uint64(1), tokens[0].ID)
	assert.InDelta(t, 9.5, tokens[0].Remaining(), 1e-9)
}

func TestFadeAlphaClamped(t *testing.T) {
	for p := -1.0; p <= 3.0; p += 0.01 {
		for _, dir := range []Direction{Entering, Exiting} {
			a := FadeAlpha(dir, p, true)
			assert.GreaterOrEqual(t, a, 0.0)
			assert.LessOrEqual(t, a, 1.0)
		}
	}

	assert.Equal(t, 1.0, FadeAlpha(Entering, 2, false))
	assert.Equal(t, 1.0, FadeAlpha(Entering, 0.3, true))
	assert.InDelta(t, 0.25, FadeAlpha(Entering, 0.8, true), 1e-9)
	assert.Equal(t, 0.0, FadeAlpha(Entering, 1.2, true))
	assert.InDelta(t, 0.5, FadeAlpha(Exiting, 0.2, true), 1e-9)
	assert.Equal(t, 1.0, FadeAlpha(Exiting, 0.6, true))
}

func TestSpawnerGates(t *testing.T) {
	field := DefaultField()

	t.Run("enters when first draw above half", func(t *testing.T) {
		s := NewState(field, start)
		// gate, side (left), y, target x, target y
		sp := NewSpawner(field, &scripted{values: []float64{0.9, 0.1, 0.5, 0.5, 0.5}})
		tok, ok := sp.Attempt(s)
		require.True(t, ok)
		assert.Equal(t, Entering, tok.Direction)
		assert.Equal(t, -40.0, tok.Pos.X)
		assert.Equal(t, 300.0, tok.Pos.Y)
		assert.Equal(t, geom.Point{X: 500, Y: 300}, tok.Target)
		assert.False(t, tok.WasInside)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("enters from the right", func(t *testing.T) {
		s := NewState(field, start)
		sp := NewSpawner(field, &scripted{values: []float64{0.9, 0.7, 0.0, 0.0, 0.0}})
		tok, ok := sp.Attempt(s)
		require.True(t, ok)
		assert.Equal(t, 1040.0, tok.Pos.X)
		assert.Equal(t, 100.0, tok.Pos.Y)
		assert.Equal(t, geom.Point{X: 430, Y: 230}, tok.Target)
	})

	t.Run("nothing leaves an empty region", func(t *testing.T) {
		s := NewState(field, start)
		rng := &scripted{values: []float64{0.2, 0.99}}
		sp := NewSpawner(field, rng)
		_, ok := sp.Attempt(s)
		assert.False(t, ok)
		assert.Equal(t, 1, rng.i, "second gate must not draw when empty")
		assert.Equal(t, 0, s.Len())
	})

	t.Run("exits when occupied and second gate passes", func(t *testing.T) {
		s := occupied(t, field)
		// gate in, gate out, x, y, target y
		sp := NewSpawner(field, &scripted{values: []float64{0.5, 0.31, 0.9, 0.5, 0.5}})
		tok, ok := sp.Attempt(s)
		require.True(t, ok)
		assert.Equal(t, Exiting, tok.Direction)
		assert.True(t, tok.WasInside)
		assert.InDelta(t, 556.0, tok.Pos.X, 1e-9)
		assert.Equal(t, 1060.0, tok.Target.X)
		assert.Equal(t, 300.0, tok.Target.Y)
	})

	t.Run("exit heads to the nearer edge", func(t *testing.T) {
		s := occupied(t, field)
		sp := NewSpawner(field, &scripted{values: []float64{0.1, 0.8, 0.1, 0.5, 0.0}})
		tok, ok := sp.Attempt(s)
		require.True(t, ok)
		assert.Equal(t, -60.0, tok.Target.X)
		assert.Equal(t, 50.0, tok.Target.Y)
	})

	t.Run("second gate fails", func(t *testing.T) {
		s := occupied(t, field)
		before := s.Len()
		sp := NewSpawner(field, &scripted{values: []float64{0.1, 0.3}})
		_, ok := sp.Attempt(s)
		assert.False(t, ok)
		assert.Equal(t, before, s.Len())
	})
}

func occupied(t *testing.T, field Field) *State {
	t.Helper()
	s := NewState(field, start)
	s.Add(NewToken(geom.Point{X: 420, Y: 300}, geom.Point{X: 500, Y: 300}, Entering))
	s.Step()
	require.Equal(t, 1, s.Occupancy())
	return s
}

func TestRandomRoundsKeepInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		s := NewState(DefaultField(), start)
		sp := NewSpawner(s.Field(), rng)

		for frame := 0; frame < 3000; frame++ {
			if frame%6 == 0 && frame < 2400 {
				sp.Attempt(s)
			}

			before := make(map[uint64]bool)
			for _, tok := range s.Tokens() {
				before[tok.ID] = tok.WasInside
			}

			crossings := s.Step()
			if s.Occupancy() < 0 {
				t.Fatalf("seed %d: negative occupancy", seed)
			}

			crossed := make(map[uint64]Direction)
			for _, c := range crossings {
				_, dup := crossed[c.TokenID]
				require.False(t, dup, "token crossed twice in one frame")
				crossed[c.TokenID] = c.Direction
			}

			after := make(map[uint64]Token)
			for _, tok := range s.Tokens() {
				after[tok.ID] = tok
				if tok.Alpha < 0 || tok.Alpha > 1 {
					t.Fatalf("seed %d: alpha %v out of range", seed, tok.Alpha)
				}
				if tok.Settled() {
					t.Fatalf("seed %d: settled token %d still live", seed, tok.ID)
				}
			}

			for id, was := range before {
				tok, alive := after[id]
				if !alive {
					continue
				}
				dir, did := crossed[id]
				if tok.WasInside != was {
					require.True(t, did, "flag flipped without a crossing")
					assert.Equal(t, tok.WasInside, dir == Entering)
				} else {
					require.False(t, did, "crossing without a flag flip")
				}
			}
		}

		assert.Equal(t, 0, s.Len(), "seed %d left slimes on the field", seed)
	}
}
