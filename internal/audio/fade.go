package audio

import (
	"time"

	"chosenoffset.com/slimecount/internal/clock"
)

// FadeStep is the volume change applied on each fade tick. A fade over d ticks every
// d*FadeStep, so it always takes 1/FadeStep ticks end to end.
const FadeStep = 0.02

// DefaultFadeDuration is how long a full fade takes.
const DefaultFadeDuration = 2 * time.Second

const snap = 1e-9

// Ticker registers repeating tasks. *clock.Scope satisfies it.
type Ticker interface {
	Every(period time.Duration, fn func(at time.Time)) *clock.Handle
}

// FadeIn sets the volume to zero and raises it linearly to full over d.
func FadeIn(t Ticker, tr Track, d time.Duration) *clock.Handle {
	tr.SetVolume(0)
	return fade(t, tr, d, FadeStep, nil)
}

// FadeOut lowers the volume linearly to zero over d, then pauses and rewinds the track.
// done, if not nil, receives the rewind result once the fade has finished.
func FadeOut(t Ticker, tr Track, d time.Duration, done func(error)) *clock.Handle {
	return fade(t, tr, d, -FadeStep, func() {
		tr.Pause()
		err := tr.Rewind()
		if done != nil {
			done(err)
		}
	})
}

func fade(t Ticker, tr Track, d time.Duration, delta float64, done func()) *clock.Handle {
	period := time.Duration(float64(d) * FadeStep)
	if period <= 0 {
		period = time.Millisecond
	}

	var h *clock.Handle
	h = t.Every(period, func(time.Time) {
		v := tr.Volume() + delta
		switch {
		case v >= 1-snap:
			v = 1
		case v <= snap:
			v = 0
		}
		tr.SetVolume(v)

		if (delta > 0 && v == 1) || (delta < 0 && v == 0) {
			h.Cancel()
			if done != nil {
				done()
			}
		}
	})
	return h
}
