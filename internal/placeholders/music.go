package placeholders

import (
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

const sampleRate = beep.SampleRate(44100)

// Melody is the note sequence of the placeholder loop, in Hz.
var Melody = []float64{261.63, 329.63, 392.00, 523.25, 392.00, 329.63, 293.66, 349.23}

// NoteDuration is the length of each note.
const NoteDuration = 250 * time.Millisecond

// LoopDuration is the length of the whole loop.
var LoopDuration = time.Duration(len(Melody)) * NoteDuration

// Tune returns the placeholder melody as a finite stream.
func Tune() (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(Melody))
	for _, freq := range Melody {
		tone, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			return nil, fmt.Errorf("sine tone %.2f Hz: %w", freq, err)
		}
		quiet := &effects.Volume{Streamer: tone, Base: 2, Volume: -2}
		notes = append(notes, beep.Take(sampleRate.N(NoteDuration), quiet))
	}
	return beep.Seq(notes...), nil
}

// SaveMusic writes the placeholder melody as a 16-bit mono wav file.
func SaveMusic(path string) error {
	tune, err := Tune()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	format := beep.Format{SampleRate: sampleRate, NumChannels: 1, Precision: 2}
	return wav.Encode(f, tune, format)
}
