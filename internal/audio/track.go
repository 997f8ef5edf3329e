// Package audio plays the background music of a round and fades it in and out.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Track is a looping music track with a linear volume in [0,1].
type Track interface {
	Play()
	Pause()
	Rewind() error
	SetVolume(v float64)
	Volume() float64
	Playing() bool
}

var (
	initOnce sync.Once
	initErr  error
)

// Init opens the speaker. It is safe to call more than once.
func Init() error {
	initOnce.Do(func() {
		initErr = speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	})
	return initErr
}

// Music is a wav file looped through the speaker.
type Music struct {
	src    beep.StreamSeekCloser
	ctrl   *beep.Ctrl
	volume *effects.Volume
	level  float64
}

// Open decodes a wav file and attaches it, paused and silent, to the speaker.
// Init must have succeeded first.
func Open(path string) (*Music, error) {
	if err := Init(); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open music: %w", err)
	}

	src, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	var stream beep.Streamer = beep.Loop(-1, src)
	if format.SampleRate != sampleRate {
		stream = beep.Resample(4, format.SampleRate, sampleRate, stream)
	}

	m := &Music{src: src}
	m.ctrl = &beep.Ctrl{Streamer: stream, Paused: true}
	m.volume = &effects.Volume{Streamer: m.ctrl, Base: 2, Silent: true}
	speaker.Play(m.volume)
	return m, nil
}

// Play resumes playback from the current position.
func (m *Music) Play() {
	speaker.Lock()
	m.ctrl.Paused = false
	speaker.Unlock()
}

// Pause stops playback, keeping the position.
func (m *Music) Pause() {
	speaker.Lock()
	m.ctrl.Paused = true
	speaker.Unlock()
}

// Rewind moves playback to the start of the track.
func (m *Music) Rewind() error {
	speaker.Lock()
	defer speaker.Unlock()
	if err := m.src.Seek(0); err != nil {
		return fmt.Errorf("failed to rewind music: %w", err)
	}
	return nil
}

// SetVolume sets the linear volume, clamped to [0,1].
func (m *Music) SetVolume(v float64) {
	v = clamp01(v)
	exp, silent := gain(v)
	speaker.Lock()
	m.level = v
	m.volume.Volume = exp
	m.volume.Silent = silent
	speaker.Unlock()
}

// Volume returns the linear volume last set.
func (m *Music) Volume() float64 {
	speaker.Lock()
	defer speaker.Unlock()
	return m.level
}

// Playing reports whether the track is unpaused.
func (m *Music) Playing() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return !m.ctrl.Paused
}

// Close detaches the track and releases the file.
func (m *Music) Close() error {
	speaker.Lock()
	m.ctrl.Streamer = nil
	speaker.Unlock()
	return m.src.Close()
}

// gain maps a linear volume to a base-2 exponent for effects.Volume.
func gain(v float64) (exponent float64, silent bool) {
	if v <= 0 {
		return 0, true
	}
	return math.Log2(v), false
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Silent is a Track that only records its state. It stands in when no audio device or music
// file is available.
type Silent struct {
	level   float64
	playing bool
	rewinds int
}

func (s *Silent) Play()               { s.playing = true }
func (s *Silent) Pause()              { s.playing = false }
func (s *Silent) Rewind() error       { s.rewinds++; return nil }
func (s *Silent) SetVolume(v float64) { s.level = clamp01(v) }
func (s *Silent) Volume() float64     { return s.level }
func (s *Silent) Playing() bool       { return s.playing }

// Rewinds returns how many times the track was rewound.
func (s *Silent) Rewinds() int { return s.rewinds }

// ErrDisabled is returned by Load when audio is turned off in the configuration.
var ErrDisabled = errors.New("audio disabled")

// Load opens path when enabled, otherwise it returns a Silent track with the reason.
func Load(path string, enabled bool) (Track, error) {
	if !enabled {
		return &Silent{}, ErrDisabled
	}
	m, err := Open(path)
	if err != nil {
		return &Silent{}, err
	}
	return m, nil
}
