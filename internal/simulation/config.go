// Package simulation holds the fixed rules of a round: difficulty levels, spawn cadence,
// round durations and the canvas layout the slimes move on.
package simulation

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty selects how often the spawner runs.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	VeryHard
)

// Difficulties lists every level in selector order.
var Difficulties = []Difficulty{Easy, Medium, Hard, VeryHard}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case VeryHard:
		return "veryhard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// Label is the name shown in selectors.
func (d Difficulty) Label() string {
	switch d {
	case VeryHard:
		return "Very hard"
	case Easy, Medium, Hard:
		s := d.String()
		return strings.ToUpper(s[:1]) + s[1:]
	default:
		return d.String()
	}
}

// SpawnInterval returns the time between spawn attempts.
func (d Difficulty) SpawnInterval() time.Duration {
	switch d {
	case Medium:
		return 500 * time.Millisecond
	case Hard:
		return 300 * time.Millisecond
	case VeryHard:
		return 100 * time.Millisecond
	default:
		return 1000 * time.Millisecond
	}
}

// ParseDifficulty converts a selector value (easy, medium, hard, veryhard) to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	case "veryhard", "very-hard", "very_hard":
		return VeryHard, nil
	default:
		return Easy, fmt.Errorf("unknown difficulty %q", s)
	}
}

// RoundConfig is what the player picks before pressing start
type RoundConfig struct {
	Difficulty Difficulty
	Duration   time.Duration
}

// Validate rejects configurations a round cannot run with.
func (c RoundConfig) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("round duration must be positive, got %s", c.Duration)
	}
	if c.Difficulty < Easy || c.Difficulty > VeryHard {
		return fmt.Errorf("invalid difficulty %d", int(c.Difficulty))
	}
	return nil
}

// DefaultDurations are the round lengths offered by the duration selector.
func DefaultDurations() []time.Duration {
	return []time.Duration{
		10 * time.Second,
		20 * time.Second,
		30 * time.Second,
		60 * time.Second,
	}
}

// DefaultRoundConfig returns the selection shown on first launch.
func DefaultRoundConfig() RoundConfig {
	return RoundConfig{
		Difficulty: Easy,
		Duration:   20 * time.Second,
	}
}
