package session

import (
	"fmt"
	"time"
)

// Deadline is the single authority on how long a round lasts. The countdown display and the
// spawner both ask it, so they cannot disagree about when the round is over.
type Deadline struct {
	start    time.Time
	duration time.Duration
}

// NewDeadline creates a deadline for a round starting at start and lasting d.
func NewDeadline(start time.Time, d time.Duration) Deadline {
	return Deadline{start: start, duration: d}
}

// Start returns when the round began.
func (d Deadline) Start() time.Time { return d.start }

// Duration returns the round length.
func (d Deadline) Duration() time.Duration { return d.duration }

// At returns the instant the round ends.
func (d Deadline) At() time.Time {
	return d.start.Add(d.duration)
}

// Remaining returns the time left at t, never negative.
func (d Deadline) Remaining(t time.Time) time.Duration {
	return max(0, d.duration-t.Sub(d.start))
}

// Expired reports whether the round is over at t. A round is active while elapsed < duration.
func (d Deadline) Expired(t time.Time) bool {
	return !t.Before(d.At())
}

// CountdownText formats the countdown display for a remaining duration.
func CountdownText(remaining time.Duration) string {
	return fmt.Sprintf("Time left: %.1fs", remaining.Seconds())
}

// TimeUpText replaces the countdown once the round is over.
const TimeUpText = "Time's up!"

// AnswerText formats the revealed answer.
func AnswerText(n int) string {
	if n == 1 {
		return "Answer: 1 slime is inside!"
	}
	return fmt.Sprintf("Answer: %d slimes are inside!", n)
}
