// Package eventlog keeps the human-readable record of slimes entering and leaving the region.
package eventlog

import (
	"fmt"
	"time"

	"chosenoffset.com/slimecount/internal/clock"
)

// Category selects how an entry is presented.
type Category int

const (
	Neutral Category = iota
	Enter
	Exit
)

func (c Category) String() string {
	switch c {
	case Enter:
		return "enter"
	case Exit:
		return "exit"
	default:
		return "neutral"
	}
}

// TimeFormat is the layout used for entry timestamps.
const TimeFormat = "15:04:05"

// Entry is a single log line.
type Entry struct {
	Time     time.Time
	Message  string
	Category Category
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s", e.Time.Format(TimeFormat), e.Message)
}

// Log is an append-only list of entries ordered by creation time.
type Log struct {
	clock   clock.Clock
	entries []Entry
}

// New creates an empty log stamping entries with c.
func New(c clock.Clock) *Log {
	return &Log{clock: c}
}

// Append adds an entry and returns it.
func (l *Log) Append(message string, category Category) Entry {
	e := Entry{
		Time:     l.clock.Now(),
		Message:  message,
		Category: category,
	}
	l.entries = append(l.entries, e)
	return e
}

// Entries returns a copy of every entry, oldest first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Tail returns up to n of the most recent entries, oldest first.
func (l *Log) Tail(n int) []Entry {
	if n <= 0 {
		return nil
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Entry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Clear removes every entry. It is called when a new round starts.
func (l *Log) Clear() {
	l.entries = nil
}

// EnterMessage is the text logged when a slime is counted inside.
func EnterMessage(inside int) string {
	return fmt.Sprintf("Slime entered (%d inside)", inside)
}

// ExitMessage is the text logged when a slime is counted out.
func ExitMessage(inside int) string {
	return fmt.Sprintf("Slime left (%d inside)", inside)
}
