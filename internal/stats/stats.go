// Package stats aggregates per-session gameplay statistics from the game
// event stream.
package stats

import (
	"time"

	"github.com/coder/quartz"

	"github.com/lox/groupsort/internal/game"
)

// Stats is a snapshot of the counters for one session.
type Stats struct {
	Moves       int // accepted grouping moves (pile creations and additions)
	Mistakes    int // rejected grouping attempts
	Completions int // piles completed (splits of complete piles don't subtract)
	Splits      int
	Resets      int
	Won         bool
	Elapsed     time.Duration
}

// Attempts is the total number of grouping attempts, accepted or not.
func (s Stats) Attempts() int {
	return s.Moves + s.Mistakes
}

// Accuracy is the fraction of attempts that were accepted, 0 when there have
// been none.
func (s Stats) Accuracy() float64 {
	if s.Attempts() == 0 {
		return 0
	}
	return float64(s.Moves) / float64(s.Attempts())
}

// MovesPerMinute is the accepted-move rate over the elapsed time.
func (s Stats) MovesPerMinute() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Moves) / s.Elapsed.Minutes()
}

// Recorder subscribes to a session's event bus and accumulates Stats. Like
// the session itself it expects a single dispatch stream; it is not safe for
// concurrent use.
type Recorder struct {
	clock     quartz.Clock
	startedAt time.Time
	stats     Stats
}

// NewRecorder creates a recorder on the given clock.
func NewRecorder(clock quartz.Clock) *Recorder {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Recorder{clock: clock, startedAt: clock.Now()}
}

// OnEvent implements game.EventSubscriber.
func (r *Recorder) OnEvent(event game.Event) {
	switch event.(type) {
	case game.PileCreatedEvent:
		// A creation places two cards but is one accepted move.
		r.stats.Moves++
	case game.CardAddedEvent:
		r.stats.Moves++
	case game.PileCompletedEvent:
		r.stats.Completions++
	case game.PileSplitEvent:
		r.stats.Splits++
	case game.MistakeEvent:
		r.stats.Mistakes++
	case game.GameWonEvent:
		r.stats.Won = true
	case game.GameResetEvent:
		r.stats = Stats{Resets: r.stats.Resets + 1}
		r.startedAt = r.clock.Now()
	}
}

// Snapshot returns the current counters with elapsed time filled in.
func (r *Recorder) Snapshot() Stats {
	out := r.stats
	out.Elapsed = r.clock.Now().Sub(r.startedAt)
	return out
}
