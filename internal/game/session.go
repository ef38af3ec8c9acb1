package game

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/groupsort/internal/dataset"
	"github.com/lox/groupsort/internal/pileid"
)

// Result classifies what happened to a try operation. Rejected mismatches are
// the only results counted against the player; the ignored results are
// wiring defects in the caller and leave state untouched.
type Result int

const (
	// ResultAccepted means the move was applied.
	ResultAccepted Result = iota

	// ResultRejectedMismatch means the card's hidden category didn't match
	// the target; a mistake was counted.
	ResultRejectedMismatch

	// ResultUnknownCard means a referenced card doesn't exist or isn't
	// available for grouping. Ignored, no mistake.
	ResultUnknownCard

	// ResultUnknownPile means the referenced pile doesn't exist. Ignored.
	ResultUnknownPile

	// ResultPileComplete means the target pile is already complete. Ignored;
	// the UI is expected to disable complete piles as drop targets.
	ResultPileComplete
)

func (r Result) String() string {
	switch r {
	case ResultAccepted:
		return "accepted"
	case ResultRejectedMismatch:
		return "mismatch"
	case ResultUnknownCard:
		return "unknown_card"
	case ResultUnknownPile:
		return "unknown_pile"
	case ResultPileComplete:
		return "pile_complete"
	default:
		return "unknown"
	}
}

// Accepted reports whether the move changed the grouping.
func (r Result) Accepted() bool { return r == ResultAccepted }

// SessionConfig configures a Session. Zero values get sensible defaults.
type SessionConfig struct {
	Rules  Rules
	Logger *log.Logger

	// Clock drives event timestamps and elapsed-time reporting. Defaults to
	// the real clock; tests inject quartz.NewMock.
	Clock quartz.Clock

	// NewPileID generates ids for created piles. Defaults to pileid.Generate.
	NewPileID func() string
}

// Session drives a single game. It owns the evolving state snapshot, consults
// the validation gate before dispatching engine actions, counts mistakes, and
// publishes events for presentation layers. Sessions are not safe for
// concurrent use; callers serialize moves into a single dispatch stream.
type Session struct {
	state      State
	categories []dataset.Category
	logger     *log.Logger
	bus        EventBus
	clock      quartz.Clock
	newPileID  func() string
	startedAt  time.Time
}

// NewSession creates a session over an already-loaded universe.
func NewSession(categories []dataset.Category, cards []dataset.Card, cfg SessionConfig) *Session {
	if cfg.Rules.CategorySize == 0 {
		cfg.Rules = DefaultRules()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.NewPileID == nil {
		cfg.NewPileID = pileid.Generate
	}

	return &Session{
		state:      NewState(cards, cfg.Rules),
		categories: categories,
		logger:     cfg.Logger.WithPrefix("session"),
		bus:        NewEventBus(),
		clock:      cfg.Clock,
		newPileID:  cfg.NewPileID,
		startedAt:  cfg.Clock.Now(),
	}
}

// State returns the current snapshot. Callers must treat it as immutable.
func (s *Session) State() State { return s.state }

// Categories returns the loaded category list.
func (s *Session) Categories() []dataset.Category { return s.categories }

// EventBus returns the bus presentation layers subscribe to.
func (s *Session) EventBus() EventBus { return s.bus }

// Elapsed is the time since the session started, on the session clock.
func (s *Session) Elapsed() time.Duration { return s.clock.Now().Sub(s.startedAt) }

// Won reports whether every category has been completed.
func (s *Session) Won() bool {
	return len(s.categories) > 0 && s.state.Completed == len(s.categories)
}

// TryCreatePile attempts to start a new pile from two ungrouped cards.
// Returns the new pile's id on success. Cards that don't resolve among the
// ungrouped pool are ignored without a mistake; a category mismatch counts
// one mistake.
func (s *Session) TryCreatePile(firstCardID, secondCardID string) (string, Result) {
	first, ok := s.ungroupedCard(firstCardID)
	if !ok {
		s.logger.Warn("create pile referenced unavailable card", "card", firstCardID)
		return "", ResultUnknownCard
	}
	second, ok := s.ungroupedCard(secondCardID)
	if !ok || firstCardID == secondCardID {
		s.logger.Warn("create pile referenced unavailable card", "card", secondCardID)
		return "", ResultUnknownCard
	}

	if first.CategoryID != second.CategoryID {
		s.recordMistake(secondCardID, "")
		return "", ResultRejectedMismatch
	}

	id := s.newPileID()
	next, outcome := Apply(s.state, CreatePile{PileID: id, FirstCardID: firstCardID, SecondCardID: secondCardID})
	if outcome != OutcomeApplied {
		return "", ResultUnknownCard
	}
	s.state = next

	s.logger.Debug("pile created", "pile", id, "cards", []string{firstCardID, secondCardID})
	s.bus.Publish(PileCreatedEvent{
		PileID:    id,
		CardIDs:   []string{firstCardID, secondCardID},
		timestamp: s.clock.Now(),
	})
	return id, ResultAccepted
}

// TryAddCard attempts to add an ungrouped card to an existing pile. A
// mismatch counts a mistake; unknown references and complete targets are
// ignored without one, each with its own result.
func (s *Session) TryAddCard(cardID, pileID string) Result {
	i := s.state.pileIndex(pileID)
	if i < 0 {
		s.logger.Warn("add card referenced unknown pile", "pile", pileID)
		return ResultUnknownPile
	}
	pile := s.state.Piles[i]
	if pile.Complete {
		return ResultPileComplete
	}

	card, ok := s.ungroupedCard(cardID)
	if !ok {
		s.logger.Warn("add card referenced unavailable card", "card", cardID)
		return ResultUnknownCard
	}

	if !CanAcceptCard(card, pile, s.state.Cards) {
		s.recordMistake(cardID, pileID)
		return ResultRejectedMismatch
	}

	var revealed string
	if WouldComplete(pile, s.state.Rules) {
		// The engine has no category metadata; resolve the name here.
		revealed, _ = CategoryNameOf(card.CategoryID, s.categories)
	}

	next, outcome := Apply(s.state, AddCardToPile{PileID: pileID, CardID: cardID, RevealedName: revealed})
	if outcome != OutcomeApplied {
		return ResultUnknownPile
	}
	s.state = next

	now := s.clock.Now()
	completed := s.state.Piles[s.state.pileIndex(pileID)]
	s.logger.Debug("card added", "pile", pileID, "card", cardID, "size", len(completed.CardIDs))
	s.bus.Publish(CardAddedEvent{PileID: pileID, CardID: cardID, PileSize: len(completed.CardIDs), timestamp: now})

	if completed.Complete {
		s.logger.Info("pile completed", "pile", pileID, "category", completed.RevealedCategory)
		s.bus.Publish(PileCompletedEvent{
			PileID:       pileID,
			RevealedName: completed.RevealedCategory,
			Completed:    s.state.Completed,
			timestamp:    now,
		})
		if s.Won() {
			s.logger.Info("game won", "mistakes", s.state.Mistakes, "elapsed", s.Elapsed())
			s.bus.Publish(GameWonEvent{Mistakes: s.state.Mistakes, timestamp: now})
		}
	}
	return ResultAccepted
}

// Split destroys a pile, returning its cards to the ungrouped pool.
func (s *Session) Split(pileID string) Result {
	i := s.state.pileIndex(pileID)
	if i < 0 {
		s.logger.Warn("split referenced unknown pile", "pile", pileID)
		return ResultUnknownPile
	}
	wasComplete := s.state.Piles[i].Complete

	next, outcome := Apply(s.state, SplitPile{PileID: pileID})
	if outcome != OutcomeApplied {
		return ResultUnknownPile
	}
	s.state = next

	s.logger.Debug("pile split", "pile", pileID, "wasComplete", wasComplete)
	s.bus.Publish(PileSplitEvent{PileID: pileID, WasComplete: wasComplete, timestamp: s.clock.Now()})
	return ResultAccepted
}

// Reset clears piles and counters, retaining the card universe and its
// display order, and restarts the session clock.
func (s *Session) Reset() {
	s.state, _ = Apply(s.state, ResetGame{})
	s.startedAt = s.clock.Now()
	s.logger.Info("game reset")
	s.bus.Publish(GameResetEvent{timestamp: s.startedAt})
}

// ungroupedCard resolves a card only if it exists and isn't already piled.
func (s *Session) ungroupedCard(id string) (dataset.Card, bool) {
	card, ok := s.state.cardByID(id)
	if !ok || PileContaining(s.state, id) != nil {
		return dataset.Card{}, false
	}
	return card, true
}

func (s *Session) recordMistake(cardID, pileID string) {
	s.state, _ = Apply(s.state, IncrementMistake{})
	s.logger.Debug("grouping rejected", "card", cardID, "pile", pileID, "mistakes", s.state.Mistakes)
	s.bus.Publish(MistakeEvent{
		CardID:    cardID,
		PileID:    pileID,
		Mistakes:  s.state.Mistakes,
		timestamp: s.clock.Now(),
	})
}
