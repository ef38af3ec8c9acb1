package game

// Action is a state transition request. The engine applies actions it is
// given without re-checking gameplay legality; callers are expected to consult
// the validation gate first (Session does this).
type Action interface {
	actionTag()
}

// CreatePile starts a new pile from two cards. The pile id is supplied by the
// caller so that ids can be generated and referenced before dispatch.
type CreatePile struct {
	PileID       string
	FirstCardID  string
	SecondCardID string
}

// AddCardToPile appends a card to an open pile. RevealedName is the category
// name to reveal if this addition completes the pile; the engine itself has no
// access to category metadata, so the caller resolves it.
type AddCardToPile struct {
	PileID       string
	CardID       string
	RevealedName string
}

// SplitPile removes a pile entirely, returning its cards to the ungrouped
// pool. The pile identity is destroyed, not reopened.
type SplitPile struct {
	PileID string
}

// IncrementMistake counts one rejected grouping attempt.
type IncrementMistake struct{}

// ResetGame clears all piles and counters while retaining the card universe
// and its display order.
type ResetGame struct{}

func (CreatePile) actionTag()       {}
func (AddCardToPile) actionTag()    {}
func (SplitPile) actionTag()        {}
func (IncrementMistake) actionTag() {}
func (ResetGame) actionTag()        {}

// Outcome reports what the engine did with an action. Invalid references are
// distinguishable from applied transitions so callers and tests can assert on
// "ignored" versus "accepted" rather than inferring from state diffs.
type Outcome int

const (
	// OutcomeApplied means the action produced a new state.
	OutcomeApplied Outcome = iota

	// OutcomeIgnored means the action referenced an unknown card or pile, or
	// targeted a complete pile; the state was returned unchanged. This is a
	// wiring defect in the caller, not a gameplay mistake, and is never
	// counted against the player.
	OutcomeIgnored
)

func (o Outcome) String() string {
	if o == OutcomeApplied {
		return "applied"
	}
	return "ignored"
}

// Apply is the engine's pure transition function. It returns a new snapshot
// and never modifies s. Gameplay legality (same-category insertions) is the
// gate's concern, checked before dispatch; Apply only defends against
// references that don't resolve.
func Apply(s State, a Action) (State, Outcome) {
	switch act := a.(type) {
	case CreatePile:
		if _, ok := s.cardByID(act.FirstCardID); !ok {
			return s, OutcomeIgnored
		}
		if _, ok := s.cardByID(act.SecondCardID); !ok {
			return s, OutcomeIgnored
		}
		next := s.clone()
		next.Piles = append(next.Piles, Pile{
			ID:      act.PileID,
			CardIDs: []string{act.FirstCardID, act.SecondCardID},
		})
		return next, OutcomeApplied

	case AddCardToPile:
		i := s.pileIndex(act.PileID)
		if i < 0 || s.Piles[i].Complete {
			return s, OutcomeIgnored
		}
		if _, ok := s.cardByID(act.CardID); !ok {
			return s, OutcomeIgnored
		}
		next := s.clone()
		pile := &next.Piles[i]
		pile.CardIDs = append(pile.CardIDs, act.CardID)
		if len(pile.CardIDs) == next.Rules.CategorySize {
			pile.Complete = true
			pile.RevealedCategory = act.RevealedName
			next.Completed++
		}
		return next, OutcomeApplied

	case SplitPile:
		i := s.pileIndex(act.PileID)
		if i < 0 {
			return s, OutcomeIgnored
		}
		next := s.clone()
		if next.Piles[i].Complete {
			next.Completed--
		}
		next.Piles = append(next.Piles[:i], next.Piles[i+1:]...)
		return next, OutcomeApplied

	case IncrementMistake:
		next := s.clone()
		next.Mistakes++
		return next, OutcomeApplied

	case ResetGame:
		next := s.clone()
		next.Piles = nil
		next.Mistakes = 0
		next.Completed = 0
		return next, OutcomeApplied
	}
	return s, OutcomeIgnored
}
