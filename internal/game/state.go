package game

import "github.com/lox/groupsort/internal/dataset"

// Rules configures the per-category pile capacity. The canonical game uses
// dataset.DefaultCategorySize; fixtures use smaller values.
type Rules struct {
	CategorySize int
}

// DefaultRules returns the canonical rules.
func DefaultRules() Rules {
	return Rules{CategorySize: dataset.DefaultCategorySize}
}

// Pile is a player-formed group of cards. Piles are created with exactly two
// cards, grow one card at a time, and lock once they reach the category size.
type Pile struct {
	ID      string
	CardIDs []string

	// Complete is true iff len(CardIDs) == Rules.CategorySize. Once set it
	// stays set until the pile is split away.
	Complete bool

	// RevealedCategory is the category name shown to the player, set exactly
	// when the pile completes. Empty while the pile is open.
	RevealedCategory string
}

// State is one immutable snapshot of a game. Transitions never modify a State
// in place; Apply returns a fresh snapshot sharing the card universe.
type State struct {
	// Cards is the full universe in display order. Set once at construction
	// and retained unchanged by every transition, including reset.
	Cards []dataset.Card

	Piles     []Pile
	Mistakes  int
	Completed int

	Rules Rules
}

// NewState creates the initial state over an already-loaded card universe.
func NewState(cards []dataset.Card, rules Rules) State {
	return State{Cards: cards, Rules: rules}
}

// clone copies the snapshot deeply enough that appends to pile card lists in
// the copy cannot alias the original. Cards are shared: they are immutable.
func (s State) clone() State {
	out := s
	out.Piles = make([]Pile, len(s.Piles))
	for i, p := range s.Piles {
		out.Piles[i] = p
		out.Piles[i].CardIDs = append([]string(nil), p.CardIDs...)
	}
	return out
}

// cardByID resolves a card in the universe, reporting whether it exists.
func (s State) cardByID(id string) (dataset.Card, bool) {
	for _, c := range s.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return dataset.Card{}, false
}

// pileIndex returns the index of the pile with the given id, or -1.
func (s State) pileIndex(id string) int {
	for i := range s.Piles {
		if s.Piles[i].ID == id {
			return i
		}
	}
	return -1
}
