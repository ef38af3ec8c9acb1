package game

import (
	"math"

	"github.com/lox/groupsort/internal/dataset"
)

// The query layer: derived read-only views over a snapshot. None of these
// modify state and all may be recomputed freely on every render.

// UngroupedCards returns the cards not held by any pile, in the universe's
// own display order.
func UngroupedCards(s State) []dataset.Card {
	grouped := make(map[string]bool)
	for _, p := range s.Piles {
		for _, id := range p.CardIDs {
			grouped[id] = true
		}
	}

	out := make([]dataset.Card, 0, len(s.Cards)-len(grouped))
	for _, c := range s.Cards {
		if !grouped[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// PileCards resolves a pile's cards in insertion order, silently skipping ids
// that fail to resolve. Nil for an unknown pile.
func PileCards(s State, pileID string) []dataset.Card {
	i := s.pileIndex(pileID)
	if i < 0 {
		return nil
	}

	out := make([]dataset.Card, 0, len(s.Piles[i].CardIDs))
	for _, id := range s.Piles[i].CardIDs {
		if c, ok := s.cardByID(id); ok {
			out = append(out, c)
		}
	}
	return out
}

// CategoryNameOf looks up a category's revealable name.
func CategoryNameOf(categoryID string, categories []dataset.Category) (string, bool) {
	for _, c := range categories {
		if c.ID == categoryID {
			return c.Name, true
		}
	}
	return "", false
}

// CorrectlyPlacedCount is the total number of cards sitting in piles. Sound
// because every insertion was gated on category match before the engine
// accepted it.
func CorrectlyPlacedCount(s State) int {
	n := 0
	for _, p := range s.Piles {
		n += len(p.CardIDs)
	}
	return n
}

// CompletionPercentage is the rounded percentage of the universe locked into
// complete piles. Zero for an empty universe.
func CompletionPercentage(s State) int {
	if len(s.Cards) == 0 {
		return 0
	}
	done := float64(s.Completed * s.Rules.CategorySize)
	return int(math.Round(done / float64(len(s.Cards)) * 100))
}

// PileContaining returns the first pile holding the card, or nil.
func PileContaining(s State, cardID string) *Pile {
	for i := range s.Piles {
		for _, id := range s.Piles[i].CardIDs {
			if id == cardID {
				return &s.Piles[i]
			}
		}
	}
	return nil
}
