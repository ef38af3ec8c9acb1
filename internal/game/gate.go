package game

import "github.com/lox/groupsort/internal/dataset"

// The validation gate: pure predicates consulted before dispatching an
// engine action. They never mutate, never error.

// CategoryOfPile returns the hidden category shared by a pile's cards,
// derived from its first card. Empty for an empty pile; the engine never
// produces one, since piles are always created with two cards.
func CategoryOfPile(p Pile, cards []dataset.Card) string {
	if len(p.CardIDs) == 0 {
		return ""
	}
	for _, c := range cards {
		if c.ID == p.CardIDs[0] {
			return c.CategoryID
		}
	}
	return ""
}

// CanAcceptCard reports whether card belongs in the pile: always true for an
// empty pile, otherwise the card must share the pile's hidden category.
func CanAcceptCard(card dataset.Card, p Pile, cards []dataset.Card) bool {
	cat := CategoryOfPile(p, cards)
	return cat == "" || card.CategoryID == cat
}

// WouldComplete reports whether adding one more card fills the pile.
func WouldComplete(p Pile, rules Rules) bool {
	return len(p.CardIDs)+1 == rules.CategorySize
}
