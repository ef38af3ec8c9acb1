package game

import (
	"fmt"

	"github.com/lox/groupsort/internal/dataset"
)

// The standard test universe: two categories of three cards each, played with
// CategorySize 3.

func testCategories() []dataset.Category {
	return []dataset.Category{
		{ID: "cat-1", Name: "Red"},
		{ID: "cat-2", Name: "Blue"},
	}
}

func testCards() []dataset.Card {
	return []dataset.Card{
		{ID: "card-1", Title: "One", CategoryID: "cat-1"},
		{ID: "card-2", Title: "Two", CategoryID: "cat-1"},
		{ID: "card-3", Title: "Three", CategoryID: "cat-1"},
		{ID: "card-4", Title: "Four", CategoryID: "cat-2"},
		{ID: "card-5", Title: "Five", CategoryID: "cat-2"},
		{ID: "card-6", Title: "Six", CategoryID: "cat-2"},
	}
}

func testRules() Rules {
	return Rules{CategorySize: 3}
}

func testState() State {
	return NewState(testCards(), testRules())
}

// sequentialIDs returns a pile id generator yielding "pile-1", "pile-2", ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("pile-%d", n)
	}
}

// checkInvariants verifies the cross-transition invariants on a state.
func checkInvariants(s State) error {
	seen := make(map[string]string)
	completed := 0
	for _, p := range s.Piles {
		if len(p.CardIDs) > s.Rules.CategorySize {
			return fmt.Errorf("pile %s exceeds category size: %d", p.ID, len(p.CardIDs))
		}
		if p.Complete != (len(p.CardIDs) == s.Rules.CategorySize) {
			return fmt.Errorf("pile %s complete flag inconsistent with size %d", p.ID, len(p.CardIDs))
		}
		if p.Complete != (p.RevealedCategory != "") {
			return fmt.Errorf("pile %s revealed name inconsistent with completion", p.ID)
		}
		if p.Complete {
			completed++
		}
		for _, id := range p.CardIDs {
			if other, dup := seen[id]; dup {
				return fmt.Errorf("card %s in piles %s and %s", id, other, p.ID)
			}
			seen[id] = p.ID
		}
	}
	if completed != s.Completed {
		return fmt.Errorf("completed count %d, but %d complete piles", s.Completed, completed)
	}
	if s.Mistakes < 0 {
		return fmt.Errorf("negative mistakes: %d", s.Mistakes)
	}
	return nil
}
