package game

// Presentation-safe projections. The hidden category id stays inside the
// engine; these are the only shapes that should cross to a UI or onto the
// wire before reveal.

// CardView is a card without its hidden category assignment.
type CardView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// PileView is a pile with its cards resolved, category revealed only once
// complete.
type PileView struct {
	ID               string     `json:"id"`
	Cards            []CardView `json:"cards"`
	Complete         bool       `json:"complete"`
	RevealedCategory string     `json:"revealedCategory,omitempty"`
}

// StateView is the full render model for one snapshot.
type StateView struct {
	Ungrouped         []CardView `json:"ungrouped"`
	Piles             []PileView `json:"piles"`
	Mistakes          int        `json:"mistakes"`
	Completed         int        `json:"completed"`
	CorrectlyPlaced   int        `json:"correctlyPlaced"`
	CompletionPercent int        `json:"completionPercent"`
	TotalCards        int        `json:"totalCards"`
}

// Snapshot projects a state into its presentation view.
func Snapshot(s State) StateView {
	ungrouped := UngroupedCards(s)
	view := StateView{
		Ungrouped:         make([]CardView, 0, len(ungrouped)),
		Piles:             make([]PileView, 0, len(s.Piles)),
		Mistakes:          s.Mistakes,
		Completed:         s.Completed,
		CorrectlyPlaced:   CorrectlyPlacedCount(s),
		CompletionPercent: CompletionPercentage(s),
		TotalCards:        len(s.Cards),
	}

	for _, c := range ungrouped {
		view.Ungrouped = append(view.Ungrouped, CardView{ID: c.ID, Title: c.Title})
	}
	for _, p := range s.Piles {
		pv := PileView{
			ID:               p.ID,
			Cards:            make([]CardView, 0, len(p.CardIDs)),
			Complete:         p.Complete,
			RevealedCategory: p.RevealedCategory,
		}
		for _, c := range PileCards(s, p.ID) {
			pv.Cards = append(pv.Cards, CardView{ID: c.ID, Title: c.Title})
		}
		view.Piles = append(view.Piles, pv)
	}
	return view
}
