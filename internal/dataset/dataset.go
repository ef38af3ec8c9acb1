// Package dataset loads and validates the categorized card universe the game
// is played over. The raw resource groups cards under their hidden categories;
// loading flattens that into a single shuffled card list so the grouping is
// never visible in the display order.
package dataset

import "fmt"

// Universe cardinality for the canonical dataset. Both values are
// configuration rather than rules baked into the engine, so the same loader
// and engine serve smaller development fixtures.
const (
	DefaultCategoryCount = 45
	DefaultCategorySize  = 45
)

// RawCard is a single card as it appears in the source resource.
type RawCard struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// RawCategory is a named category and the cards it secretly owns.
type RawCategory struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Cards []RawCard `json:"cards"`
}

// RawDataset is the top-level shape of the source resource.
type RawDataset struct {
	Categories []RawCategory `json:"categories"`
}

// Category is a loaded category. Immutable after load.
type Category struct {
	ID   string
	Name string
}

// Card is a loaded card. CategoryID is the hidden group assignment; it must
// never be shown to the player before the owning pile completes.
type Card struct {
	ID         string
	Title      string
	CategoryID string
}

// ValidationError describes the first violation found while validating a raw
// dataset. Category and Card identify the offending entities where known;
// Index is the position within the parent collection.
type ValidationError struct {
	Category string
	Card     string
	Index    int
	Reason   string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Card != "" && e.Category != "":
		return fmt.Sprintf("dataset: card %q in category %q: %s", e.Card, e.Category, e.Reason)
	case e.Category != "":
		return fmt.Sprintf("dataset: category %q: %s", e.Category, e.Reason)
	default:
		return fmt.Sprintf("dataset: entry %d: %s", e.Index, e.Reason)
	}
}
