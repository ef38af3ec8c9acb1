package dataset

import (
	"encoding/json"
	"fmt"
	rand "math/rand/v2"
	"os"

	"github.com/lox/groupsort/internal/randutil"
)

// Config controls validation strictness and the expected universe shape.
type Config struct {
	// Strict enforces the exact cardinality below: CategoryCount categories of
	// CategorySize cards each. Relaxed mode skips only the cardinality checks;
	// shape and id-uniqueness checks always run.
	Strict bool

	CategoryCount int
	CategorySize  int
}

// DefaultConfig returns the strict canonical configuration.
func DefaultConfig() Config {
	return Config{
		Strict:        true,
		CategoryCount: DefaultCategoryCount,
		CategorySize:  DefaultCategorySize,
	}
}

// Load validates raw and flattens it into the loaded category and card lists.
// The returned cards carry their hidden category id and are in uniformly
// random display order drawn from rng; raw is never modified. Loading fails
// fast on the first violation found.
func Load(raw RawDataset, cfg Config, rng *rand.Rand) ([]Category, []Card, error) {
	if len(raw.Categories) == 0 {
		return nil, nil, &ValidationError{Reason: "no categories"}
	}
	if cfg.Strict && len(raw.Categories) != cfg.CategoryCount {
		return nil, nil, &ValidationError{
			Reason: fmt.Sprintf("expected %d categories, got %d", cfg.CategoryCount, len(raw.Categories)),
		}
	}

	categories := make([]Category, 0, len(raw.Categories))
	cards := make([]Card, 0, len(raw.Categories)*cfg.CategorySize)
	seenCategories := make(map[string]bool, len(raw.Categories))
	seenCards := make(map[string]string) // card id -> owning category id

	for i, rc := range raw.Categories {
		if rc.ID == "" {
			return nil, nil, &ValidationError{Index: i, Reason: "category has empty id"}
		}
		if rc.Name == "" {
			return nil, nil, &ValidationError{Category: rc.ID, Index: i, Reason: "category has empty name"}
		}
		if seenCategories[rc.ID] {
			return nil, nil, &ValidationError{Category: rc.ID, Index: i, Reason: "duplicate category id"}
		}
		seenCategories[rc.ID] = true

		if cfg.Strict && len(rc.Cards) != cfg.CategorySize {
			return nil, nil, &ValidationError{
				Category: rc.ID,
				Index:    i,
				Reason:   fmt.Sprintf("expected %d cards, got %d", cfg.CategorySize, len(rc.Cards)),
			}
		}

		for j, c := range rc.Cards {
			if c.ID == "" {
				return nil, nil, &ValidationError{Category: rc.ID, Index: j, Reason: "card has empty id"}
			}
			if c.Title == "" {
				return nil, nil, &ValidationError{Category: rc.ID, Card: c.ID, Index: j, Reason: "card has empty title"}
			}
			if owner, dup := seenCards[c.ID]; dup {
				return nil, nil, &ValidationError{
					Category: rc.ID,
					Card:     c.ID,
					Index:    j,
					Reason:   fmt.Sprintf("duplicate card id, already in category %q", owner),
				}
			}
			seenCards[c.ID] = rc.ID
			cards = append(cards, Card{ID: c.ID, Title: c.Title, CategoryID: rc.ID})
		}

		categories = append(categories, Category{ID: rc.ID, Name: rc.Name})
	}

	return categories, randutil.Shuffled(cards, rng), nil
}

// LoadFile reads a JSON dataset resource from disk and loads it.
func LoadFile(path string, cfg Config, rng *rand.Rand) ([]Category, []Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read dataset: %w", err)
	}

	var raw RawDataset
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	categories, cards, err := Load(raw, cfg, rng)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return categories, cards, nil
}
