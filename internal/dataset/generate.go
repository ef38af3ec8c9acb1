package dataset

import "fmt"

// Generate builds a synthetic dataset with the given shape, for development
// fixtures and load testing. Ids are stable ("cat-3", "card-3-17") so fixture
// assertions can reference them directly.
func Generate(categoryCount, categorySize int) RawDataset {
	raw := RawDataset{Categories: make([]RawCategory, 0, categoryCount)}
	for i := 1; i <= categoryCount; i++ {
		rc := RawCategory{
			ID:    fmt.Sprintf("cat-%d", i),
			Name:  fmt.Sprintf("Group %d", i),
			Cards: make([]RawCard, 0, categorySize),
		}
		for j := 1; j <= categorySize; j++ {
			rc.Cards = append(rc.Cards, RawCard{
				ID:    fmt.Sprintf("card-%d-%d", i, j),
				Title: fmt.Sprintf("Item %d.%d", i, j),
			})
		}
		raw.Categories = append(raw.Categories, rc)
	}
	return raw
}
