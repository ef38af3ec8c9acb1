package main

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/lox/groupsort/cmd/groupsort/shared"
	"github.com/lox/groupsort/internal/dataset"
	"github.com/lox/groupsort/internal/randutil"
)

// CheckCmd validates one or more dataset files.
type CheckCmd struct {
	Files         []string `kong:"arg,help='Dataset JSON files to validate'"`
	Relaxed       bool     `kong:"help='Skip cardinality checks'"`
	CategoryCount int      `kong:"default='45',help='Expected category count (strict mode)'"`
	CategorySize  int      `kong:"default='45',help='Expected cards per category (strict mode)'"`
	Debug         bool     `kong:"help='Enable debug logging'"`
}

func (c *CheckCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg := dataset.Config{
		Strict:        !c.Relaxed,
		CategoryCount: c.CategoryCount,
		CategorySize:  c.CategorySize,
	}

	var g errgroup.Group
	for _, file := range c.Files {
		g.Go(func() error {
			// Each worker seeds its own rng; check only cares about validity,
			// not the resulting permutation.
			categories, cards, err := dataset.LoadFile(file, cfg, randutil.NewFromEntropy())
			if err != nil {
				logger.Error("dataset invalid", "file", file, "error", err)
				return fmt.Errorf("%s: invalid", file)
			}
			logger.Info("dataset ok", "file", file, "categories", len(categories), "cards", len(cards))
			return nil
		})
	}
	return g.Wait()
}
