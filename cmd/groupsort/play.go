package main

import (
	"time"

	"github.com/lox/groupsort/cmd/groupsort/shared"
	"github.com/lox/groupsort/internal/dataset"
	"github.com/lox/groupsort/internal/game"
	"github.com/lox/groupsort/internal/randutil"
	"github.com/lox/groupsort/internal/tui"
)

// PlayCmd plays a game interactively in the terminal.
type PlayCmd struct {
	Dataset       string `kong:"arg,help='Dataset JSON file'"`
	Relaxed       bool   `kong:"help='Skip cardinality checks (for fixture datasets)'"`
	CategoryCount int    `kong:"default='45',help='Expected category count (strict mode)'"`
	CategorySize  int    `kong:"default='45',help='Cards per category'"`
	Seed          *int64 `kong:"help='Deterministic shuffle seed (optional)'"`
	Debug         bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	cfg := dataset.Config{
		Strict:        !c.Relaxed,
		CategoryCount: c.CategoryCount,
		CategorySize:  c.CategorySize,
	}
	categories, cards, err := dataset.LoadFile(c.Dataset, cfg, randutil.New(seed))
	if err != nil {
		return err
	}

	session := game.NewSession(categories, cards, game.SessionConfig{
		Rules:  game.Rules{CategorySize: c.CategorySize},
		Logger: logger,
	})
	return tui.Run(session, logger)
}
