package main

import (
	"time"

	"github.com/coder/quartz"

	"github.com/lox/groupsort/cmd/groupsort/shared"
	"github.com/lox/groupsort/internal/dataset"
	"github.com/lox/groupsort/internal/game"
	"github.com/lox/groupsort/internal/randutil"
	"github.com/lox/groupsort/internal/server"
)

// ServeCmd runs the websocket play server.
type ServeCmd struct {
	Config string `kong:"default='groupsort.hcl',help='HCL config file'"`
	Addr   string `kong:"help='Override the configured listen address (host:port)'"`
	Seed   *int64 `kong:"help='Deterministic shuffle seed (optional)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !c.Debug {
		shared.LevelFromString(logger, cfg.Server.LogLevel)
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("using deterministic shuffle seed", "seed", seed)
	}

	categories, cards, err := dataset.LoadFile(cfg.Dataset.Path, cfg.DatasetConfig(), randutil.New(seed))
	if err != nil {
		return err
	}
	logger.Info("dataset loaded",
		"path", cfg.Dataset.Path,
		"categories", len(categories),
		"cards", len(cards),
		"strict", cfg.Dataset.Strict)

	rules := game.Rules{CategorySize: cfg.Dataset.CategorySize}
	service := server.NewGameService(categories, cards, rules, logger, quartz.NewReal())

	addr := cfg.ListenAddress()
	if c.Addr != "" {
		addr = c.Addr
	}
	return server.NewServer(addr, service, logger).Start()
}
