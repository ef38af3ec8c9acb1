package main

import (
	"encoding/json"

	"github.com/lox/groupsort/cmd/groupsort/shared"
	"github.com/lox/groupsort/internal/dataset"
	"github.com/lox/groupsort/internal/fileutil"
)

// GenerateCmd writes a synthetic dataset, mostly for development fixtures.
type GenerateCmd struct {
	Out        string `kong:"default='dataset.json',help='Output file'"`
	Categories int    `kong:"default='45',help='Number of categories'"`
	Size       int    `kong:"default='45',help='Cards per category'"`
	Debug      bool   `kong:"help='Enable debug logging'"`
}

func (c *GenerateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	raw := dataset.Generate(c.Categories, c.Size)
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}

	if err := fileutil.WriteFileAtomic(c.Out, data, 0644); err != nil {
		return err
	}
	logger.Info("dataset written",
		"file", c.Out,
		"categories", c.Categories,
		"cards", c.Categories*c.Size)
	return nil
}
