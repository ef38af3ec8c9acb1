package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/groupsort/internal/dataset"
)

// Config is the complete server configuration.
type Config struct {
	Server  Settings        `hcl:"server,block"`
	Dataset DatasetSettings `hcl:"dataset,block"`
}

// Settings contains server-level configuration.
type Settings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// DatasetSettings points at the dataset resource and its expected shape.
type DatasetSettings struct {
	Path          string `hcl:"path"`
	Strict        bool   `hcl:"strict,optional"`
	CategoryCount int    `hcl:"category_count,optional"`
	CategorySize  int    `hcl:"category_size,optional"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: Settings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Dataset: DatasetSettings{
			Path:          "dataset.json",
			Strict:        true,
			CategoryCount: dataset.DefaultCategoryCount,
			CategorySize:  dataset.DefaultCategorySize,
		},
	}
}

// LoadConfig loads configuration from an HCL file, returning defaults when
// the file doesn't exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Dataset.CategoryCount == 0 {
		config.Dataset.CategoryCount = dataset.DefaultCategoryCount
	}
	if config.Dataset.CategorySize == 0 {
		config.Dataset.CategorySize = dataset.DefaultCategorySize
	}

	return &config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset path is required")
	}
	if c.Dataset.CategoryCount < 1 {
		return fmt.Errorf("category count must be positive, got %d", c.Dataset.CategoryCount)
	}
	if c.Dataset.CategorySize < 2 {
		return fmt.Errorf("category size must be at least 2, got %d", c.Dataset.CategorySize)
	}
	return nil
}

// ListenAddress returns the host:port the server binds to.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// DatasetConfig translates the dataset block into a loader configuration.
func (c *Config) DatasetConfig() dataset.Config {
	return dataset.Config{
		Strict:        c.Dataset.Strict,
		CategoryCount: c.Dataset.CategoryCount,
		CategorySize:  c.Dataset.CategorySize,
	}
}
