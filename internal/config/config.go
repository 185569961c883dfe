// Package config provides configuration management for the probelens
// CLI. Settings layer in increasing precedence: built-in defaults, a
// probelens.yaml file, PROBELENS_ environment variables, and flags.
package config

import (
	"fmt"

	"github.com/probelens-labs/probelens/pkg/score"
)

// Default configuration values.
const (
	DefaultOutputDir = "probelens_output"
	DefaultDelimiter = ","
	DefaultFormat    = "table"
)

// DefaultNullMarkers are the cell spellings read as null.
var DefaultNullMarkers = []string{"", "NA", "NaN", "null", "N/A"}

// Config holds the resolved configuration for a profiling run.
type Config struct {
	RulesPath   string   `koanf:"rules"`
	OutputDir   string   `koanf:"output_dir"`
	Format      string   `koanf:"format"`
	Delimiter   string   `koanf:"delimiter"`
	NullMarkers []string `koanf:"null_markers"`
	IDColumns   []string `koanf:"id_cols"`
	HTMLReport  bool     `koanf:"html_report"`
	Verbose     bool     `koanf:"verbose"`

	Weights score.Weights `koanf:"weights"`
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c == nil {
		return
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Delimiter == "" {
		c.Delimiter = DefaultDelimiter
	}
	if c.NullMarkers == nil {
		c.NullMarkers = DefaultNullMarkers
	}
	if c.Weights == (score.Weights{}) {
		c.Weights = score.DefaultWeights()
	}
}

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	switch c.Format {
	case "table", "json", "csv", "markdown":
	default:
		return fmt.Errorf("unknown output format %q (want table, json, csv, or markdown)", c.Format)
	}
	if len(c.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	return c.Weights.Validate()
}
