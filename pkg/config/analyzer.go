// Analyzer configuration
//
// Copyright (C) 2026  gcode-inspect authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"gcode-inspect/pkg/analysis"
	"gcode-inspect/pkg/gcode"
)

// Config is the top-level configuration for the analyzer and its server.
type Config struct {
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// AnalyzerConfig holds the geometric tuning knobs. The defaults match
// common bed-slinger printers; all values are printer dependent.
type AnalyzerConfig struct {
	// PurgeMarginMM is the bed border strip, in millimeters, inside which a
	// purge line is expected to stay.
	PurgeMarginMM float64 `yaml:"purge_margin_mm"`

	// SlopeTolerance is the epsilon for collinearity slope comparison.
	SlopeTolerance float64 `yaml:"slope_tolerance"`

	// MotionEpsilonMM is the minimum per-axis displacement, in millimeters,
	// that counts as movement. Zero means exact comparison.
	MotionEpsilonMM float64 `yaml:"motion_epsilon_mm"`
}

// ServerConfig holds the analysis API server settings.
type ServerConfig struct {
	// Addr is the HTTP listen address, e.g. ":7126".
	Addr string `yaml:"addr"`

	// HistoryDB is the path of the sqlite analysis history database.
	// Empty disables history.
	HistoryDB string `yaml:"history_db"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the documented defaults.
func Default() *Config {
	return &Config{
		Analyzer: AnalyzerConfig{
			PurgeMarginMM:   2.0,
			SlopeTolerance:  1e-6,
			MotionEpsilonMM: 0,
		},
		Server: ServerConfig{
			Addr:      ":7126",
			HistoryDB: "gcode-inspect.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// configFileNames is the ordered list of config file names to search for.
var configFileNames = []string{
	"gcode-inspect.yml",
	"gcode-inspect.yaml",
	".gcode-inspect.yml",
	".gcode-inspect.yaml",
}

// Discover returns the path of the first config file found in dir, or an
// empty string if none exists.
func Discover(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads a config file. An empty path triggers discovery in the
// working directory; when nothing is found the defaults are returned.
// Partial YAML is supported: unspecified fields keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		path = Discover(wd)
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the heuristics cannot work with.
func (c *Config) Validate() error {
	if c.Analyzer.PurgeMarginMM < 0 {
		return fmt.Errorf("purge_margin_mm must be >= 0, got %v", c.Analyzer.PurgeMarginMM)
	}
	if c.Analyzer.SlopeTolerance < 0 {
		return fmt.Errorf("slope_tolerance must be >= 0, got %v", c.Analyzer.SlopeTolerance)
	}
	if c.Analyzer.MotionEpsilonMM < 0 {
		return fmt.Errorf("motion_epsilon_mm must be >= 0, got %v", c.Analyzer.MotionEpsilonMM)
	}
	return nil
}

// Tolerances converts the analyzer section to the fixed-point form the
// cursor consumes.
func (c *Config) Tolerances() analysis.Tolerances {
	tol := analysis.DefaultTolerances()
	if m, err := gcode.MicronsFromFloat(c.Analyzer.PurgeMarginMM); err == nil {
		tol.PurgeMargin = m
	}
	if m, err := gcode.MicronsFromFloat(c.Analyzer.MotionEpsilonMM); err == nil {
		tol.MotionEpsilon = m
	}
	tol.SlopeEpsilon = c.Analyzer.SlopeTolerance
	return tol
}
