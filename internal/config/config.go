// Package config holds the executor's ambient, non-semantic knobs:
// path budget and output mode. Everything spec.md's CLI contract pins
// down (the positional file argument, stdout's two summary lines)
// lives in cmd/symexec instead — this package only covers what that
// contract leaves open.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the executor's full set of runtime knobs.
type Config struct {
	// MaxPaths caps the number of paths the driver will execute before
	// aborting with a fatal "path budget exhausted" error. Zero means
	// unbounded.
	MaxPaths int `yaml:"max_paths"`
	Verbose  bool `yaml:"verbose"`
	JSON     bool `yaml:"json"`
}

// Default returns the zero-knob configuration: unbounded paths, quiet
// logging, plain-text summary.
func Default() Config {
	return Config{}
}

// LoadFile reads a YAML document at path and overlays any fields it
// sets onto cfg, leaving fields the file omits untouched. No file is
// read unless a caller explicitly names one.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}

	var overlay struct {
		MaxPaths *int  `yaml:"max_paths"`
		Verbose  *bool `yaml:"verbose"`
		JSON     *bool `yaml:"json"`
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if overlay.MaxPaths != nil {
		cfg.MaxPaths = *overlay.MaxPaths
	}
	if overlay.Verbose != nil {
		cfg.Verbose = *overlay.Verbose
	}
	if overlay.JSON != nil {
		cfg.JSON = *overlay.JSON
	}
	return nil
}
