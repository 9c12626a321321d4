// Package config handles loading CLI configuration from files.
//
// Configuration can be specified in a JSON file named sourcemapper.json or
// .sourcemapperrc. The config file is searched for in the current directory
// and parent directories.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the configuration file structure. All fields are
// optional and fall back to defaults when not specified.
type Config struct {
	// Format selects the lookup output format: "text" or "json"
	Format string `json:"format,omitempty"`

	// Color enables colored terminal output
	Color *bool `json:"color,omitempty"`
}

// Options are the resolved settings the CLI runs with.
type Options struct {
	Format string
	Color  bool
}

// DefaultOptions returns the settings used when no config file or flags are
// present.
func DefaultOptions() Options {
	return Options{
		Format: "text",
		Color:  true,
	}
}

// ConfigFileNames are the names searched for config files, in order of
// preference.
var ConfigFileNames = []string{
	"sourcemapper.json",
	".sourcemapperrc",
	".sourcemapperrc.json",
}

// Load searches for a config file starting from the given directory and
// walking up to parent directories. Returns nil if no config file is found.
func Load(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := LoadFile(path)
				return cfg, path, err
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root, no config found
			return nil, "", nil
		}
		dir = parent
	}
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Format != "" && cfg.Format != "text" && cfg.Format != "json" {
		return nil, fmt.Errorf("unknown format %q in %s", cfg.Format, path)
	}

	return &cfg, nil
}

// ToOptions converts a Config to Options, using defaults for unset fields.
func (c *Config) ToOptions() Options {
	opts := DefaultOptions()

	if c.Format != "" {
		opts.Format = c.Format
	}
	if c.Color != nil {
		opts.Color = *c.Color
	}

	return opts
}

// MergeOptions are CLI flags that override the config file.
type MergeOptions struct {
	// Format is the --format flag value; empty means not specified.
	Format string

	// NoColor disables colored output regardless of config.
	NoColor bool
}

// Merge merges CLI options with config file options. CLI options override
// config file options when specified.
func (c *Config) Merge(cli MergeOptions) Options {
	opts := c.ToOptions()

	if cli.Format != "" {
		opts.Format = cli.Format
	}
	if cli.NoColor {
		opts.Color = false
	}

	return opts
}
