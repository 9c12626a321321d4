package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"codeberg.org/saruga/sourcemapper/internal/config"
)

var (
	configFile string
	noConfig   bool
	noColor    bool
	format     string
)

var rootCmd = &cobra.Command{
	Use:   "sourcemapper",
	Short: "Inspect and query Source Map v3 files",
	Long: `sourcemapper decodes Source Map v3 files and resolves positions in generated
(compiled or minified) output back to the original sources.

Lookups are nearest-match: when no mapping sits exactly at the queried
position, the first mapping at or after it is returned.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Use specific config file")
	rootCmd.PersistentFlags().BoolVar(&noConfig, "no-config", false, "Ignore config files")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&format, "format", "", "Output format: text or json")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// resolveOptions combines the config file (unless disabled) with CLI flags.
// CLI flags win.
func resolveOptions(startDir string) (config.Options, error) {
	if format != "" && format != "text" && format != "json" {
		return config.Options{}, fmt.Errorf("unknown format %q (want text or json)", format)
	}

	cli := config.MergeOptions{Format: format, NoColor: noColor}

	var cfg *config.Config
	if !noConfig {
		var err error
		if configFile != "" {
			cfg, err = config.LoadFile(configFile)
			if err != nil {
				return config.Options{}, fmt.Errorf("loading config file %s: %w", configFile, err)
			}
		} else {
			cfg, _, err = config.Load(startDir)
			if err != nil {
				return config.Options{}, fmt.Errorf("loading config: %w", err)
			}
		}
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	opts := cfg.Merge(cli)
	color.NoColor = !opts.Color
	return opts, nil
}

// readMap reads a source map from the given path, or from stdin when the
// path is "-".
func readMap(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}
