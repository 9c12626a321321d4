package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"codeberg.org/saruga/sourcemapper/internal/sourcemap"
)

var (
	lookupLine    uint32
	lookupColumn  uint32
	lookupOffset  int
	generatedFile string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <file.map>",
	Short: "Resolve a generated position to its original source",
	Long: `Resolve a position in the generated output back to the original source.

The position is given either directly with --line (1-based) and --column
(0-based), or as a byte --offset into the generated file named by
--generated. The nearest mapping at or after the position is reported when
no mapping sits exactly on it.`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().Uint32VarP(&lookupLine, "line", "l", 0, "Generated line (1-based)")
	lookupCmd.Flags().Uint32VarP(&lookupColumn, "column", "c", 0, "Generated column (0-based)")
	lookupCmd.Flags().IntVar(&lookupOffset, "offset", -1, "Byte offset into the generated file")
	lookupCmd.Flags().StringVar(&generatedFile, "generated", "", "Generated file to resolve --offset against")
}

type lookupResult struct {
	Generated  sourcemap.CodePosition `json:"generated"`
	Original   sourcemap.CodePosition `json:"original"`
	Source     string                 `json:"source,omitempty"`
	Name       string                 `json:"name,omitempty"`
	SourceRoot string                 `json:"sourceRoot,omitempty"`
	Exact      bool                   `json:"exact"`
}

func runLookup(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(filepath.Dir(args[0]))
	if err != nil {
		return err
	}

	query, err := lookupPosition()
	if err != nil {
		return err
	}

	data, err := readMap(args[0])
	if err != nil {
		return err
	}

	cache, err := sourcemap.Consume(data)
	if err != nil {
		return err
	}

	m := cache.MappingForGeneratedPosition(query.Line, query.Column)
	result := lookupResult{
		Generated:  m.Generated,
		Original:   m.Original,
		Source:     m.Source,
		Name:       m.Name,
		SourceRoot: cache.SourceRoot(),
		Exact:      m.Generated == query,
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	position := color.New(color.Bold)
	source := color.New(color.Bold, color.FgHiBlue)
	name := color.New(color.FgYellow)

	if !result.Exact {
		fmt.Fprintf(out, "no mapping at %d:%d, nearest is ", query.Line, query.Column)
		position.Fprintf(out, "%d:%d\n", m.Generated.Line, m.Generated.Column)
	}

	if m.Source == "" {
		position.Fprintf(out, "%d:%d", m.Generated.Line, m.Generated.Column)
		fmt.Fprintln(out, " has no original source")
		return nil
	}

	position.Fprintf(out, "%d:%d", m.Generated.Line, m.Generated.Column)
	fmt.Fprint(out, " -> ")
	source.Fprint(out, m.Source)
	position.Fprintf(out, ":%d:%d", m.Original.Line, m.Original.Column)
	if m.Name != "" {
		fmt.Fprint(out, " (")
		name.Fprint(out, m.Name)
		fmt.Fprint(out, ")")
	}
	fmt.Fprintln(out)
	if root := cache.SourceRoot(); root != "" {
		fmt.Fprintf(out, "source root: %s\n", root)
	}

	return nil
}

// lookupPosition turns the lookup flags into a query position. Either
// --line/--column or --offset/--generated must be used, not both.
func lookupPosition() (sourcemap.CodePosition, error) {
	if lookupOffset >= 0 {
		if lookupLine != 0 {
			return sourcemap.CodePosition{}, fmt.Errorf("--offset and --line are mutually exclusive")
		}
		if generatedFile == "" {
			return sourcemap.CodePosition{}, fmt.Errorf("--offset requires --generated <file>")
		}
		text, err := os.ReadFile(generatedFile)
		if err != nil {
			return sourcemap.CodePosition{}, fmt.Errorf("reading generated file: %w", err)
		}
		return sourcemap.NewLineIndex(string(text)).QueryPosition(lookupOffset), nil
	}

	if lookupLine == 0 {
		return sourcemap.CodePosition{}, fmt.Errorf("either --line (1-based) or --offset is required")
	}
	return sourcemap.CodePosition{Line: lookupLine, Column: lookupColumn}, nil
}
