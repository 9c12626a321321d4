package main

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"codeberg.org/saruga/sourcemapper/internal/sourcemap"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.map>",
	Short: "Summarize a source map",
	Long:  "Decode a source map and print what it contains: tables, mapping count, and the generated span it covers.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

type inspectSummary struct {
	File        string `json:"file,omitempty"`
	SourceRoot  string `json:"sourceRoot,omitempty"`
	Sources     int    `json:"sources"`
	Names       int    `json:"names"`
	Mappings    int    `json:"mappings"`
	FirstLine   uint32 `json:"firstLine"`
	FirstColumn uint32 `json:"firstColumn"`
	LastLine    uint32 `json:"lastLine"`
	LastColumn  uint32 `json:"lastColumn"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(filepath.Dir(args[0]))
	if err != nil {
		return err
	}

	data, err := readMap(args[0])
	if err != nil {
		return err
	}

	var doc sourcemap.SourceMap
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing source map: %w", err)
	}

	cache, err := sourcemap.ConsumeMap(&doc)
	if err != nil {
		return err
	}

	// The cache is sorted, so querying its extremes yields the span.
	first := cache.MappingForGeneratedPosition(0, 0)
	last := cache.MappingForGeneratedPosition(math.MaxUint32, math.MaxUint32)

	summary := inspectSummary{
		File:        doc.File,
		SourceRoot:  cache.SourceRoot(),
		Sources:     len(doc.Sources),
		Names:       len(doc.Names),
		Mappings:    cache.Len(),
		FirstLine:   first.Generated.Line,
		FirstColumn: first.Generated.Column,
		LastLine:    last.Generated.Line,
		LastColumn:  last.Generated.Column,
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	heading := color.New(color.Bold)
	value := color.New(color.FgHiBlue)

	if summary.File != "" {
		heading.Fprint(out, "file:        ")
		value.Fprintln(out, summary.File)
	}
	if summary.SourceRoot != "" {
		heading.Fprint(out, "source root: ")
		value.Fprintln(out, summary.SourceRoot)
	}
	heading.Fprint(out, "sources:     ")
	fmt.Fprintln(out, summary.Sources)
	heading.Fprint(out, "names:       ")
	fmt.Fprintln(out, summary.Names)
	heading.Fprint(out, "mappings:    ")
	fmt.Fprintln(out, summary.Mappings)
	heading.Fprint(out, "span:        ")
	fmt.Fprintf(out, "%d:%d through %d:%d\n",
		summary.FirstLine, summary.FirstColumn, summary.LastLine, summary.LastColumn)

	return nil
}
