package main

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/praetorian-inc/tsce/pkg/sarif"
	"github.com/praetorian-inc/tsce/pkg/types"
)

// styles holds the color formatters of human output.
type styles struct {
	heading     *color.Color
	name        *color.Color
	path        *color.Color
	declaration *color.Color
}

// newStyles creates color formatters. The choice overrides fatih/color's
// own terminal detection.
func newStyles(enabled bool) *styles {
	s := &styles{
		heading:     color.New(color.Bold),
		name:        color.New(color.Bold, color.FgHiBlue),
		path:        color.New(color.FgHiGreen),
		declaration: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{s.heading, s.name, s.path, s.declaration} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// colorEnabled resolves a --color value against the terminal and NO_COLOR.
func colorEnabled(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == "", nil
	}
	return false, fmt.Errorf("unknown color mode: %s", mode)
}

func sortRecords(records []*types.Record) {
	slices.SortStableFunc(records, func(a, b *types.Record) int {
		return cmp.Or(
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(a.Component.TagOffsets.Start, b.Component.TagOffsets.Start),
		)
	})
}

func writeRecords(cmd *cobra.Command, format string, records []*types.Record, s *styles) error {
	switch format {
	case "json":
		if records == nil {
			records = []*types.Record{}
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	case "sarif":
		report := sarif.NewReport()
		for _, rec := range records {
			report.AddResult(rec)
		}
		data, err := report.ToJSON()
		if err != nil {
			return fmt.Errorf("serializing SARIF: %w", err)
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("writing SARIF output: %w", err)
		}
		return nil
	case "human":
		writeHuman(cmd, records, s)
		return nil
	}
	return fmt.Errorf("unknown output format: %s", format)
}

// writeHuman groups records by path.
func writeHuman(cmd *cobra.Command, records []*types.Record, s *styles) {
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(out, "\nNo unbound components.\n")
		return
	}

	current := ""
	for _, rec := range records {
		if rec.Path != current {
			current = rec.Path
			fmt.Fprintf(out, "\n%s %s\n", s.heading.Sprint("File:"), s.path.Sprint(rec.Path))
		}
		start := rec.Location.Source.Start
		fmt.Fprintf(out, "  %d:%d %s\n", start.Line, start.Column, s.name.Sprintf("<%s>", rec.Component.Name))
		fmt.Fprintf(out, "      %s\n", s.declaration.Sprint(rec.Declaration))
	}
}
