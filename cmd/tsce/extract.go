package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/tsce/pkg/refactor"
	"github.com/praetorian-inc/tsce/pkg/scanner"
	"github.com/praetorian-inc/tsce/pkg/syntax"
	"github.com/praetorian-inc/tsce/pkg/types"
)

var (
	extractMode     string
	extractOffset   int
	extractPosition string
	extractName     string
	extractDryRun   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract styled components from a file",
	Long: `Run one extraction workflow on a source file.

Modes:
  current-same        extract the element at --offset into this file
  current-separate    extract the element at --offset into the styles file
  unbound-clipboard   print declarations for every unbound component
  exported-clipboard  same, with export
  unbound-same        extract every unbound component into this file
  unbound-separate    extract every unbound component into the styles file`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractMode, "mode", "unbound-clipboard", "Extraction workflow")
	extractCmd.Flags().IntVar(&extractOffset, "offset", -1, "Cursor byte offset for current-* modes")
	extractCmd.Flags().StringVar(&extractPosition, "position", "", "Cursor as line:column (1-based) for current-* modes")
	extractCmd.Flags().StringVar(&extractName, "name", "", "Component name for current-* modes")
	extractCmd.Flags().BoolVar(&extractDryRun, "dry-run", false, "Print the planned file contents as JSON instead of writing")
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]

	mode, err := refactor.ParseMode(extractMode)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	offset := extractOffset
	if extractPosition != "" {
		if offset, err = parsePosition(content, extractPosition); err != nil {
			return err
		}
	}
	if mode.Current() && offset < 0 {
		return fmt.Errorf("%s needs --offset or --position", mode.ShortName())
	}

	cfg, err := loadConfig(path, false)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr())
	core, err := scanner.NewCore(scanner.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer core.Close()

	plan, err := core.Extract(refactor.Request{
		Mode:   mode,
		Path:   path,
		Text:   string(content),
		Offset: offset,
		Name:   extractName,
	})
	if err != nil {
		return reportExtractError(cmd, err)
	}

	if extractDryRun {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(plan)
	}

	if mode.Clipboard() {
		fmt.Fprint(cmd.OutOrStdout(), plan.Output)
		if !strings.HasSuffix(plan.Output, "\n") {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "[TSCE] Extracted declarations (Found: %d)\n", plan.Count)
		}
		return nil
	}

	for _, change := range plan.Files {
		if err := writeChange(change); err != nil {
			return err
		}
		logger.Info("wrote file", "path", change.Path, "created", change.Created)
	}
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "[TSCE] Extracted %d component(s) into %d file(s)\n", plan.Count, len(plan.Files))
	}
	return nil
}

// reportExtractError turns workflow outcomes that are not failures into
// warnings.
func reportExtractError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, refactor.ErrNoComponent),
		errors.Is(err, refactor.ErrNoUnbound),
		errors.Is(err, refactor.ErrNameRequired):
		fmt.Fprintf(cmd.ErrOrStderr(), "[TSCE] %s\n", capitalize(err.Error()))
		return nil
	case errors.Is(err, refactor.ErrFileNotMatched):
		fmt.Fprintln(cmd.ErrOrStderr(), "[TSCE] This file does not match the pattern in your configuration.")
		return nil
	case errors.Is(err, refactor.ErrUnsupportedFile):
		fmt.Fprintln(cmd.ErrOrStderr(), "[TSCE] Only `.js`, `.ts`, `.jsx` and `.tsx` are supported")
		return nil
	case errors.Is(err, syntax.ErrSyntax):
		return fmt.Errorf("failed to extract due to syntax error: %w", err)
	}
	return fmt.Errorf("unexpected error while extracting: %w", err)
}

func writeChange(change refactor.FileChange) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(change.Path); err == nil {
		perm = info.Mode().Perm()
	} else if change.Created {
		if err := os.MkdirAll(filepath.Dir(change.Path), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", change.Path, err)
		}
	}
	if err := os.WriteFile(change.Path, []byte(change.Content), perm); err != nil {
		return fmt.Errorf("writing %s: %w", change.Path, err)
	}
	return nil
}

// parsePosition converts "line:column" into a byte offset within content.
func parsePosition(content []byte, s string) (int, error) {
	lineStr, colStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid position %q: want line:column", s)
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return 0, fmt.Errorf("invalid line in position %q", s)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil || col < 1 {
		return 0, fmt.Errorf("invalid column in position %q", s)
	}
	return types.ComputeOffset(content, line, col), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
