package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/tsce/pkg/enum"
	"github.com/praetorian-inc/tsce/pkg/scanner"
	"github.com/praetorian-inc/tsce/pkg/store"
	"github.com/praetorian-inc/tsce/pkg/syntax"
	"github.com/praetorian-inc/tsce/pkg/types"
)

var (
	scanOutputPath    string
	scanOutputFormat  string
	scanIncremental   bool
	scanIncludeHidden bool
	scanMaxFileSize   int64
	scanExclude       []string
	scanWorkers       int
)

var scanCmd = &cobra.Command{
	Use:   "scan <target>",
	Short: "Find unbound components in a file or directory",
	Long: `Scan a JSX/TSX file or a directory tree for elements whose tag names are
not defined in scope, and store the proposed declarations in a datastore.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanOutputPath, "output", "tsce.db", "Output database path (:memory: for none)")
	scanCmd.Flags().StringVar(&scanOutputFormat, "format", "human", "Output format: json, sarif, human")
	scanCmd.Flags().BoolVar(&scanIncremental, "incremental", false, "Skip files already stored with the same content")
	scanCmd.Flags().BoolVar(&scanIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	scanCmd.Flags().Int64Var(&scanMaxFileSize, "max-file-size", 0, "Maximum file size to scan in bytes (default from config)")
	scanCmd.Flags().StringSliceVar(&scanExclude, "exclude", nil, "Glob patterns to exclude, in addition to the config")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Parallel file readers (0 = one per CPU)")
}

// scanStats counts what a scan visited.
type scanStats struct {
	files      int
	skipped    int
	failed     int
	components int
}

func runScan(cmd *cobra.Command, args []string) error {
	target := args[0]

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("target does not exist: %s", target)
	}
	switch scanOutputFormat {
	case "human", "json", "sarif":
	default:
		return fmt.Errorf("unknown output format: %s", scanOutputFormat)
	}

	cfg, err := loadConfig(target, info.IsDir())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if scanIncludeHidden {
		cfg.IncludeHidden = true
	}
	if scanMaxFileSize > 0 {
		cfg.MaxFileSize = scanMaxFileSize
	}
	cfg.Exclude = append(cfg.Exclude, scanExclude...)

	logger := newLogger(cmd.ErrOrStderr())

	s, err := store.New(store.Config{Path: scanOutputPath})
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer s.Close()

	core, err := scanner.NewCore(scanner.Options{
		Config:      cfg,
		Store:       s,
		Incremental: scanIncremental,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer core.Close()

	enumerator, err := enum.NewFilesystemEnumerator(enum.Config{
		Root:          target,
		IncludeHidden: cfg.IncludeHidden,
		MaxFileSize:   cfg.MaxFileSize,
		Exclude:       cfg.Exclude,
		Workers:       scanWorkers,
	})
	if err != nil {
		return fmt.Errorf("creating enumerator: %w", err)
	}

	// The store and the counters are shared by the reader goroutines.
	var (
		mu      sync.Mutex
		stats   scanStats
		records []*types.Record
	)
	err = enumerator.Enumerate(context.Background(), func(content []byte, _ types.ContentID, prov types.Provenance) error {
		mu.Lock()
		defer mu.Unlock()

		stats.files++
		result, err := core.Scan(content, prov)
		if errors.Is(err, syntax.ErrSyntax) {
			stats.failed++
			logger.Warn("skipping file with syntax error", "path", prov.Path(), "error", err)
			return nil
		}
		if err != nil {
			return err
		}
		if result.Skipped {
			stats.skipped++
		}
		stats.components += len(result.Components)
		records = append(records, result.Components...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	// Keep stdout pure JSON for machine formats.
	summary := cmd.OutOrStdout()
	if scanOutputFormat != "human" {
		summary = cmd.ErrOrStderr()
	}
	fmt.Fprintf(summary, "Scan complete: %d files, %d unbound components", stats.files, stats.components)
	if stats.skipped > 0 || stats.failed > 0 {
		fmt.Fprintf(summary, " (%d skipped, %d with syntax errors)", stats.skipped, stats.failed)
	}
	fmt.Fprintln(summary)
	if scanOutputPath != store.MemoryPath {
		fmt.Fprintf(summary, "Results stored in: %s\n", scanOutputPath)
	}

	sortRecords(records)
	return writeRecords(cmd, scanOutputFormat, records, newStyles(false))
}
