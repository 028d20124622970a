package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/tsce/pkg/scanner"
	"github.com/praetorian-inc/tsce/pkg/syntax"
	"github.com/praetorian-inc/tsce/pkg/watch"
)

var (
	watchDebounce      time.Duration
	watchIncludeHidden bool
	watchExclude       []string
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Report unbound components as files change",
	Long: `Watch a directory tree and print, for every saved JSX/TSX file, whether it
has unbound components left to extract.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before a change is reported")
	watchCmd.Flags().BoolVar(&watchIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	watchCmd.Flags().StringSliceVar(&watchExclude, "exclude", nil, "Glob patterns to exclude, in addition to the config")
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := args[0]

	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", root, watch.ErrNotDirectory)
	}

	cfg, err := loadConfig(root, true)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr())
	core, err := scanner.NewCore(scanner.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer core.Close()

	w, err := watch.New(watch.Config{
		Root:          root,
		Exclude:       append(cfg.Exclude, watchExclude...),
		IncludeHidden: watchIncludeHidden || cfg.IncludeHidden,
		Debounce:      watchDebounce,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s\n", root)
	}
	err = w.Run(ctx, func(event watch.Event) error {
		return reportChange(cmd, core, event)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// reportChange prints one line per settled change.
func reportChange(cmd *cobra.Command, core *scanner.Core, event watch.Event) error {
	out := cmd.OutOrStdout()
	if event.Removed {
		fmt.Fprintf(out, "%s: removed\n", event.Path)
		return nil
	}

	content, err := os.ReadFile(event.Path)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(out, "%s: removed\n", event.Path)
		return nil
	}
	if err != nil {
		return err
	}

	components, err := core.Collect(string(content))
	if errors.Is(err, syntax.ErrSyntax) {
		fmt.Fprintf(out, "%s: syntax error: %v\n", event.Path, err)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: hasUnboundComponents=%t (%d)\n", event.Path, len(components) > 0, len(components))
	return nil
}
