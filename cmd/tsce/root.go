package main

import (
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/tsce/pkg/config"
	"github.com/praetorian-inc/tsce/pkg/sarif"
)

var (
	verbose    bool
	quiet      bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "tsce",
	Short: "tsce - tailwind-styled-components extractor",
	Long: `tsce finds JSX/TSX elements whose tag names are not defined in scope and
extracts their className attributes into tailwind-styled-components
declarations, in the same file, a separate styles file, or on stdout.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to "+config.FileName+" (default: searched upward from the target)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	sarif.ToolVersion = version
	return rootCmd.Execute()
}

// newLogger writes text records to w at the level chosen by -v/-q.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves the configuration governing target, a file or a
// directory.
func loadConfig(target string, isDir bool) (*config.Config, error) {
	dir := target
	if !isDir {
		dir = filepath.Dir(target)
	}
	return config.Load(dir, configPath)
}
