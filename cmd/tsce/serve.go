package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/tsce/pkg/config"
	"github.com/praetorian-inc/tsce/pkg/scanner"
	"github.com/praetorian-inc/tsce/pkg/serve"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as streaming server for editor integration",
	Long: `Run tsce as a long-lived streaming server that accepts requests via stdin
and writes responses to stdout using NDJSON format.

This mode is designed for editor extensions. The process loads the
configuration once at startup and processes requests until stdin closes,
a close request arrives, or SIGTERM is received.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(wd, configPath)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr())
	core, err := scanner.NewCore(scanner.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer core.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	srv := serve.NewServer(core, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	return srv.Run(ctx)
}
