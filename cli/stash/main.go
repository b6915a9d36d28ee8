package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/marmotbyte/stash/internal/cli"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	verbose      bool
	outputFormat string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stash",
		Short: "A two-tier cache for package-manager frontends",
		Long: `stash keeps the results of expensive lookups (package searches,
index fetches, dependency graphs) in a fast in-memory layer backed by a
durable on-disk store with per-entry TTLs:
- CLI: inspect, clear, prune, and invalidate the cache
- Library: read-through/write-through caching with typed accessors`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (json, table)")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.OutputFormat = &outputFormat

	// Add subcommands
	cmd.AddCommand(
		cli.NewStatsCmd(),
		cli.NewGetCmd(),
		cli.NewSetCmd(),
		cli.NewDeleteCmd(),
		cli.NewClearCmd(),
		cli.NewPruneCmd(),
		cli.NewVacuumCmd(),
		cli.NewInvalidateCmd(),
		cli.NewDirCmd(),
		cli.NewConfigCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
