package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-savedjobs-extractor/internal/config"

	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	replayDir  string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "extractor",
		Short: "Extracts company, title and location from every page of your LinkedIn saved jobs.",
		Long: "extractor opens the saved jobs listing, walks it page by page through the Next button " +
			"and writes the collected jobs to a CSV file named after the number of jobs found.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	cmd.Flags().StringVar(&opts.replayDir, "replay", "", "replay captured pages from this directory instead of a live browser")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
