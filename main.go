package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"complaints-dashboard/config"
	"complaints-dashboard/utils"
)

var (
	cfg    *config.Config
	logger *utils.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if logger != nil {
		logger.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "complaints-dashboard",
		Short:        "Read-only analytics over consumer complaints",
		Long:         "Loads the Ibyte, Hapvida and Nagem complaint tables, filters them by company, region, status, description length and period, and reports counts, frequency tables and a length histogram.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			logger = utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringP("output", "o", outputText, "output format: text, json or yaml")

	rootCmd.AddCommand(
		summaryCmd(),
		catalogCmd(),
		exportCmd(),
		serveCmd(),
		tuiCmd(),
	)
	return rootCmd
}
