package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"complaints-dashboard/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Explore the dashboard interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDashboard(cmd.Context(), cfg, logger, nil)
			if err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return tui.Run(cmd.Context(), d)
		},
	}
}
