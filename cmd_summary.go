package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"complaints-dashboard/report"
)

func summaryCmd() *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print headline counts, frequency tables and the length histogram for a selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDashboard(cmd.Context(), cfg, logger, nil)
			if err != nil {
				return fmt.Errorf("summary: %w", err)
			}

			s, err := sel.resolve(d, cfg.Location())
			if err != nil {
				return fmt.Errorf("summary: %w", err)
			}

			view := d.Evaluate(s)
			return writeOutput(cmd.OutOrStdout(), outputFormat(cmd), view, func(w io.Writer) {
				report.PrintTerminal(w, view)
			})
		},
	}
	sel.register(cmd)
	return cmd
}
