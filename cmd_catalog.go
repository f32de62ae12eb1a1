package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"complaints-dashboard/report"
)

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the values every filter control accepts",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDashboard(cmd.Context(), cfg, logger, nil)
			if err != nil {
				return fmt.Errorf("catalog: %w", err)
			}

			c := d.Catalog()
			return writeOutput(cmd.OutOrStdout(), outputFormat(cmd), c, func(w io.Writer) {
				report.PrintCatalog(w, c)
			})
		},
	}
}
