package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"complaints-dashboard/report"
	"complaints-dashboard/storage"
)

func exportCmd() *cobra.Command {
	var (
		sel      selectionFlags
		output   string
		snapshot string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the complaints of a selection to CSV, optionally with a PNG of the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			d, err := loadDashboard(ctx, cfg, logger, nil)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			s, err := sel.resolve(d, cfg.Location())
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			view := d.View(s)

			w, err := storage.NewCSVWriter(output)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if err := writeComplaints(w, view); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			logger.Info("[export] %d complaints written to %s", len(view), output)

			if snapshot == "" {
				return nil
			}

			snap, err := report.NewSnapshotter(cfg.ChromeBin, 60*time.Second, logger)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if err := snap.WriteSnapshot(ctx, snapshot, d.Catalog(), d.Evaluate(s)); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			return nil
		},
	}

	sel.register(cmd)
	cmd.Flags().StringVar(&output, "out", "output/complaints.csv", "CSV file to write")
	cmd.Flags().StringVar(&snapshot, "snapshot", "", "also render the dashboard to this PNG file (needs Chrome)")
	return cmd
}
