package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"complaints-dashboard/config"
	"complaints-dashboard/metrics"
	"complaints-dashboard/models"
	"complaints-dashboard/services"
	"complaints-dashboard/storage"
	"complaints-dashboard/utils"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// newSourceReader builds the reader selected by SOURCE_KIND.
func newSourceReader(ctx context.Context, c *config.Config, log *utils.Logger) (storage.SourceReader, error) {
	switch c.SourceKind {
	case config.SourceCSV:
		var files []storage.CSVSource
		for _, s := range c.Sources() {
			files = append(files, storage.CSVSource{Entity: s.Entity, Path: s.Path})
		}
		return storage.NewCSVReader(files, log), nil

	case config.SourcePostgres, config.SourceSQLite:
		var tables []storage.TableSource
		for _, s := range c.Sources() {
			tables = append(tables, storage.TableSource{Entity: s.Entity, Table: s.Table})
		}
		driver, dsn := storage.DriverPostgres, c.DSN()
		if c.SourceKind == config.SourceSQLite {
			driver, dsn = storage.DriverSQLite, c.SQLitePath
		}
		return storage.OpenSQLReader(ctx, driver, dsn, tables, c.MaxRetries, log)

	default:
		return nil, fmt.Errorf("unknown source kind %q", c.SourceKind)
	}
}

// loadDashboard reads and normalizes every source and prepares the engine.
// m may be nil.
func loadDashboard(ctx context.Context, c *config.Config, log *utils.Logger, m *metrics.Metrics) (*services.Dashboard, error) {
	reader, err := newSourceReader(ctx, c, log)
	if err != nil {
		return nil, fmt.Errorf("opening sources: %w", err)
	}
	defer func() { _ = reader.Close() }()

	tables, err := reader.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading sources: %w", err)
	}

	normalizer := services.NewNormalizer(log, services.NewTimeParser(c.TimeLayout, c.Location()))
	ds, err := normalizer.Normalize(tables)
	if err != nil {
		return nil, err
	}

	return services.NewDashboard(ds, c.HistogramBins, log, m), nil
}

// writeComplaints writes view through w and closes it.
func writeComplaints(w storage.ComplaintWriter, view []models.Complaint) error {
	if err := w.Write(view); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// selectionFlags binds the five filter controls to command-line flags.
type selectionFlags struct {
	in services.SelectionInput
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.in.Entity, "entity", "", "company to keep (default ALL)")
	cmd.Flags().StringVar(&f.in.Region, "region", "", "region code to keep, or \"NOT AVAILABLE\" (default ALL)")
	cmd.Flags().StringVar(&f.in.Status, "status", "", "complaint status to keep (default ALL)")
	cmd.Flags().StringVar(&f.in.MaxLength, "max-length", "", "maximum description length (default: longest)")
	cmd.Flags().StringVar(&f.in.From, "from", "", "first day, YYYY-MM-DD (default: earliest)")
	cmd.Flags().StringVar(&f.in.To, "to", "", "last day, YYYY-MM-DD (default: latest)")
}

func (f *selectionFlags) resolve(d *services.Dashboard, loc *time.Location) (models.Selection, error) {
	return services.ParseSelection(d.Catalog(), f.in, loc)
}

// writeOutput encodes v as JSON or YAML, or calls text for the text format.
func writeOutput(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case outputText, "":
		text(w)
		return nil
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

func outputFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("output")
	return format
}
