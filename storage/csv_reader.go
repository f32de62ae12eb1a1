package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"complaints-dashboard/models"
	"complaints-dashboard/utils"
)

// Source column names every table must carry.
const (
	ColumnID          = "ID"
	ColumnTime        = "TEMPO"
	ColumnLocation    = "LOCAL"
	ColumnStatus      = "STATUS"
	ColumnDescription = "DESCRICAO"
)

// RequiredColumns lists the source schema in canonical order.
var RequiredColumns = []string{ColumnID, ColumnTime, ColumnLocation, ColumnStatus, ColumnDescription}

// ErrMissingColumn is returned when a source lacks one of RequiredColumns.
var ErrMissingColumn = errors.New("missing required column")

// CSVSource is one entity and the CSV file holding its complaints.
type CSVSource struct {
	Entity string
	Path   string
}

var _ SourceReader = (*CSVReader)(nil)

// CSVReader loads complaint tables from CSV files with a header row.
type CSVReader struct {
	sources []CSVSource
	logger  *utils.Logger
}

// NewCSVReader creates a reader over the given files.
func NewCSVReader(sources []CSVSource, logger *utils.Logger) *CSVReader {
	return &CSVReader{sources: sources, logger: logger}
}

// Read loads every file in order. Any missing file or malformed table aborts
// the whole read.
func (r *CSVReader) Read(ctx context.Context) ([]models.SourceTable, error) {
	tables := make([]models.SourceTable, 0, len(r.sources))
	for _, src := range r.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		table, err := r.readFile(src)
		if err != nil {
			return nil, err
		}
		r.logger.Info("[csv] Loaded %d rows for %s from %s", len(table.Rows), src.Entity, src.Path)
		tables = append(tables, table)
	}
	return tables, nil
}

func (r *CSVReader) readFile(src CSVSource) (models.SourceTable, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return models.SourceTable{}, fmt.Errorf("csv: open %q: %w", src.Path, err)
	}
	defer f.Close()

	table, err := ReadCSVTable(f, src.Entity)
	if err != nil {
		return models.SourceTable{}, fmt.Errorf("csv: %s: %w", src.Path, err)
	}
	return table, nil
}

// Close is a no-op; files are closed as soon as they are read.
func (r *CSVReader) Close() error { return nil }

// ReadCSVTable parses one CSV document into a SourceTable labelled entity.
// Columns are matched by header name; extra columns are ignored.
func ReadCSVTable(in io.Reader, entity string) (models.SourceTable, error) {
	cr := csv.NewReader(in)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return models.SourceTable{}, fmt.Errorf("read header: empty file")
		}
		return models.SourceTable{}, fmt.Errorf("read header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return models.SourceTable{}, err
	}

	table := models.SourceTable{Entity: entity}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.SourceTable{}, fmt.Errorf("read row %d: %w", line, err)
		}
		table.Rows = append(table.Rows, models.RawComplaint{
			ID:          rec[idx[ColumnID]],
			Time:        rec[idx[ColumnTime]],
			Location:    rec[idx[ColumnLocation]],
			Status:      rec[idx[ColumnStatus]],
			Description: rec[idx[ColumnDescription]],
		})
	}
	return table, nil
}

// columnIndex maps each required column to its position in header.
func columnIndex(header []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		pos[strings.TrimSpace(h)] = i
	}

	idx := make(map[string]int, len(RequiredColumns))
	for _, col := range RequiredColumns {
		i, ok := pos[col]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, col)
		}
		idx[col] = i
	}
	return idx, nil
}
