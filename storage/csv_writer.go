package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"complaints-dashboard/models"
)

var _ ComplaintWriter = (*CSVWriter)(nil)

// CSVWriter exports complaints, including the derived region column, to a
// CSV file. It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"id", "timestamp", "location", "region", "status", "description", "description_length", "entity",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends the complaints in order.
func (c *CSVWriter) Write(complaints []models.Complaint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range complaints {
		cp := &complaints[i]
		row := []string{
			cp.ID,
			cp.Timestamp.Format(time.RFC3339),
			cp.Location,
			cp.Region,
			cp.Status,
			cp.Description,
			strconv.Itoa(cp.DescriptionLength()),
			cp.Entity,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
