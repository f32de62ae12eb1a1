package storage

import (
	"context"

	"complaints-dashboard/models"
)

// SourceReader is the interface any complaint source must satisfy. Read
// returns one SourceTable per configured entity, in configuration order.
type SourceReader interface {
	Read(ctx context.Context) ([]models.SourceTable, error)
	Close() error
}

// ComplaintWriter is the interface for exporting a view of the dataset.
type ComplaintWriter interface {
	Write(complaints []models.Complaint) error
	Close() error
}
