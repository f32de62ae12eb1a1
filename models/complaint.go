package models

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// AllOption is the selection value that disables filtering on a dimension.
	AllOption = "ALL"
	// NotAvailable marks complaints whose location carries no usable region code.
	NotAvailable = "NOT AVAILABLE"
)

// RawComplaint holds one untyped row exactly as read from a source table
// (columns ID, TEMPO, LOCAL, STATUS, DESCRICAO).
type RawComplaint struct {
	ID          string
	Time        string
	Location    string
	Status      string
	Description string
}

// SourceTable is one source of complaints together with the entity label
// every row of it is attributed to.
type SourceTable struct {
	Entity string
	Rows   []RawComplaint
}

// Complaint is the normalized record every filter and aggregate works on.
type Complaint struct {
	ID          string    `json:"id" yaml:"id"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	Location    string    `json:"location" yaml:"location"`
	Region      string    `json:"region" yaml:"region"`
	Status      string    `json:"status" yaml:"status"`
	Description string    `json:"description" yaml:"description"`
	Entity      string    `json:"entity" yaml:"entity"`
}

// DescriptionLength is the number of characters of the trimmed description.
func (c *Complaint) DescriptionLength() int {
	return utf8.RuneCountInString(strings.TrimSpace(c.Description))
}

// Dataset is the canonical, read-only complaint table. It is built once by
// the normalizer and never mutated; filters produce copies.
type Dataset struct {
	entities []string
	records  []Complaint
}

// NewDataset copies records into a new Dataset. entities is the fixed list
// of source labels in source order, including labels with no rows.
func NewDataset(entities []string, records []Complaint) *Dataset {
	return &Dataset{
		entities: slices.Clone(entities),
		records:  slices.Clone(records),
	}
}

// Len returns the number of complaints.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns a copy of all complaints in load order.
func (d *Dataset) Records() []Complaint {
	if d == nil {
		return nil
	}
	return slices.Clone(d.records)
}

// Each calls fn for every complaint in load order without copying the table.
// fn must not retain the pointer.
func (d *Dataset) Each(fn func(c *Complaint)) {
	if d == nil {
		return
	}
	for i := range d.records {
		fn(&d.records[i])
	}
}

// Entities returns the fixed entity labels in source order.
func (d *Dataset) Entities() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.entities)
}
