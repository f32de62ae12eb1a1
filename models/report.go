package models

import "time"

// EntityCount is the number of complaints attributed to one entity.
type EntityCount struct {
	Entity string `json:"entity" yaml:"entity"`
	Count  int    `json:"count" yaml:"count"`
}

// Counts holds the headline metrics of a view.
type Counts struct {
	Total    int           `json:"total" yaml:"total"`
	ByEntity []EntityCount `json:"by_entity" yaml:"by_entity"`
}

// TimeCount is one point of the complaint time series.
type TimeCount struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Count     int       `json:"count" yaml:"count"`
}

// KeyCount is one row of a frequency table.
type KeyCount struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// KeyShare is one slice of a composition table.
type KeyShare struct {
	Key   string  `json:"key" yaml:"key"`
	Count int     `json:"count" yaml:"count"`
	Share float64 `json:"share" yaml:"share"`
}

// HistogramBin covers [Lower, Upper); the last bin of a histogram also
// includes Upper.
type HistogramBin struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
	Count int     `json:"count" yaml:"count"`
}

// Report holds the computed analytics over one view of the dataset.
type Report struct {
	Counts          Counts         `json:"counts" yaml:"counts"`
	Timeline        []TimeCount    `json:"timeline" yaml:"timeline"`
	ByRegion        []KeyCount     `json:"by_region" yaml:"by_region"`
	ByStatus        []KeyShare     `json:"by_status" yaml:"by_status"`
	LengthHistogram []HistogramBin `json:"length_histogram" yaml:"length_histogram"`
}

// DashboardView is everything a renderer needs for one selection: the
// headline counts over the whole dataset and the report of the filtered view.
type DashboardView struct {
	Selection Selection `json:"selection" yaml:"selection"`
	Overall   Counts    `json:"overall" yaml:"overall"`
	Filtered  Report    `json:"filtered" yaml:"filtered"`
}
