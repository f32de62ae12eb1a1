package models

import "time"

// DateRange is an inclusive pair of instants.
type DateRange struct {
	From time.Time `json:"from" yaml:"from"`
	To   time.Time `json:"to" yaml:"to"`
}

// Catalog holds the selectable domain of every filter control.
type Catalog struct {
	Entities             []string   `json:"entities" yaml:"entities"`
	Regions              []string   `json:"regions" yaml:"regions"`
	Statuses             []string   `json:"statuses" yaml:"statuses"`
	MaxDescriptionLength int        `json:"max_description_length" yaml:"max_description_length"`
	Dates                *DateRange `json:"dates,omitempty" yaml:"dates,omitempty"` // nil when the dataset is empty
}

// Selection is one value per filter control. From and To are dates: the
// whole To day is included.
type Selection struct {
	Entity               string    `json:"entity" yaml:"entity"`
	Region               string    `json:"region" yaml:"region"`
	Status               string    `json:"status" yaml:"status"`
	MaxDescriptionLength int       `json:"max_description_length" yaml:"max_description_length"`
	From                 time.Time `json:"from" yaml:"from"`
	To                   time.Time `json:"to" yaml:"to"`
}
