package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"complaints-dashboard/models"
	"complaints-dashboard/utils"
)

// regionOverrides corrects the malformed location suffixes seen in the
// source data. Entries are applied in order, each one replacing the
// candidate code when it matches. Any other suffix is kept as-is.
var regionOverrides = []struct {
	candidate string
	code      string
}{
	{" C", "CE"},
	{" P", "PE"},
	{"ta", models.NotAvailable},
	{"--", models.NotAvailable},
}

// TimeParser turns the raw TEMPO text into an instant.
type TimeParser func(value string) (time.Time, error)

// NewTimeParser returns a strict parser for layout, or a format-guessing
// parser when layout is empty. Values without an offset are read in loc;
// every result is converted to loc so calendar days agree across sources.
func NewTimeParser(layout string, loc *time.Location) TimeParser {
	if loc == nil {
		loc = time.UTC
	}
	parse := func(value string) (time.Time, error) {
		return dateparse.ParseIn(value, loc)
	}
	if layout != "" {
		parse = func(value string) (time.Time, error) {
			return time.ParseInLocation(layout, value, loc)
		}
	}
	return func(value string) (time.Time, error) {
		ts, err := parse(strings.TrimSpace(value))
		if err != nil {
			return time.Time{}, err
		}
		return ts.In(loc), nil
	}
}

// Normalizer merges raw source tables into the canonical Dataset.
type Normalizer struct {
	logger    *utils.Logger
	parseTime TimeParser
}

// NewNormalizer creates a Normalizer with the given logger and time parser.
func NewNormalizer(logger *utils.Logger, parseTime TimeParser) *Normalizer {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	if parseTime == nil {
		parseTime = NewTimeParser("", time.UTC)
	}
	return &Normalizer{logger: logger, parseTime: parseTime}
}

// Normalize concatenates the sources in order, tags every row with its
// source entity and derives the typed and computed columns. A single
// unparseable timestamp aborts the whole run.
func (n *Normalizer) Normalize(sources []models.SourceTable) (*models.Dataset, error) {
	total := 0
	for _, src := range sources {
		total += len(src.Rows)
	}

	entities := make([]string, 0, len(sources))
	records := make([]models.Complaint, 0, total)
	notAvailable := 0

	for _, src := range sources {
		entities = appendUnique(entities, src.Entity)

		for i, raw := range src.Rows {
			ts, err := n.parseTime(raw.Time)
			if err != nil {
				return nil, fmt.Errorf("normalize: %s row %d: parse time %q: %w", src.Entity, i+1, raw.Time, err)
			}

			region := RegionCode(raw.Location)
			if region == models.NotAvailable {
				notAvailable++
			}

			records = append(records, models.Complaint{
				ID:          raw.ID,
				Timestamp:   ts,
				Location:    raw.Location,
				Region:      region,
				Status:      raw.Status,
				Description: raw.Description,
				Entity:      src.Entity,
			})
		}
	}

	n.logger.Info("[normalizer] Normalized %d complaints from %d sources (%d without region)",
		len(records), len(sources), notAvailable)
	return models.NewDataset(entities, records), nil
}

// RegionCode derives the two-letter region from a free-text location: the
// last two characters of the trimmed text, corrected by regionOverrides.
// Locations too short to carry a code yield NotAvailable.
func RegionCode(location string) string {
	runes := []rune(strings.TrimSpace(location))
	if len(runes) < 2 {
		return models.NotAvailable
	}

	code := string(runes[len(runes)-2:])
	for _, o := range regionOverrides {
		if code == o.candidate {
			code = o.code
		}
	}
	return code
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
