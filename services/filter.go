package services

import (
	"time"

	"complaints-dashboard/models"
)

// Predicate reports whether a complaint belongs to a view.
type Predicate func(c *models.Complaint) bool

// FilterEngine turns a Selection into a filtered view of the dataset.
type FilterEngine struct{}

// NewFilterEngine creates a FilterEngine.
func NewFilterEngine() *FilterEngine {
	return &FilterEngine{}
}

// Predicates returns one predicate per filter dimension: entity, region,
// status, description length and date range.
func (f *FilterEngine) Predicates(sel models.Selection) []Predicate {
	start, end := DayBounds(sel.From, sel.To)
	maxLen := sel.MaxDescriptionLength

	return []Predicate{
		equalsOrAll(sel.Entity, func(c *models.Complaint) string { return c.Entity }),
		equalsOrAll(sel.Region, func(c *models.Complaint) string { return c.Region }),
		equalsOrAll(sel.Status, func(c *models.Complaint) string { return c.Status }),
		func(c *models.Complaint) bool { return c.DescriptionLength() <= maxLen },
		func(c *models.Complaint) bool { return !c.Timestamp.Before(start) && c.Timestamp.Before(end) },
	}
}

// Apply rescans the whole dataset and returns a copy of every complaint
// matching all predicates, in load order. The result is never nil.
func (f *FilterEngine) Apply(ds *models.Dataset, sel models.Selection) []models.Complaint {
	preds := f.Predicates(sel)
	view := make([]models.Complaint, 0)

	ds.Each(func(c *models.Complaint) {
		for _, p := range preds {
			if !p(c) {
				return
			}
		}
		view = append(view, *c)
	})
	return view
}

// DayBounds widens a pair of dates to the half-open instant range
// [start of from, start of the day after to).
func DayBounds(from, to time.Time) (start, end time.Time) {
	start = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)
	return start, end
}

func equalsOrAll(selected string, field func(c *models.Complaint) string) Predicate {
	if selected == models.AllOption {
		return func(*models.Complaint) bool { return true }
	}
	return func(c *models.Complaint) bool { return field(c) == selected }
}
