package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"complaints-dashboard/models"
)

// SelectionDateLayout is the date format accepted for the From and To controls.
const SelectionDateLayout = "2006-01-02"

// ErrInvalidSelection is wrapped by every error returned from ParseSelection.
var ErrInvalidSelection = errors.New("invalid selection")

// SelectionInput carries the textual value of each control, as received from
// command-line flags or a query string. Empty fields keep the catalog default.
type SelectionInput struct {
	Entity    string
	Region    string
	Status    string
	MaxLength string
	From      string
	To        string
}

// ParseSelection resolves input against the defaults of c. Dates are
// interpreted in loc. Values outside the catalog are accepted and simply
// match nothing; malformed numbers and dates are rejected.
func ParseSelection(c models.Catalog, in SelectionInput, loc *time.Location) (models.Selection, error) {
	if loc == nil {
		loc = time.UTC
	}
	sel := DefaultSelection(c)

	if v := strings.TrimSpace(in.Entity); v != "" {
		sel.Entity = v
	}
	if v := strings.TrimSpace(in.Region); v != "" {
		sel.Region = v
	}
	if v := strings.TrimSpace(in.Status); v != "" {
		sel.Status = v
	}

	if v := strings.TrimSpace(in.MaxLength); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return models.Selection{}, fmt.Errorf("%w: max_length %q is not a non-negative integer", ErrInvalidSelection, in.MaxLength)
		}
		sel.MaxDescriptionLength = n
	}

	if v := strings.TrimSpace(in.From); v != "" {
		t, err := time.ParseInLocation(SelectionDateLayout, v, loc)
		if err != nil {
			return models.Selection{}, fmt.Errorf("%w: from %q: expected YYYY-MM-DD", ErrInvalidSelection, in.From)
		}
		sel.From = t
	}
	if v := strings.TrimSpace(in.To); v != "" {
		t, err := time.ParseInLocation(SelectionDateLayout, v, loc)
		if err != nil {
			return models.Selection{}, fmt.Errorf("%w: to %q: expected YYYY-MM-DD", ErrInvalidSelection, in.To)
		}
		sel.To = t
	}

	return sel, nil
}
