package services

import (
	"sort"

	"complaints-dashboard/models"
)

// BuildCatalog computes the domain of every filter control from the dataset.
// An empty dataset yields sentinel-only domains, a zero length ceiling and
// no date range.
func BuildCatalog(ds *models.Dataset) models.Catalog {
	entities := make(map[string]struct{})
	regions := make(map[string]struct{})
	statuses := make(map[string]struct{})
	maxLen := 0
	var dates *models.DateRange

	ds.Each(func(c *models.Complaint) {
		entities[c.Entity] = struct{}{}
		if c.Region != models.NotAvailable {
			regions[c.Region] = struct{}{}
		}
		statuses[c.Status] = struct{}{}

		if l := c.DescriptionLength(); l > maxLen {
			maxLen = l
		}

		if dates == nil {
			dates = &models.DateRange{From: c.Timestamp, To: c.Timestamp}
			return
		}
		if c.Timestamp.Before(dates.From) {
			dates.From = c.Timestamp
		}
		if c.Timestamp.After(dates.To) {
			dates.To = c.Timestamp
		}
	})

	regionDomain := append([]string{models.AllOption}, sortedKeys(regions)...)
	regionDomain = append(regionDomain, models.NotAvailable)

	return models.Catalog{
		Entities:             append([]string{models.AllOption}, sortedKeys(entities)...),
		Regions:              regionDomain,
		Statuses:             append([]string{models.AllOption}, sortedKeys(statuses)...),
		MaxDescriptionLength: maxLen,
		Dates:                dates,
	}
}

// DefaultSelection is the selection that filters nothing out.
func DefaultSelection(c models.Catalog) models.Selection {
	sel := models.Selection{
		Entity:               models.AllOption,
		Region:               models.AllOption,
		Status:               models.AllOption,
		MaxDescriptionLength: c.MaxDescriptionLength,
	}
	if c.Dates != nil {
		sel.From = c.Dates.From
		sel.To = c.Dates.To
	}
	return sel
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
