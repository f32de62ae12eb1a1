package report

import (
	"time"

	"complaints-dashboard/models"
)

func sampleCatalog() models.Catalog {
	return models.Catalog{
		Entities:             []string{models.AllOption, "Hapvida", "Ibyte", "Nagem"},
		Regions:              []string{models.AllOption, "CE", "PE", models.NotAvailable},
		Statuses:             []string{models.AllOption, "Resolvido", "Respondida"},
		MaxDescriptionLength: 27,
		Dates: &models.DateRange{
			From: time.Date(2023, 1, 5, 10, 0, 0, 0, time.UTC),
			To:   time.Date(2023, 1, 8, 12, 0, 0, 0, time.UTC),
		},
	}
}

func sampleView() models.DashboardView {
	return models.DashboardView{
		Selection: models.Selection{
			Entity:               models.AllOption,
			Region:               "PE",
			Status:               models.AllOption,
			MaxDescriptionLength: 27,
			From:                 time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC),
			To:                   time.Date(2023, 1, 8, 0, 0, 0, 0, time.UTC),
		},
		Overall: models.Counts{Total: 5, ByEntity: []models.EntityCount{
			{Entity: "Ibyte", Count: 2}, {Entity: "Hapvida", Count: 2}, {Entity: "Nagem", Count: 1},
		}},
		Filtered: models.Report{
			Counts: models.Counts{Total: 2, ByEntity: []models.EntityCount{
				{Entity: "Ibyte", Count: 1}, {Entity: "Hapvida", Count: 1}, {Entity: "Nagem", Count: 0},
			}},
			Timeline: []models.TimeCount{
				{Timestamp: time.Date(2023, 1, 5, 10, 0, 0, 0, time.UTC), Count: 1},
				{Timestamp: time.Date(2023, 1, 6, 23, 59, 0, 0, time.UTC), Count: 1},
			},
			ByRegion: []models.KeyCount{{Key: "PE", Count: 2}},
			ByStatus: []models.KeyShare{
				{Key: "Respondida", Count: 1, Share: 0.5},
				{Key: "Resolvido", Count: 1, Share: 0.5},
			},
			LengthHistogram: []models.HistogramBin{
				{Lower: 15, Upper: 15.6, Count: 1},
				{Lower: 15.6, Upper: 27, Count: 1},
			},
		},
	}
}
