package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaints-dashboard/models"
)

func TestAggregatorCounts(t *testing.T) {
	ds := sampleDataset(t)
	agg := NewAggregator(testEntities, 20)

	c := agg.Counts(ds.Records())
	assert.Equal(t, 5, c.Total)
	assert.Equal(t, []models.EntityCount{
		{Entity: "Ibyte", Count: 2},
		{Entity: "Hapvida", Count: 2},
		{Entity: "Nagem", Count: 1},
	}, c.ByEntity)
}

func TestAggregatorCountsSumToTotal(t *testing.T) {
	ds := sampleDataset(t)
	agg := NewAggregator(testEntities, 20)
	f := NewFilterEngine()

	for _, region := range BuildCatalog(ds).Regions {
		sel := allSelection()
		sel.Region = region
		c := agg.Counts(f.Apply(ds, sel))

		sum := 0
		for _, e := range c.ByEntity {
			sum += e.Count
		}
		assert.Equal(t, c.Total, sum, "region %s", region)
		assert.Len(t, c.ByEntity, 3, "every fixed entity is listed")
	}
}

func TestAggregatorCountsUnknownEntity(t *testing.T) {
	agg := NewAggregator([]string{"Ibyte"}, 20)
	c := agg.Counts([]models.Complaint{{Entity: "Ibyte"}, {Entity: "Other"}})

	assert.Equal(t, 2, c.Total)
	assert.Equal(t, []models.EntityCount{{Entity: "Ibyte", Count: 1}, {Entity: "Other", Count: 1}}, c.ByEntity)
}

func TestAggregatorGenerate(t *testing.T) {
	r := NewAggregator(testEntities, 20).Generate(sampleDataset(t).Records())

	require.Len(t, r.Timeline, 4)
	assert.Equal(t, time.Date(2023, 1, 5, 10, 0, 0, 0, time.UTC), r.Timeline[0].Timestamp)
	assert.Equal(t, 2, r.Timeline[0].Count)
	assert.Equal(t, time.Date(2023, 1, 8, 12, 0, 0, 0, time.UTC), r.Timeline[3].Timestamp)

	assert.Equal(t, []models.KeyCount{
		{Key: models.NotAvailable, Count: 2},
		{Key: "PE", Count: 2},
		{Key: "CE", Count: 1},
	}, r.ByRegion)

	require.Len(t, r.ByStatus, 3)
	assert.Equal(t, "Resolvido", r.ByStatus[0].Key)
	assert.InDelta(t, 0.6, r.ByStatus[0].Share, 1e-9)
	total := 0.0
	for _, s := range r.ByStatus {
		total += s.Share
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestLengthHistogram(t *testing.T) {
	r := NewAggregator(testEntities, 20).Generate(sampleDataset(t).Records())
	h := r.LengthHistogram

	require.Len(t, h, 20)
	assert.Equal(t, 1.0, h[0].Lower)
	assert.InDelta(t, 27.0, h[19].Upper, 1e-9)

	sum := 0
	for _, b := range h {
		sum += b.Count
	}
	assert.Equal(t, 5, sum)
	assert.Equal(t, 1, h[0].Count, "length 1")
	assert.Equal(t, 1, h[19].Count, "max length falls in the closed last bin")
}

func TestLengthHistogramSingleValue(t *testing.T) {
	view := []models.Complaint{{Description: "abc"}, {Description: " abc "}}
	h := NewAggregator(nil, 4).Generate(view).LengthHistogram

	require.Len(t, h, 4)
	assert.Equal(t, models.HistogramBin{Lower: 3, Upper: 4, Count: 2}, h[0])
	assert.Equal(t, 0, h[3].Count)
}

func TestAggregatorEmptyView(t *testing.T) {
	r := NewAggregator(testEntities, 20).Generate(nil)

	assert.Equal(t, 0, r.Counts.Total)
	assert.Len(t, r.Counts.ByEntity, 3)
	for _, e := range r.Counts.ByEntity {
		assert.Zero(t, e.Count)
	}
	assert.Empty(t, r.Timeline)
	assert.Empty(t, r.ByRegion)
	assert.Empty(t, r.ByStatus)
	assert.NotNil(t, r.LengthHistogram)
	assert.Empty(t, r.LengthHistogram)
}

func TestNewAggregatorDefaultsBins(t *testing.T) {
	h := NewAggregator(nil, 0).Generate([]models.Complaint{{Description: "a"}, {Description: "abcdefghij"}}).LengthHistogram
	assert.Len(t, h, DefaultHistogramBins)
}
