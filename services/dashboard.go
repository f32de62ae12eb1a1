package services

import (
	"time"

	"complaints-dashboard/metrics"
	"complaints-dashboard/models"
	"complaints-dashboard/utils"
)

// Dashboard ties the engine together over one loaded dataset: the catalog
// is computed once, every selection is filtered and aggregated from scratch.
// It holds no mutable state and is safe to share between readers.
type Dashboard struct {
	dataset    *models.Dataset
	catalog    models.Catalog
	overall    models.Counts
	filter     *FilterEngine
	aggregator *Aggregator
	metrics    *metrics.Metrics
	logger     *utils.Logger
}

// NewDashboard builds the catalog and headline counts for ds. logger and m
// may be nil.
func NewDashboard(ds *models.Dataset, bins int, logger *utils.Logger, m *metrics.Metrics) *Dashboard {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	agg := NewAggregator(ds.Entities(), bins)
	catalog := BuildCatalog(ds)

	m.SetDatasetRows(ds.Len())
	if catalog.Dates == nil {
		logger.Warn("[dashboard] Dataset is empty; every view will be empty")
	} else {
		logger.Info("[dashboard] %d complaints between %s and %s",
			ds.Len(), catalog.Dates.From.Format("2006-01-02"), catalog.Dates.To.Format("2006-01-02"))
	}

	return &Dashboard{
		dataset:    ds,
		catalog:    catalog,
		overall:    agg.Counts(ds.Records()),
		filter:     NewFilterEngine(),
		aggregator: agg,
		metrics:    m,
		logger:     logger,
	}
}

// Dataset returns the canonical dataset.
func (d *Dashboard) Dataset() *models.Dataset { return d.dataset }

// Catalog returns the control domains computed at load time.
func (d *Dashboard) Catalog() models.Catalog { return d.catalog }

// DefaultSelection returns the selection that filters nothing out.
func (d *Dashboard) DefaultSelection() models.Selection { return DefaultSelection(d.catalog) }

// View returns the complaints matching sel.
func (d *Dashboard) View(sel models.Selection) []models.Complaint {
	return d.filter.Apply(d.dataset, sel)
}

// Evaluate filters the dataset with sel and aggregates the result.
func (d *Dashboard) Evaluate(sel models.Selection) models.DashboardView {
	start := time.Now()
	view := d.filter.Apply(d.dataset, sel)
	report := d.aggregator.Generate(view)
	elapsed := time.Since(start)

	d.metrics.ObserveEvaluation(elapsed, len(view))
	d.logger.Debug("[dashboard] Selection %+v matched %d/%d complaints in %v",
		sel, len(view), d.dataset.Len(), elapsed)

	return models.DashboardView{
		Selection: sel,
		Overall:   d.overall,
		Filtered:  *report,
	}
}
