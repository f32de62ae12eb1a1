package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaints-dashboard/models"
)

func TestHTMLRendersControls(t *testing.T) {
	page, err := HTML(sampleCatalog(), sampleView())
	require.NoError(t, err)
	out := string(page)

	assert.Contains(t, out, `<option value="PE" selected>PE</option>`)
	assert.Contains(t, out, `<option value="NOT AVAILABLE">NOT AVAILABLE</option>`)
	assert.Contains(t, out, `name="entity" value="ALL" checked`)
	assert.Contains(t, out, `name="from" value="2023-01-05" min="2023-01-05" max="2023-01-08"`)
	assert.Contains(t, out, `max="27" value="27"`)
}

func TestHTMLRendersMetricsAndCharts(t *testing.T) {
	page, err := HTML(sampleCatalog(), sampleView())
	require.NoError(t, err)
	out := string(page)

	assert.Contains(t, out, "Total complaints")
	assert.Contains(t, out, "2 complaints match the selection.")
	assert.Contains(t, out, "06/01/2023 23:59")
	assert.Contains(t, out, "50.0%")
	assert.Equal(t, 4, strings.Count(out, `<table class="chart">`))
	assert.NotContains(t, out, "No data for the current selection.")
}

func TestHTMLEmptyView(t *testing.T) {
	v := sampleView()
	v.Filtered = models.Report{}

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, sampleCatalog(), v))
	assert.Equal(t, 4, strings.Count(buf.String(), "No data for the current selection."))
}

func TestHTMLEmptyCatalog(t *testing.T) {
	page, err := HTML(models.Catalog{Entities: []string{models.AllOption}}, models.DashboardView{})
	require.NoError(t, err)
	assert.Contains(t, string(page), `name="from" value="" min="" max=""`)
}

func TestBuildPageScalesBars(t *testing.T) {
	p := buildPage(sampleCatalog(), sampleView())

	require.Len(t, p.RegionChart, 1)
	assert.InDelta(t, 100.0, p.RegionChart[0].Percent, 1e-9)
	require.Len(t, p.StatusChart, 2)
	assert.InDelta(t, 50.0, p.StatusChart[0].Percent, 1e-9)
	assert.Len(t, p.Metrics, 4)
}

func TestPercent(t *testing.T) {
	assert.Zero(t, percent(3, 0))
	assert.InDelta(t, 25.0, percent(1, 4), 1e-9)
}
