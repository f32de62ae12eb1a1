package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"complaints-dashboard/models"
)

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html.tmpl"))

// barRow is one labelled bar of an HTML chart.
type barRow struct {
	Label   string
	Value   string
	Percent float64
}

type option struct {
	Value    string
	Selected bool
}

type metric struct {
	Label string
	Value int
}

type pageData struct {
	Title         string
	Metrics       []metric
	Matching      int
	Entities      []option
	Regions       []option
	Statuses      []option
	MaxLength     int
	Length        int
	DateMin       string
	DateMax       string
	From          string
	To            string
	TimelineChart []barRow
	RegionChart   []barRow
	StatusChart   []barRow
	LengthChart   []barRow
}

// RenderHTML writes the full dashboard page: the five controls populated
// from c and the charts of v.
func RenderHTML(w io.Writer, c models.Catalog, v models.DashboardView) error {
	if err := dashboardTmpl.Execute(w, buildPage(c, v)); err != nil {
		return fmt.Errorf("report: render html: %w", err)
	}
	return nil
}

// HTML renders the dashboard page into memory.
func HTML(c models.Catalog, v models.DashboardView) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, c, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildPage(c models.Catalog, v models.DashboardView) pageData {
	sel := v.Selection
	p := pageData{
		Title:     "Complaints Report",
		Matching:  v.Filtered.Counts.Total,
		Entities:  options(c.Entities, sel.Entity),
		Regions:   options(c.Regions, sel.Region),
		Statuses:  options(c.Statuses, sel.Status),
		MaxLength: c.MaxDescriptionLength,
		Length:    sel.MaxDescriptionLength,
	}

	p.Metrics = append(p.Metrics, metric{Label: "Total complaints", Value: v.Overall.Total})
	for _, e := range v.Overall.ByEntity {
		p.Metrics = append(p.Metrics, metric{Label: e.Entity, Value: e.Count})
	}

	if c.Dates != nil {
		p.DateMin = c.Dates.From.Format(DateLayout)
		p.DateMax = c.Dates.To.Format(DateLayout)
	}
	if !sel.From.IsZero() {
		p.From = sel.From.Format(DateLayout)
	}
	if !sel.To.IsZero() {
		p.To = sel.To.Format(DateLayout)
	}

	r := v.Filtered

	peak := 0
	for _, t := range r.Timeline {
		peak = maxInt(peak, t.Count)
	}
	for _, t := range r.Timeline {
		p.TimelineChart = append(p.TimelineChart, barRow{
			Label: t.Timestamp.Format("02/01/2006 15:04"), Value: fmt.Sprint(t.Count), Percent: percent(t.Count, peak),
		})
	}

	peak = 0
	for _, kc := range r.ByRegion {
		peak = maxInt(peak, kc.Count)
	}
	for _, kc := range r.ByRegion {
		p.RegionChart = append(p.RegionChart, barRow{Label: kc.Key, Value: fmt.Sprint(kc.Count), Percent: percent(kc.Count, peak)})
	}

	for _, ks := range r.ByStatus {
		p.StatusChart = append(p.StatusChart, barRow{
			Label: ks.Key, Value: fmt.Sprintf("%.1f%%", ks.Share*100), Percent: ks.Share * 100,
		})
	}

	peak = 0
	for _, b := range r.LengthHistogram {
		peak = maxInt(peak, b.Count)
	}
	for _, b := range r.LengthHistogram {
		p.LengthChart = append(p.LengthChart, barRow{
			Label: fmt.Sprintf("%.0f – %.0f", b.Lower, b.Upper), Value: fmt.Sprint(b.Count), Percent: percent(b.Count, peak),
		})
	}
	return p
}

// DateLayout is the date format of the HTML date controls and query strings.
const DateLayout = "2006-01-02"

func options(values []string, selected string) []option {
	out := make([]option, len(values))
	for i, v := range values {
		out[i] = option{Value: v, Selected: v == selected}
	}
	return out
}

func percent(n, peak int) float64 {
	if peak <= 0 {
		return 0
	}
	return float64(n) * 100 / float64(peak)
}
