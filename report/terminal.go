// Package report renders dashboard views for terminals, browsers and image
// snapshots.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"complaints-dashboard/models"
)

const (
	ruleWidth   = 54
	maxBarWidth = 30
)

var (
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#AF5FD7"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFC107"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4DB6AC"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

// PrintTerminal writes a styled text report of v to w.
func PrintTerminal(w io.Writer, v models.DashboardView) {
	sep := strings.Repeat("═", ruleWidth)
	thin := strings.Repeat("─", ruleWidth)

	fmt.Fprintf(w, "\n%s\n", bannerStyle.Render(sep))
	fmt.Fprintf(w, "%s\n", bannerStyle.Render("  COMPLAINTS REPORT"))
	fmt.Fprintf(w, "%s\n\n", bannerStyle.Render(sep))

	section(w, "Overview", thin)
	fmt.Fprintf(w, "  %-22s : %s\n", "Total complaints", valueStyle.Render(fmt.Sprint(v.Overall.Total)))
	for _, e := range v.Overall.ByEntity {
		fmt.Fprintf(w, "  %-22s : %s\n", e.Entity, valueStyle.Render(fmt.Sprint(e.Count)))
	}
	fmt.Fprintln(w)

	section(w, "Selection", thin)
	fmt.Fprintf(w, "  %s\n", mutedStyle.Render(DescribeSelection(v.Selection)))
	fmt.Fprintf(w, "  Matching complaints : %s\n\n", valueStyle.Render(fmt.Sprint(v.Filtered.Counts.Total)))

	r := v.Filtered

	section(w, "Complaints over time", thin)
	if len(r.Timeline) == 0 {
		fmt.Fprintf(w, "  No complaints in the selection\n")
	} else {
		peak := 0
		for _, p := range r.Timeline {
			peak = maxInt(peak, p.Count)
		}
		for _, p := range r.Timeline {
			fmt.Fprintf(w, "  %-19s %s (%d)\n", p.Timestamp.Format("2006-01-02 15:04"), bar(p.Count, peak), p.Count)
		}
	}
	fmt.Fprintln(w)

	section(w, "Complaints by region", thin)
	if len(r.ByRegion) == 0 {
		fmt.Fprintf(w, "  No region data\n")
	} else {
		peak := r.ByRegion[0].Count
		for _, kc := range r.ByRegion {
			fmt.Fprintf(w, "  %-15s %s (%d)\n", kc.Key, bar(kc.Count, peak), kc.Count)
		}
	}
	fmt.Fprintln(w)

	section(w, "Status share", thin)
	if len(r.ByStatus) == 0 {
		fmt.Fprintf(w, "  No status data\n")
	} else {
		for _, ks := range r.ByStatus {
			fmt.Fprintf(w, "  %-28s %5.1f%% (%d)\n", truncate(ks.Key, 28), ks.Share*100, ks.Count)
		}
	}
	fmt.Fprintln(w)

	section(w, "Description length distribution", thin)
	if len(r.LengthHistogram) == 0 {
		fmt.Fprintf(w, "  No descriptions\n")
	} else {
		peak := 0
		for _, b := range r.LengthHistogram {
			peak = maxInt(peak, b.Count)
		}
		for _, b := range r.LengthHistogram {
			fmt.Fprintf(w, "  %7.1f – %-7.1f %s (%d)\n", b.Lower, b.Upper, bar(b.Count, peak), b.Count)
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", bannerStyle.Render(sep))
}

// PrintCatalog writes the filter domains to w.
func PrintCatalog(w io.Writer, c models.Catalog) {
	thin := strings.Repeat("─", ruleWidth)

	section(w, "Entities", thin)
	fmt.Fprintf(w, "  %s\n\n", strings.Join(c.Entities, ", "))
	section(w, "Regions", thin)
	fmt.Fprintf(w, "  %s\n\n", strings.Join(c.Regions, ", "))
	section(w, "Statuses", thin)
	fmt.Fprintf(w, "  %s\n\n", strings.Join(c.Statuses, ", "))
	section(w, "Description length", thin)
	fmt.Fprintf(w, "  0 – %d\n\n", c.MaxDescriptionLength)
	section(w, "Dates", thin)
	if c.Dates == nil {
		fmt.Fprintf(w, "  No data\n")
	} else {
		fmt.Fprintf(w, "  %s – %s\n", c.Dates.From.Format("02/01/2006"), c.Dates.To.Format("02/01/2006"))
	}
}

// DescribeSelection renders a selection on one line.
func DescribeSelection(s models.Selection) string {
	return fmt.Sprintf("entity=%s region=%s status=%s length<=%d dates=%s..%s",
		s.Entity, s.Region, s.Status, s.MaxDescriptionLength,
		s.From.Format("2006-01-02"), s.To.Format("2006-01-02"))
}

func section(w io.Writer, title, rule string) {
	fmt.Fprintf(w, "%s\n", sectionStyle.Render("  "+title))
	fmt.Fprintf(w, "  %s\n", rule)
}

func bar(n, peak int) string {
	if peak <= 0 || n <= 0 {
		return ""
	}
	width := n * maxBarWidth / peak
	if width == 0 {
		width = 1
	}
	return barStyle.Render(strings.Repeat("█", width))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
