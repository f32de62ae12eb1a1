// Package tui is an interactive terminal front end for the dashboard. Each
// control change re-evaluates the whole selection.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"complaints-dashboard/models"
	"complaints-dashboard/report"
	"complaints-dashboard/services"
)

type control int

const (
	controlFrom control = iota
	controlTo
	controlRegion
	controlEntity
	controlStatus
	controlLength
	controlCount
)

var controlNames = [controlCount]string{"From", "To", "Region", "Company", "Status", "Max length"}

// lengthSteps is how many key presses move the length ceiling from 0 to max.
const lengthSteps = 20

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#AF5FD7"))
	focusedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFC107"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

// Model is the bubbletea model of the dashboard.
type Model struct {
	dashboard *services.Dashboard
	catalog   models.Catalog
	sel       models.Selection
	view      models.DashboardView
	focus     control
}

// New creates a Model showing the default selection of d.
func New(d *services.Dashboard) Model {
	m := Model{
		dashboard: d,
		catalog:   d.Catalog(),
		sel:       d.DefaultSelection(),
	}
	m.view = d.Evaluate(m.sel)
	return m
}

// Run starts the interactive program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, d *services.Dashboard) error {
	p := tea.NewProgram(New(d), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Selection returns the current selection.
func (m Model) Selection() models.Selection { return m.sel }

// DashboardView returns the evaluated view of the current selection.
func (m Model) DashboardView() models.DashboardView { return m.view }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k", "shift+tab":
		m.focus = (m.focus + controlCount - 1) % controlCount
	case "down", "j", "tab":
		m.focus = (m.focus + 1) % controlCount
	case "left", "h":
		m = m.adjust(-1)
	case "right", "l":
		m = m.adjust(1)
	case "r":
		m.sel = m.dashboard.DefaultSelection()
		m.view = m.dashboard.Evaluate(m.sel)
	}
	return m, nil
}

func (m Model) adjust(delta int) Model {
	before := m.sel

	switch m.focus {
	case controlEntity:
		m.sel.Entity = cycle(m.catalog.Entities, m.sel.Entity, delta)
	case controlRegion:
		m.sel.Region = cycle(m.catalog.Regions, m.sel.Region, delta)
	case controlStatus:
		m.sel.Status = cycle(m.catalog.Statuses, m.sel.Status, delta)
	case controlLength:
		step := m.catalog.MaxDescriptionLength / lengthSteps
		if step < 1 {
			step = 1
		}
		m.sel.MaxDescriptionLength = clamp(m.sel.MaxDescriptionLength+delta*step, 0, m.catalog.MaxDescriptionLength)
	case controlFrom:
		if m.catalog.Dates != nil {
			next := m.sel.From.AddDate(0, 0, delta)
			if !day(next).Before(day(m.catalog.Dates.From)) && !day(next).After(day(m.sel.To)) {
				m.sel.From = next
			}
		}
	case controlTo:
		if m.catalog.Dates != nil {
			next := m.sel.To.AddDate(0, 0, delta)
			if !day(next).After(day(m.catalog.Dates.To)) && !day(next).Before(day(m.sel.From)) {
				m.sel.To = next
			}
		}
	}

	if m.sel != before {
		m.view = m.dashboard.Evaluate(m.sel)
	}
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Complaints dashboard"))
	sb.WriteString("\n\n")

	values := [controlCount]string{
		m.sel.From.Format(services.SelectionDateLayout),
		m.sel.To.Format(services.SelectionDateLayout),
		m.sel.Region,
		m.sel.Entity,
		m.sel.Status,
		fmt.Sprintf("%d / %d", m.sel.MaxDescriptionLength, m.catalog.MaxDescriptionLength),
	}
	for i := control(0); i < controlCount; i++ {
		line := fmt.Sprintf("%-12s ‹ %s ›", controlNames[i], values[i])
		if i == m.focus {
			sb.WriteString(focusedStyle.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	report.PrintTerminal(&sb, m.view)
	sb.WriteString(helpStyle.Render("↑/↓ select control  ←/→ change value  r reset  q quit"))
	sb.WriteString("\n")
	return sb.String()
}

func cycle(values []string, current string, delta int) string {
	n := len(values)
	if n == 0 {
		return current
	}
	idx := -1
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return values[0]
	}
	return values[((idx+delta)%n+n)%n]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
