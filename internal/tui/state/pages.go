package state

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/csf-dashboard/internal/tui/render"
)

// Page identifies a dashboard page.
type Page int

const (
	PageOverview Page = iota
	PageAssessments
	pageCount
)

// Title returns the tab title.
func (p Page) Title() string {
	switch p {
	case PageAssessments:
		return "Assessments"
	default:
		return "Overview"
	}
}

// Next returns the following page, wrapping around.
func (p Page) Next() Page {
	return (p + 1) % pageCount
}

// csfFunctions are the six CSF 2.0 functions.
var csfFunctions = []string{"Govern", "Identify", "Protect", "Detect", "Respond", "Recover"}

func renderTabs(active Page, p render.Palette) string {
	tabs := make([]string, 0, pageCount)
	for page := Page(0); page < pageCount; page++ {
		if page == active {
			tabs = append(tabs, lipgloss.NewStyle().Bold(true).Underline(true).Foreground(p.Accent).Render(page.Title()))
			continue
		}
		tabs = append(tabs, p.Subtle().Render(page.Title()))
	}
	return strings.Join(tabs, "   ")
}

func renderOverview(p render.Palette) string {
	cards := []render.MetricCard{
		{Title: "Functions", Value: fmt.Sprint(len(csfFunctions)), Caption: "CSF 2.0", Width: 18},
		{Title: "Categories", Value: "22", Width: 18},
		{Title: "Subcategories", Value: "106", Width: 18},
		{Title: "Assessments", Value: "0", Caption: "none started", Width: 18},
	}
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = render.RenderMetricCard(c, p)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderAssessments(p render.Palette) string {
	lines := []string{p.Subtle().Render("No assessments yet. Function coverage:")}
	for _, fn := range csfFunctions {
		lines = append(lines, fmt.Sprintf("  %-10s %s", fn, render.StatusBadge(render.StatusNotAssessed, p)))
	}
	return strings.Join(lines, "\n")
}
