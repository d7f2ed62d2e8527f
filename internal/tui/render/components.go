package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Assessment statuses shown by StatusBadge.
const (
	StatusCompliant    = "compliant"
	StatusPartial      = "partial"
	StatusNonCompliant = "non-compliant"
	StatusNotAssessed  = "not-assessed"
)

// Logo renders the product wordmark.
func Logo(p Palette) string {
	mark := lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render("◆ CSF")
	name := p.Text().Bold(true).Render(" Dashboard")
	return mark + name
}

// MetricCard describes one headline number.
type MetricCard struct {
	Title   string
	Value   string
	Caption string
	Width   int
}

// RenderMetricCard renders card inside a rounded border.
func RenderMetricCard(card MetricCard, p Palette) string {
	body := []string{
		p.Subtle().Render(card.Title),
		p.Text().Bold(true).Render(card.Value),
	}
	if card.Caption != "" {
		body = append(body, p.Subtle().Render(card.Caption))
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	if card.Width > 0 {
		style = style.Width(card.Width)
	}
	return style.Render(strings.Join(body, "\n"))
}

// StatusBadge renders an assessment status as a coloured pill.
func StatusBadge(status string, p Palette) string {
	color := p.Muted
	label := "Not assessed"
	switch status {
	case StatusCompliant:
		color, label = p.Success, "Compliant"
	case StatusPartial:
		color, label = p.Warning, "Partial"
	case StatusNonCompliant:
		color, label = p.Error, "Non-compliant"
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render("● " + label)
}
