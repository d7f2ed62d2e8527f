// Package render turns controller snapshots into styled terminal strings.
package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/csf-dashboard/internal/theme"
	"github.com/cristianoliveira/csf-dashboard/internal/toast"
)

// Palette holds the colours for one effective mode.
type Palette struct {
	Mode       theme.Mode
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
	Warning    lipgloss.Color
	Info       lipgloss.Color
}

var (
	lightPalette = Palette{
		Mode:       theme.ModeLight,
		Background: lipgloss.Color("#FAFAFA"),
		Foreground: lipgloss.Color("#1F2328"),
		Muted:      lipgloss.Color("#6E7781"),
		Accent:     lipgloss.Color("#0969DA"),
		Border:     lipgloss.Color("#D0D7DE"),
		Success:    lipgloss.Color("#1A7F37"),
		Error:      lipgloss.Color("#CF222E"),
		Warning:    lipgloss.Color("#9A6700"),
		Info:       lipgloss.Color("#0969DA"),
	}
	darkPalette = Palette{
		Mode:       theme.ModeDark,
		Background: lipgloss.Color("#0D1117"),
		Foreground: lipgloss.Color("#E6EDF3"),
		Muted:      lipgloss.Color("#7D8590"),
		Accent:     lipgloss.Color("#58A6FF"),
		Border:     lipgloss.Color("#30363D"),
		Success:    lipgloss.Color("#3FB950"),
		Error:      lipgloss.Color("#F85149"),
		Warning:    lipgloss.Color("#D29922"),
		Info:       lipgloss.Color("#58A6FF"),
	}
)

// PaletteFor returns the palette for mode. Unknown modes get the light palette.
func PaletteFor(mode theme.Mode) Palette {
	if mode == theme.ModeDark {
		return darkPalette
	}
	return lightPalette
}

// KindColor returns the colour for a toast kind.
func (p Palette) KindColor(kind toast.Kind) lipgloss.Color {
	switch kind {
	case toast.KindSuccess:
		return p.Success
	case toast.KindError:
		return p.Error
	case toast.KindWarning:
		return p.Warning
	default:
		return p.Info
	}
}

// Text returns the base text style.
func (p Palette) Text() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Foreground)
}

// Subtle returns the muted text style.
func (p Palette) Subtle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Muted)
}
