package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/csf-dashboard/internal/theme"
)

var segmentLabels = map[theme.Preference]string{
	theme.PreferenceLight:  "Light",
	theme.PreferenceDark:   "Dark",
	theme.PreferenceSystem: "System",
}

// SegmentLabel returns the display label for a preference.
func SegmentLabel(p theme.Preference) string {
	if label, ok := segmentLabels[p]; ok {
		return label
	}
	return string(p)
}

// SegmentedControl renders the Light/Dark/System selector with the active
// segment bracketed and highlighted. While following the system, the
// resolved mode is shown after the control.
func SegmentedControl(state theme.State, p Palette) string {
	active := lipgloss.NewStyle().Bold(true).Foreground(p.Background).Background(p.Accent)
	inactive := lipgloss.NewStyle().Foreground(p.Muted)

	segments := make([]string, 0, len(theme.Preferences()))
	for i, pref := range theme.Preferences() {
		label := fmt.Sprintf("%d %s", i+1, SegmentLabel(pref))
		if pref == state.Preference {
			segments = append(segments, active.Render("["+label+"]"))
			continue
		}
		segments = append(segments, inactive.Render(" "+label+" "))
	}

	control := strings.Join(segments, p.Subtle().Render("|"))
	if state.Following() {
		control += p.Subtle().Render(fmt.Sprintf("  (following system: %s)", state.Mode))
	}
	return control
}
