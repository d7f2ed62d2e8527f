package render

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/csf-dashboard/internal/toast"
)

const (
	toastLabelWidth = 9
	stickyMarker    = "📌"
	ellipsis        = "…"
)

// KindIcon returns the icon shown before a toast of kind.
func KindIcon(kind toast.Kind) string {
	switch kind {
	case toast.KindSuccess:
		return "✔"
	case toast.KindError:
		return "✖"
	case toast.KindWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}

// ToastList renders one line per toast, oldest first. Lines are truncated to
// width when width is positive. An empty list renders as "".
func ToastList(toasts []toast.Toast, p Palette, width int) string {
	return ToastListAt(toasts, p, width, time.Time{})
}

// ToastListAt is ToastList with a remaining-time column computed at now.
// A zero now omits the column.
func ToastListAt(toasts []toast.Toast, p Palette, width int, now time.Time) string {
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		lines = append(lines, toastLine(t, p, width, now))
	}
	return strings.Join(lines, "\n")
}

func toastLine(t toast.Toast, p Palette, width int, now time.Time) string {
	label := fmt.Sprintf("%s %-*s", KindIcon(t.Kind), toastLabelWidth-2, t.Kind)
	suffix := ""
	switch {
	case t.Sticky():
		suffix = " " + stickyMarker
	case !now.IsZero():
		suffix = fmt.Sprintf(" %ds", int((t.Remaining(now)+time.Second-1)/time.Second))
	}

	// One toast is one line: line breaks and tabs fold into single spaces.
	text := strings.Join(strings.Fields(t.Text), " ")
	if width > 0 {
		room := width - utf8.RuneCountInString(label) - 1 - utf8.RuneCountInString(suffix)
		text = truncate(text, room)
	}

	kindStyle := lipgloss.NewStyle().Bold(true).Foreground(p.KindColor(t.Kind))
	return kindStyle.Render(label) + " " + p.Text().Render(text) + p.Subtle().Render(suffix)
}

// truncate shortens value to at most width runes, ending with an ellipsis
// when anything was cut.
func truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(value) <= width {
		return value
	}
	if width == 1 {
		return ellipsis
	}
	return string([]rune(value)[:width-1]) + ellipsis
}
