// Package state provides the bubbletea model for the dashboard.
package state

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/csf-dashboard/internal/errors"
	"github.com/cristianoliveira/csf-dashboard/internal/theme"
	"github.com/cristianoliveira/csf-dashboard/internal/toast"
	"github.com/cristianoliveira/csf-dashboard/internal/tui/render"
)

const (
	defaultWidth = 80
	tickInterval = time.Second
)

var demoToasts = map[toast.Kind]string{
	toast.KindSuccess: "Assessment saved",
	toast.KindError:   "Could not reach the evidence store",
	toast.KindWarning: "3 controls have no owner",
	toast.KindInfo:    "Profile synced",
}

// changeMsg tells the model a controller changed state.
type changeMsg struct{}

// tickMsg refreshes countdowns.
type tickMsg time.Time

// Model is the dashboard UI. It reads snapshots from the controllers on every
// View and never mutates their state directly.
type Model struct {
	themes   *theme.Controller
	toasts   *toast.Controller
	messages errors.ErrorHandler

	keys KeyMap
	help help.Model
	page Page

	width  int
	height int

	changesMu   sync.Mutex
	changes     chan struct{}
	unsubscribe []func()
	closed      bool
}

// NewModel wires the model to both controllers. The controllers are owned by
// the caller until the model quits, at which point the model closes them.
func NewModel(themes *theme.Controller, toasts *toast.Controller) *Model {
	m := &Model{
		themes:   themes,
		toasts:   toasts,
		messages: errors.NewToastHandler(toasts),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		width:    defaultWidth,
		changes:  make(chan struct{}, 1),
	}
	m.unsubscribe = []func(){
		themes.Subscribe(func(theme.State) { m.signal() }),
		toasts.Subscribe(func([]toast.Toast) { m.signal() }),
	}
	return m
}

// signal records a pending change without blocking the controller. Several
// changes before the next read collapse into one.
func (m *Model) signal() {
	m.changesMu.Lock()
	defer m.changesMu.Unlock()
	if m.changes == nil {
		return
	}
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changeMsg{}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts listening for controller changes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForChange(m.changes), tick())
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case changeMsg:
		if m.closed {
			return m, nil
		}
		return m, waitForChange(m.changes)
	case tickMsg:
		if m.closed {
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Light):
		m.setTheme(theme.PreferenceLight)
	case key.Matches(msg, m.keys.Dark):
		m.setTheme(theme.PreferenceDark)
	case key.Matches(msg, m.keys.System):
		m.setTheme(theme.PreferenceSystem)
	case key.Matches(msg, m.keys.CycleTheme):
		m.setTheme(m.themes.Preference().Next())
	case key.Matches(msg, m.keys.NextPage):
		m.page = m.page.Next()
	case key.Matches(msg, m.keys.ToastSuccess):
		m.messages.Success(demoToasts[toast.KindSuccess])
	case key.Matches(msg, m.keys.ToastError):
		m.messages.Error(demoToasts[toast.KindError])
	case key.Matches(msg, m.keys.ToastWarning):
		m.messages.Warning(demoToasts[toast.KindWarning])
	case key.Matches(msg, m.keys.ToastInfo):
		m.messages.Info(demoToasts[toast.KindInfo])
	case key.Matches(msg, m.keys.DismissOne):
		if active := m.toasts.Active(); len(active) > 0 {
			m.toasts.Dismiss(active[0].ID)
		}
	case key.Matches(msg, m.keys.DismissAll):
		m.toasts.DismissAll()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) setTheme(p theme.Preference) {
	if err := m.themes.SetTheme(p); err != nil {
		m.messages.Error("Theme change failed: " + err.Error())
	}
}

// Close detaches from and closes both controllers. It is idempotent.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
	m.themes.Close()
	m.toasts.Close()

	m.changesMu.Lock()
	close(m.changes)
	m.changes = nil
	m.changesMu.Unlock()
}

// Page returns the active page.
func (m *Model) Page() Page {
	return m.page
}

// View renders the model.
func (m *Model) View() string {
	if m.closed {
		return ""
	}
	state := m.themes.State()
	palette := render.PaletteFor(state.Mode)

	sections := []string{
		render.Logo(palette) + "   " + render.SegmentedControl(state, palette),
		renderTabs(m.page, palette),
		"",
	}
	switch m.page {
	case PageAssessments:
		sections = append(sections, renderAssessments(palette))
	default:
		sections = append(sections, renderOverview(palette))
	}
	if toasts := render.ToastListAt(m.toasts.Active(), palette, m.width, m.toasts.Now()); toasts != "" {
		sections = append(sections, "", toasts)
	}
	sections = append(sections, "", m.help.View(m.keys))
	return strings.Join(sections, "\n")
}
