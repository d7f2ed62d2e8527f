package state

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the dashboard key bindings.
type KeyMap struct {
	Light        key.Binding
	Dark         key.Binding
	System       key.Binding
	CycleTheme   key.Binding
	NextPage     key.Binding
	ToastSuccess key.Binding
	ToastError   key.Binding
	ToastWarning key.Binding
	ToastInfo    key.Binding
	DismissOne   key.Binding
	DismissAll   key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Light:        key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "light")),
		Dark:         key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "dark")),
		System:       key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "system")),
		CycleTheme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle theme")),
		NextPage:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch page")),
		ToastSuccess: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "success toast")),
		ToastError:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "error toast")),
		ToastWarning: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "warning toast")),
		ToastInfo:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info toast")),
		DismissOne:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss oldest")),
		DismissAll:   key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "dismiss all")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CycleTheme, k.NextPage, k.DismissOne, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Light, k.Dark, k.System, k.CycleTheme},
		{k.ToastSuccess, k.ToastError, k.ToastWarning, k.ToastInfo},
		{k.DismissOne, k.DismissAll, k.NextPage},
		{k.Help, k.Quit},
	}
}
