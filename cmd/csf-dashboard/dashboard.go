package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/csf-dashboard/cmd"
	"github.com/cristianoliveira/csf-dashboard/internal/platform"
	"github.com/cristianoliveira/csf-dashboard/internal/tui/state"
	"github.com/spf13/cobra"
)

// runProgram drives a bubbletea program to completion. Replaced in tests.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// runDashboard opens the interactive dashboard and blocks until it quits.
// The terminal background is read once up front: while the program runs it
// owns stdin, and a background query would compete with it for the reply.
func runDashboard(c *cobra.Command, args []string) error {
	themes, release := openThemes(platform.Snapshot(detectScheme()))
	defer release()

	model := state.NewModel(themes, newToasts())
	defer model.Close()

	return runProgram(model)
}

func init() {
	cmd.RootCmd.Args = cobra.NoArgs
	cmd.RootCmd.RunE = runDashboard
}
