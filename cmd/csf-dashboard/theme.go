package main

import (
	"fmt"

	"github.com/cristianoliveira/csf-dashboard/cmd"
	"github.com/cristianoliveira/csf-dashboard/internal/theme"
	"github.com/spf13/cobra"
)

type themeClient interface {
	State() theme.State
	SchemeName() string
	SetTheme(pref theme.Preference) error
}

// themeOpener returns a ready theme client and the func that releases it.
type themeOpener func() (themeClient, func())

const (
	themeCommandLong = `Show or change the dashboard theme.

USAGE:
    csf-dashboard theme <subcommand>

SUBCOMMANDS:
    show            Print the stored preference and the effective mode
    set <theme>     Persist light, dark or system

EXAMPLES:
    # Follow the desktop colour scheme
    csf-dashboard theme set system

    # Check what the dashboard will render
    csf-dashboard theme show`
	themeSetLong = `Persist the theme preference used by the dashboard.

USAGE:
    csf-dashboard theme set <light|dark|system>

With system the dashboard follows the detected colour scheme and updates
while it runs.`
)

// NewThemeCmd creates the theme command with explicit dependencies.
func NewThemeCmd(open themeOpener) *cobra.Command {
	if open == nil {
		panic("NewThemeCmd: open dependency cannot be nil")
	}

	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the dashboard theme",
		Long:  themeCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return c.Help()
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored preference and the effective mode",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			client, release := open()
			defer release()
			printThemeState(c, client)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:       "set <light|dark|system>",
		Short:     "Persist the theme preference",
		Long:      themeSetLong,
		Args:      cobra.ExactArgs(1),
		ValidArgs: preferenceNames(),
		RunE: func(c *cobra.Command, args []string) error {
			pref, err := theme.ParsePreference(args[0])
			if err != nil {
				return err
			}
			client, release := open()
			defer release()
			if err := client.SetTheme(pref); err != nil {
				return fmt.Errorf("set theme: %w", err)
			}
			printThemeState(c, client)
			return nil
		},
	}

	themeCmd.AddCommand(showCmd, setCmd)
	return themeCmd
}

func printThemeState(c *cobra.Command, client themeClient) {
	st := client.State()
	out := c.OutOrStdout()
	fmt.Fprintf(out, "preference: %s\n", st.Preference)
	fmt.Fprintf(out, "mode:       %s\n", st.Mode)
	if st.Following() {
		fmt.Fprintf(out, "scheme:     %s\n", client.SchemeName())
	}
}

func preferenceNames() []string {
	var names []string
	for _, p := range theme.Preferences() {
		names = append(names, string(p))
	}
	return names
}

func openThemeClient() (themeClient, func()) {
	return openThemes(detectScheme())
}

var themeCmd = NewThemeCmd(openThemeClient)

func init() {
	cmd.RootCmd.AddCommand(themeCmd)
}
