/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/csf-dashboard/internal/colors"
	"github.com/cristianoliveira/csf-dashboard/internal/config"
	"github.com/cristianoliveira/csf-dashboard/internal/logging"
	"github.com/cristianoliveira/csf-dashboard/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command. Running it without a subcommand opens
// the dashboard once a RunE is attached by the binary.
var RootCmd = &cobra.Command{
	Use:           "csf-dashboard",
	Short:         "A terminal dashboard for Cybersecurity Framework assessments.",
	Long:          `A terminal dashboard for Cybersecurity Framework assessments, with light, dark and system themes.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		Setup(cmd.CommandPath())
		return nil
	},
}

// Setup loads configuration, applies the console flags and starts file
// logging. A logging failure is reported and the command continues.
func Setup(command string) {
	config.Load()
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))
	if err := logging.InitGlobalFor(command); err != nil {
		colors.Warning("file logging disabled:", err.Error())
	}
}

// Execute runs the root command with the given arguments.
func Execute(args []string) error {
	RootCmd.SetArgs(args)
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.SetVersionTemplate("csf-dashboard version {{.Version}}\n")

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			if cmd.Long != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", cmd.Long)
			}
			fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
			return
		}
		printHelpText(cmd.OutOrStdout(), cmd)
	})
}

func printHelpText(w io.Writer, cmd *cobra.Command) {
	commandOrder := []string{
		"theme",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Name(), found.Short))
	}

	fmt.Fprintf(w, `csf-dashboard v%s

%s

USAGE:
    csf-dashboard [COMMAND] [OPTIONS]

Without a command the interactive dashboard is opened.

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
    -v, --version   Show version
`, version.String(), cmd.Short, strings.Join(cmdLines, "\n"))
}
