package main

import (
	"fmt"

	"github.com/cristianoliveira/csf-dashboard/cmd"
	"github.com/cristianoliveira/csf-dashboard/internal/version"
	"github.com/spf13/cobra"
)

type versionClient interface {
	Version() string
}

type buildInfo struct{}

func (buildInfo) Version() string { return version.String() }

// NewVersionCmd creates the version command with explicit dependencies.
func NewVersionCmd(client versionClient) *cobra.Command {
	if client == nil {
		panic("NewVersionCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of csf-dashboard.`,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			fmt.Fprintf(c.OutOrStdout(), "csf-dashboard version %s\n", client.Version())
			return nil
		},
	}
}

var versionCmd = NewVersionCmd(buildInfo{})

func init() {
	cmd.RootCmd.AddCommand(versionCmd)
}
