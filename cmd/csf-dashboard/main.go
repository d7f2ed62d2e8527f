package main

import (
	"os"

	"github.com/cristianoliveira/csf-dashboard/cmd"
	"github.com/cristianoliveira/csf-dashboard/internal/errors"
	"github.com/cristianoliveira/csf-dashboard/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], cmd.Execute))
}

// run executes the command line and returns the process exit code. Failures
// are reported on the console and in the log before the logger is flushed.
func run(args []string, execute func([]string) error) int {
	code := 0
	if err := execute(args); err != nil {
		logging.With("component", "startup").Error("command failed", "error", err.Error())
		errors.NewDefaultCLIHandler().Error(err.Error())
		code = 1
	}
	if err := logging.ShutdownGlobal(); err != nil && code == 0 {
		errors.NewDefaultCLIHandler().Warning("log shutdown failed: " + err.Error())
	}
	return code
}
