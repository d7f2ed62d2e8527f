// Package errors routes user-facing messages to the console or the dashboard.
package errors

import (
	"sync"

	"github.com/cristianoliveira/csf-dashboard/internal/colors"
)

// ErrorHandler is the interface for error handling.
// Different implementations can handle errors differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console sink used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// consoleOutput is the ColorOutput backed by the colors package: errors and
// warnings go to stderr, info and success to stdout.
type consoleOutput struct{}

func (consoleOutput) Error(msgs ...string)   { colors.Error(msgs...) }
func (consoleOutput) Warning(msgs ...string) { colors.Warning(msgs...) }
func (consoleOutput) Info(msgs ...string)    { colors.Info(msgs...) }
func (consoleOutput) Success(msgs ...string) { colors.Success(msgs...) }

// CLIHandler handles errors by printing to stdout/stderr using the colors package.
// Output is serialised so concurrent messages never interleave.
type CLIHandler struct {
	colors ColorOutput
	mu     sync.Mutex
}

// NewCLIHandler returns a handler writing to colors.
func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

// NewDefaultCLIHandler returns a handler writing to the console.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(consoleOutput{})
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Success(msg)
}
