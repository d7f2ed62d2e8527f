package platform

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Terminal detects the preference from the terminal background colour.
// Terminals do not announce background changes, so subscriptions poll.
type Terminal struct {
	interval time.Duration
	isTTY    func() bool
	query    func() bool
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithPollInterval sets how often subscriptions re-query the background.
func WithPollInterval(d time.Duration) TerminalOption {
	return func(t *Terminal) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithQuery replaces the background query and TTY check.
func WithQuery(isTTY func() bool, dark func() bool) TerminalOption {
	return func(t *Terminal) {
		if isTTY != nil {
			t.isTTY = isTTY
		}
		if dark != nil {
			t.query = dark
		}
	}
}

// NewTerminal returns a detector for the terminal attached to stdout.
func NewTerminal(opts ...TerminalOption) *Terminal {
	t := &Terminal{
		interval: DefaultPollInterval,
		isTTY: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
		// A fresh renderer per call: the default renderer caches its answer.
		query: func() bool {
			return lipgloss.NewRenderer(os.Stdout).HasDarkBackground()
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Terminal) Name() string { return "terminal" }

func (t *Terminal) Available() bool { return t.isTTY() }

func (t *Terminal) QueryDarkPreferred() bool { return t.query() }

// Subscribe starts one polling goroutine that reports changes relative to
// the value seen at subscription time.
func (t *Terminal) Subscribe(onChange func(bool)) func() {
	stop := make(chan struct{})
	var once sync.Once
	last := t.query()

	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				dark := t.query()
				if dark == last {
					continue
				}
				last = dark
				select {
				case <-stop:
					return
				default:
				}
				onChange(dark)
			}
		}
	}()

	return func() {
		once.Do(func() { close(stop) })
	}
}
