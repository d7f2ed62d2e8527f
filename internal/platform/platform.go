// Package platform reports the environment's preferred colour scheme.
package platform

import (
	"sync"
	"time"

	"github.com/cristianoliveira/csf-dashboard/internal/config"
)

// ColorScheme is a queryable, subscribable source of the platform's
// light/dark preference.
type ColorScheme interface {
	// Name identifies the detector in logs and `theme show`.
	Name() string
	// Available reports whether the detector can answer at all.
	Available() bool
	// QueryDarkPreferred returns the current preference.
	QueryDarkPreferred() bool
	// Subscribe registers onChange for preference changes. The returned
	// function cancels the subscription; it never blocks and may be called
	// more than once. A callback already in flight may still run after it
	// returns.
	Subscribe(onChange func(isDark bool)) (unsubscribe func())
}

// DefaultPollInterval is used when theme_poll_interval_ms is unset.
const DefaultPollInterval = 2 * time.Second

// FromConfig returns the first available detector among the environment
// override and the terminal background, or the static light fallback.
func FromConfig() ColorScheme {
	interval := time.Duration(config.GetInt("theme_poll_interval_ms", int(DefaultPollInterval/time.Millisecond))) * time.Millisecond
	return Resolve(NewEnv(nil), NewTerminal(WithPollInterval(interval)))
}

// Resolve returns the first non-nil available detector, or Fallback.
func Resolve(detectors ...ColorScheme) ColorScheme {
	for _, d := range detectors {
		if d != nil && d.Available() {
			return d
		}
	}
	return Fallback()
}

type static struct {
	dark bool
}

// Static returns a detector with a fixed answer and no change events.
func Static(dark bool) ColorScheme {
	return static{dark: dark}
}

// Fallback is the detector used when nothing else is available: light.
func Fallback() ColorScheme {
	return Static(false)
}

func (s static) Name() string {
	if s.dark {
		return "static-dark"
	}
	return "static-light"
}

func (s static) Available() bool          { return true }
func (s static) QueryDarkPreferred() bool { return s.dark }

func (s static) Subscribe(func(bool)) func() { return func() {} }

type snapshot struct {
	name string
	dark bool
}

// Snapshot queries s once and returns a detector that keeps answering with
// that result under s's name. It never touches s again, which makes it safe
// to use while another component owns the terminal. A nil or unavailable s
// yields Fallback.
func Snapshot(s ColorScheme) ColorScheme {
	if s == nil || !s.Available() {
		return Fallback()
	}
	return snapshot{name: s.Name(), dark: s.QueryDarkPreferred()}
}

func (s snapshot) Name() string                { return s.name }
func (s snapshot) Available() bool             { return true }
func (s snapshot) QueryDarkPreferred() bool    { return s.dark }
func (s snapshot) Subscribe(func(bool)) func() { return func() {} }

// Manual is a detector driven by calls to Set. Set notifies subscribers
// synchronously, in subscription order.
type Manual struct {
	mu        sync.Mutex
	dark      bool
	available bool
	nextID    int
	subs      map[int]func(bool)
	order     []int
}

// NewManual returns an available Manual detector with the given preference.
func NewManual(dark bool) *Manual {
	return &Manual{dark: dark, available: true, subs: make(map[int]func(bool))}
}

func (m *Manual) Name() string { return "manual" }

func (m *Manual) Available() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.available
}

// SetAvailable toggles Available.
func (m *Manual) SetAvailable(available bool) {
	m.mu.Lock()
	m.available = available
	m.mu.Unlock()
}

func (m *Manual) QueryDarkPreferred() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dark
}

func (m *Manual) Subscribe(onChange func(bool)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.subs[id] = onChange
	m.order = append(m.order, id)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Set changes the preference and notifies current subscribers when it differs.
func (m *Manual) Set(dark bool) {
	m.mu.Lock()
	if m.dark == dark {
		m.mu.Unlock()
		return
	}
	m.dark = dark
	var callbacks []func(bool)
	for _, id := range m.order {
		if cb, ok := m.subs[id]; ok {
			callbacks = append(callbacks, cb)
		}
	}
	m.mu.Unlock()

	for _, cb := range callbacks {
		cb(dark)
	}
}

// Subscribers returns the number of live subscriptions.
func (m *Manual) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}
