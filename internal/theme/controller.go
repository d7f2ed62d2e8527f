package theme

import (
	"sync"

	"github.com/cristianoliveira/csf-dashboard/internal/logging"
	"github.com/cristianoliveira/csf-dashboard/internal/platform"
	"github.com/cristianoliveira/csf-dashboard/internal/preferences"
)

// DefaultKey is the persistence key for the preference.
const DefaultKey = "theme"

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithKey overrides the persistence key.
func WithKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.key = key
		}
	}
}

// Controller is the single source of truth for the theme preference.
//
// While the preference is system it holds one platform subscription; the
// subscription is dropped as soon as the preference becomes light or dark.
// Platform callbacks are tagged with a generation and ignored unless they
// belong to the live subscription, so a callback that races an unsubscribe
// can never change the mode.
//
// Scheme and store calls may block (terminal queries, network stores) and are
// never made while mu is held; readers such as State only wait for in-memory
// updates.
type Controller struct {
	mu        sync.Mutex
	persistMu sync.Mutex
	store     preferences.Store
	scheme    platform.ColorScheme
	key       string
	logger    logging.Logger

	pref        Preference
	mode        Mode
	following   platform.ColorScheme
	generation  uint64
	events      uint64
	unsubscribe func()
	closed      bool

	observers    map[int]func(State)
	nextObserver int
}

// NewController returns a controller in the system preference with the light
// mode until Initialize runs. A nil store keeps the preference in memory; a
// nil scheme behaves as the light fallback.
func NewController(store preferences.Store, scheme platform.ColorScheme, opts ...Option) *Controller {
	if store == nil {
		store = preferences.NewMemoryStore()
	}
	if scheme == nil {
		scheme = platform.Fallback()
	}
	c := &Controller{
		store:     store,
		scheme:    scheme,
		key:       DefaultKey,
		logger:    logging.Nop(),
		pref:      DefaultPreference(),
		mode:      ModeLight,
		observers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize loads the persisted preference and applies it. Missing, unreadable
// or invalid values resolve to system. It never writes to the store and may be
// called again; a repeated call reuses the existing platform subscription.
func (c *Controller) Initialize() Preference {
	raw, ok, err := c.store.Get(c.key)
	switch {
	case err != nil:
		c.logger.Warn("reading theme preference failed, using default", "slot", c.key, "error", err)
	case ok && !Preference(raw).IsValid():
		c.logger.Info("ignoring invalid persisted theme preference", "slot", c.key, "value", raw)
	}
	pref := NormalizePreference(raw)

	if state, ok := c.apply(pref); ok {
		c.logger.Debug("theme initialized", "preference", string(state.Preference), "mode", string(state.Mode))
	}
	return pref
}

// SetTheme applies pref, writes it through to the store and recomputes the
// mode before returning. A failed write is logged; the in-memory preference
// still changes.
func (c *Controller) SetTheme(pref Preference) error {
	if !pref.IsValid() {
		return ErrInvalidPreference
	}

	state, ok := c.apply(pref)
	if !ok {
		return ErrClosed
	}
	c.logger.Debug("theme set", "preference", string(state.Preference), "mode", string(state.Mode))
	c.persist()
	return nil
}

// persist writes the current preference. Writes are serialised and always
// carry the latest preference, so concurrent SetTheme calls cannot leave an
// older value in the store.
func (c *Controller) persist() {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	pref := c.pref
	c.mu.Unlock()

	if err := c.store.Set(c.key, string(pref)); err != nil {
		c.logger.Warn("persisting theme preference failed", "slot", c.key, "preference", string(pref), "error", err)
	}
}

// Preference returns the current preference.
func (c *Controller) Preference() Preference {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pref
}

// EffectiveMode returns the current resolved mode.
func (c *Controller) EffectiveMode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// State returns a snapshot of preference and mode.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Preference: c.pref, Mode: c.mode}
}

// SchemeName names the platform detector used while following the system.
func (c *Controller) SchemeName() string {
	c.mu.Lock()
	scheme := c.following
	c.mu.Unlock()
	if scheme == nil {
		scheme = c.activeScheme()
	}
	return scheme.Name()
}

// Subscribe registers fn to receive the state after every change. fn runs
// outside the controller lock and may call back into the controller.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || fn == nil {
		return func() {}
	}
	c.nextObserver++
	id := c.nextObserver
	c.observers[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// Close drops the platform subscription and all observers. It is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	unsubscribe := c.stopFollowingLocked()
	c.observers = make(map[int]func(State))
	c.mu.Unlock()
	unsubscribe()
}

// apply makes pref current and notifies observers. Entering system subscribes
// first and then queries, so a change between the two is not lost; both calls
// happen without the lock and their result is dropped if another apply or
// Close superseded this one meanwhile. It reports false once closed.
func (c *Controller) apply(pref Preference) (State, bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return State{}, false
	}
	c.pref = pref
	if pref != PreferenceSystem {
		unsubscribe := c.stopFollowingLocked()
		c.mode = Mode(pref)
		state, observers := c.snapshotLocked()
		c.mu.Unlock()

		unsubscribe()
		notify(observers, state)
		return state, true
	}

	scheme := c.following
	subscribe := scheme == nil
	if subscribe {
		c.generation++
	}
	gen, events := c.generation, c.events
	c.mu.Unlock()

	unsubscribe := func() {}
	if subscribe {
		scheme = c.activeScheme()
		unsubscribe = scheme.Subscribe(func(dark bool) {
			c.onPlatformChange(gen, dark)
		})
	}
	dark := scheme.QueryDarkPreferred()

	c.mu.Lock()
	if c.closed || gen != c.generation {
		state := State{Preference: c.pref, Mode: c.mode}
		c.mu.Unlock()
		unsubscribe()
		return state, true
	}
	if subscribe {
		c.following = scheme
		c.unsubscribe = unsubscribe
		c.logger.Debug("following platform colour scheme", "scheme", scheme.Name())
	}
	// A platform event seen meanwhile is at least as recent as the query.
	if events == c.events {
		c.mode = modeFor(dark)
	}
	state, observers := c.snapshotLocked()
	c.mu.Unlock()

	notify(observers, state)
	return state, true
}

// stopFollowingLocked invalidates the current subscription and returns its
// unsubscribe func, to be called once the lock is released.
func (c *Controller) stopFollowingLocked() func() {
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.following = nil
	c.generation++
	if unsubscribe == nil {
		return func() {}
	}
	return unsubscribe
}

// activeScheme falls back to light when the configured scheme is unavailable.
// c.scheme never changes after construction, so no lock is needed.
func (c *Controller) activeScheme() platform.ColorScheme {
	if c.scheme.Available() {
		return c.scheme
	}
	return platform.Fallback()
}

func (c *Controller) onPlatformChange(gen uint64, dark bool) {
	c.mu.Lock()
	if c.closed || c.pref != PreferenceSystem || gen != c.generation {
		c.mu.Unlock()
		c.logger.Debug("dropping stale platform colour scheme event", "dark", dark)
		return
	}
	c.events++
	mode := modeFor(dark)
	if mode == c.mode {
		c.mu.Unlock()
		return
	}
	c.mode = mode
	state, observers := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Debug("platform colour scheme changed", "mode", string(mode))
	notify(observers, state)
}

func (c *Controller) snapshotLocked() (State, []func(State)) {
	observers := make([]func(State), 0, len(c.observers))
	for id := 1; id <= c.nextObserver; id++ {
		if fn, ok := c.observers[id]; ok {
			observers = append(observers, fn)
		}
	}
	return State{Preference: c.pref, Mode: c.mode}, observers
}

func notify(observers []func(State), state State) {
	for _, fn := range observers {
		fn(state)
	}
}
