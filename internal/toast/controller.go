package toast

import (
	"sync"
	"time"

	"github.com/cristianoliveira/csf-dashboard/internal/clock"
	"github.com/cristianoliveira/csf-dashboard/internal/logging"
	"github.com/google/uuid"
)

const maxIDAttempts = 8

// entry pairs a toast with its pending expiry timer. Timers hold the entry
// pointer, not the id, so a late timer cannot remove a newer toast that
// reuses the same id.
type entry struct {
	toast Toast
	timer clock.Timer
}

// Controller owns the ordered list of active toasts and their timers.
// Every toast is removed exactly once, by expiry, Dismiss, DismissAll,
// overflow or Close, whichever comes first.
type Controller struct {
	mu              sync.Mutex
	clock           clock.Clock
	defaultLifetime time.Duration
	maxActive       int
	newID           func() string
	logger          logging.Logger

	entries []*entry
	closed  bool

	observers    map[int]func([]Toast)
	nextObserver int
}

// NewController returns an empty controller with a 4s default lifetime and
// no cap on active toasts.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		clock:           clock.Real(),
		defaultLifetime: DefaultLifetime,
		newID:           uuid.NewString,
		logger:          logging.Nop(),
		observers:       make(map[int]func([]Toast)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enqueue appends a toast and returns its id. The id differs from every
// active id. An unknown kind is shown as info. After Close it does nothing
// and returns "".
func (c *Controller) Enqueue(kind Kind, text string, opts ...EnqueueOption) string {
	o := enqueueOptions{lifetime: c.defaultLifetime}
	for _, opt := range opts {
		opt(&o)
	}
	if !kind.IsValid() {
		c.logger.Warn("unknown toast kind, using info", "kind", string(kind))
		kind = KindInfo
	}
	if o.lifetime < 0 {
		o.lifetime = 0
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ""
	}
	e := &entry{toast: Toast{
		ID:        c.uniqueIDLocked(),
		Kind:      kind,
		Text:      text,
		Lifetime:  o.lifetime,
		CreatedAt: c.clock.Now(),
	}}
	if o.lifetime > 0 {
		e.timer = c.clock.AfterFunc(o.lifetime, func() { c.expire(e) })
	}
	c.entries = append(c.entries, e)
	dropped := c.enforceCapLocked()
	snapshot, observers := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Debug("toast enqueued", "id", e.toast.ID, "kind", string(kind), "lifetime_ms", o.lifetime.Milliseconds())
	for _, d := range dropped {
		c.logger.Debug("toast dropped on overflow", "id", d.ID)
	}
	notify(observers, snapshot)
	return e.toast.ID
}

// Dismiss removes the toast with id and stops its timer. Unknown ids are
// ignored.
func (c *Controller) Dismiss(id string) {
	c.mu.Lock()
	idx := c.indexLocked(func(e *entry) bool { return e.toast.ID == id })
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	c.removeLocked(idx)
	snapshot, observers := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Debug("toast dismissed", "id", id)
	notify(observers, snapshot)
}

// DismissAll removes every active toast.
func (c *Controller) DismissAll() {
	c.mu.Lock()
	if len(c.entries) == 0 {
		c.mu.Unlock()
		return
	}
	n := len(c.entries)
	c.stopAllLocked()
	snapshot, observers := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Debug("toasts dismissed", "count", n)
	notify(observers, snapshot)
}

// Active returns the active toasts in display order.
func (c *Controller) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toastsLocked()
}

// Len returns the number of active toasts.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Get returns the active toast with id.
func (c *Controller) Get(id string) (Toast, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexLocked(func(e *entry) bool { return e.toast.ID == id })
	if idx < 0 {
		return Toast{}, false
	}
	return c.entries[idx].toast, true
}

// Now returns the controller clock's time.
func (c *Controller) Now() time.Time {
	return c.clock.Now()
}

// Subscribe registers fn to receive the active list after every change. fn
// runs outside the controller lock.
func (c *Controller) Subscribe(fn func([]Toast)) (unsubscribe func()) {
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

// Close stops every pending timer and drops all toasts and observers.
// It is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopAllLocked()
	c.observers = make(map[int]func([]Toast))
}

func (c *Controller) expire(e *entry) {
	c.mu.Lock()
	idx := c.indexLocked(func(x *entry) bool { return x == e })
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	c.removeLocked(idx)
	snapshot, observers := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Debug("toast expired", "id", e.toast.ID)
	notify(observers, snapshot)
}

func (c *Controller) uniqueIDLocked() string {
	for i := 0; i < maxIDAttempts; i++ {
		id := c.newID()
		if id != "" && !c.hasIDLocked(id) {
			return id
		}
	}
	for {
		if id := uuid.NewString(); !c.hasIDLocked(id) {
			return id
		}
	}
}

func (c *Controller) hasIDLocked(id string) bool {
	return c.indexLocked(func(e *entry) bool { return e.toast.ID == id }) >= 0
}

func (c *Controller) indexLocked(match func(*entry) bool) int {
	for i, e := range c.entries {
		if match(e) {
			return i
		}
	}
	return -1
}

func (c *Controller) removeLocked(idx int) {
	e := c.entries[idx]
	if e.timer != nil {
		e.timer.Stop()
	}
	c.entries = append(c.entries[:idx:idx], c.entries[idx+1:]...)
}

func (c *Controller) enforceCapLocked() []Toast {
	if c.maxActive <= 0 {
		return nil
	}
	var dropped []Toast
	for len(c.entries) > c.maxActive {
		dropped = append(dropped, c.entries[0].toast)
		c.removeLocked(0)
	}
	return dropped
}

func (c *Controller) stopAllLocked() {
	for _, e := range c.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	c.entries = nil
}

func (c *Controller) toastsLocked() []Toast {
	out := make([]Toast, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.toast
	}
	return out
}

func (c *Controller) snapshotLocked() ([]Toast, []func([]Toast)) {
	observers := make([]func([]Toast), 0, len(c.observers))
	for id := 1; id <= c.nextObserver; id++ {
		if fn, ok := c.observers[id]; ok {
			observers = append(observers, fn)
		}
	}
	return c.toastsLocked(), observers
}

func notify(observers []func([]Toast), toasts []Toast) {
	for _, fn := range observers {
		fn(toasts)
	}
}
