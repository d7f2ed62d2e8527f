package toast

import (
	"time"

	"github.com/cristianoliveira/csf-dashboard/internal/clock"
	"github.com/cristianoliveira/csf-dashboard/internal/config"
	"github.com/cristianoliveira/csf-dashboard/internal/logging"
)

// DefaultLifetime applies when Enqueue is given no Lifetime option.
const DefaultLifetime = 4 * time.Second

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the real clock.
func WithClock(c clock.Clock) Option {
	return func(ctrl *Controller) {
		if c != nil {
			ctrl.clock = c
		}
	}
}

// WithDefaultLifetime sets the lifetime used by Enqueue without a Lifetime
// option. A non-positive value makes toasts sticky by default.
func WithDefaultLifetime(d time.Duration) Option {
	return func(ctrl *Controller) {
		ctrl.defaultLifetime = d
	}
}

// WithMaxActive caps the number of active toasts, dropping the oldest on
// overflow. Zero or less means unbounded.
func WithMaxActive(n int) Option {
	return func(ctrl *Controller) {
		if n < 0 {
			n = 0
		}
		ctrl.maxActive = n
	}
}

// WithLogger sets the controller's logger.
func WithLogger(l logging.Logger) Option {
	return func(ctrl *Controller) {
		if l != nil {
			ctrl.logger = l
		}
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(ctrl *Controller) {
		if gen != nil {
			ctrl.newID = gen
		}
	}
}

// OptionsFromConfig maps toast_lifetime_ms and toast_max to options.
func OptionsFromConfig() []Option {
	return []Option{
		WithDefaultLifetime(time.Duration(config.GetInt("toast_lifetime_ms", int(DefaultLifetime/time.Millisecond))) * time.Millisecond),
		WithMaxActive(config.GetInt("toast_max", 0)),
	}
}

// EnqueueOption configures a single Enqueue call.
type EnqueueOption func(*enqueueOptions)

type enqueueOptions struct {
	lifetime time.Duration
}

// Lifetime sets how long the toast stays. Zero or less keeps it until dismissed.
func Lifetime(d time.Duration) EnqueueOption {
	return func(o *enqueueOptions) {
		o.lifetime = d
	}
}

// Sticky keeps the toast until it is dismissed.
func Sticky() EnqueueOption {
	return Lifetime(0)
}
