// Package toast manages the ordered set of short-lived notifications shown by
// the dashboard.
package toast

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidKind indicates a kind other than success, error, warning or info.
var ErrInvalidKind = errors.New("invalid toast kind")

// Kind classifies a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Kinds lists every kind.
func Kinds() []Kind {
	return []Kind{KindSuccess, KindError, KindWarning, KindInfo}
}

// IsValid returns whether the kind is supported.
func (k Kind) IsValid() bool {
	switch k {
	case KindSuccess, KindError, KindWarning, KindInfo:
		return true
	default:
		return false
	}
}

// ParseKind parses a kind name, case-insensitively.
func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, raw)
	}
	return k, nil
}

// Toast is one active notification. Lifetime zero means it stays until
// dismissed.
type Toast struct {
	ID        string
	Kind      Kind
	Text      string
	Lifetime  time.Duration
	CreatedAt time.Time
}

// Sticky reports whether the toast never expires on its own.
func (t Toast) Sticky() bool {
	return t.Lifetime <= 0
}

// ExpiresAt returns when the toast expires, or the zero time if sticky.
func (t Toast) ExpiresAt() time.Time {
	if t.Sticky() {
		return time.Time{}
	}
	return t.CreatedAt.Add(t.Lifetime)
}

// Remaining returns the time left before expiry at now, never negative.
// Sticky toasts report zero.
func (t Toast) Remaining(now time.Time) time.Duration {
	if t.Sticky() {
		return 0
	}
	if left := t.ExpiresAt().Sub(now); left > 0 {
		return left
	}
	return 0
}
