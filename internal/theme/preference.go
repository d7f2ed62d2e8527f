// Package theme owns the persisted light/dark/system preference and the
// effective mode it resolves to.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPreference indicates a token other than light, dark or system.
	ErrInvalidPreference = errors.New("invalid theme preference")
	// ErrClosed indicates use of a controller after Close.
	ErrClosed = errors.New("theme controller is closed")
)

// Preference is the user-selected theme setting.
type Preference string

const (
	// PreferenceLight always renders light.
	PreferenceLight Preference = "light"
	// PreferenceDark always renders dark.
	PreferenceDark Preference = "dark"
	// PreferenceSystem follows the platform colour scheme.
	PreferenceSystem Preference = "system"
)

// Preferences lists the valid preferences in display order.
func Preferences() []Preference {
	return []Preference{PreferenceLight, PreferenceDark, PreferenceSystem}
}

// IsValid returns whether the preference is one of the supported values.
func (p Preference) IsValid() bool {
	switch p {
	case PreferenceLight, PreferenceDark, PreferenceSystem:
		return true
	default:
		return false
	}
}

// Next returns the preference after p in display order, wrapping around.
func (p Preference) Next() Preference {
	switch p {
	case PreferenceLight:
		return PreferenceDark
	case PreferenceDark:
		return PreferenceSystem
	default:
		return PreferenceLight
	}
}

// DefaultPreference is used when nothing valid is persisted.
func DefaultPreference() Preference {
	return PreferenceSystem
}

// NormalizePreference converts arbitrary persisted input to a valid
// preference. Missing or invalid values resolve to the default.
func NormalizePreference(raw string) Preference {
	p := Preference(strings.ToLower(strings.TrimSpace(raw)))
	if p.IsValid() {
		return p
	}
	return DefaultPreference()
}

// ParsePreference is the strict form of NormalizePreference for user input.
func ParsePreference(raw string) (Preference, error) {
	p := Preference(strings.ToLower(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q (expected light, dark or system)", ErrInvalidPreference, raw)
	}
	return p, nil
}

// Mode is the concrete rendering mode.
type Mode string

const (
	// ModeLight renders light.
	ModeLight Mode = "light"
	// ModeDark renders dark.
	ModeDark Mode = "dark"
)

func modeFor(dark bool) Mode {
	if dark {
		return ModeDark
	}
	return ModeLight
}

// State is a snapshot of the controller.
type State struct {
	Preference Preference
	Mode       Mode
}

// Following reports whether the mode tracks the platform.
func (s State) Following() bool {
	return s.Preference == PreferenceSystem
}
