package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cristianoliveira/csf-dashboard/internal/colors"
)

// Validator validates and normalizes a configuration value.
// Returns the normalized value and an error if validation fails.
type Validator func(key, value, defaultValue string) (normalized string, err error)

type validatorRegistry struct {
	mu         sync.RWMutex
	validators map[string]Validator
}

var registry = &validatorRegistry{
	validators: make(map[string]Validator),
}

// RegisterValidator registers a validator for a configuration key.
// Panics if a validator is already registered for the key.
func RegisterValidator(key string, validator Validator) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, exists := registry.validators[key]; exists {
		panic(fmt.Sprintf("validator already registered for key: %s", key))
	}
	registry.validators[key] = validator
}

func getValidator(key string) Validator {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.validators[key]
}

// MinIntValidator returns a validator accepting integers no smaller than min.
func MinIntValidator(min int) Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < min {
			colors.Warning(fmt.Sprintf("invalid %s value '%s': must be an integer >= %d, using default: %s", key, value, min, defaultValue))
			return defaultValue, nil
		}
		return strconv.Itoa(n), nil
	}
}

// PositiveIntValidator accepts integers greater than zero.
func PositiveIntValidator() Validator { return MinIntValidator(1) }

// NonNegativeIntValidator accepts zero as well. Zero means "no limit" for
// keys such as toast_max.
func NonNegativeIntValidator() Validator { return MinIntValidator(0) }

// EnumValidator returns a validator accepting one of allowed, case-insensitively.
// The stored value is lower-cased.
func EnumValidator(allowed ...string) Validator {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	listed := append([]string(nil), allowed...)
	sort.Strings(listed)
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		lower := strings.ToLower(strings.TrimSpace(value))
		if _, ok := set[lower]; !ok {
			colors.Warning(fmt.Sprintf("invalid %s value '%s': must be one of: %s; using default: %s", key, value, strings.Join(listed, ", "), defaultValue))
			return defaultValue, nil
		}
		return lower, nil
	}
}

// BoolValidator stores booleans as "true" or "false".
func BoolValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		normalized := normalizeBool(value)
		if normalized != "true" && normalized != "false" {
			colors.Warning(fmt.Sprintf("invalid boolean value for %s: '%s', must be one of: 1, true, yes, on, 0, false, no, off; using default: %s", key, value, defaultValue))
			return defaultValue, nil
		}
		return normalized, nil
	}
}

func normalizeBool(val string) string {
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return "true"
	case "0", "false", "no", "off":
		return "false"
	default:
		return val
	}
}

func initValidators() {
	for _, key := range []string{"theme_poll_interval_ms", "toast_lifetime_ms", "logging_max_files"} {
		RegisterValidator(key, PositiveIntValidator())
	}
	RegisterValidator("toast_max", NonNegativeIntValidator())
	RegisterValidator("redis_db", NonNegativeIntValidator())

	RegisterValidator("preferences_backend", EnumValidator("toml", "sqlite", "redis", "memory"))
	RegisterValidator("logging_level", EnumValidator("debug", "info", "warn", "error"))

	for _, key := range []string{"logging_enabled", "debug", "quiet"} {
		RegisterValidator(key, BoolValidator())
	}
}
