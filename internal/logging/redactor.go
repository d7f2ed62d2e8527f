package logging

import (
	"strings"
	"unicode"
)

const redacted = "[REDACTED]"

// sensitiveSegments are key segments whose values never reach a log file.
var sensitiveSegments = map[string]struct{}{
	"secret":     {},
	"password":   {},
	"token":      {},
	"key":        {},
	"auth":       {},
	"credential": {},
}

// redactor masks values whose key looks like it holds a credential.
type redactor struct{}

func newRedactor() *redactor {
	return &redactor{}
}

// redact returns a copy of the flattened key-value pairs with sensitive
// values masked. A trailing key without a value is kept as is.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	out := append([]any(nil), pairs...)
	for i := 0; i+1 < len(out); i += 2 {
		if key, ok := out[i].(string); ok && r.isSensitive(key) {
			out[i+1] = redacted
		}
	}
	return out
}

// isSensitive splits key on anything that is not a letter or digit, so
// "redis_password" matches and "keyboard" does not.
func (r *redactor) isSensitive(key string) bool {
	segments := strings.FieldsFunc(strings.ToLower(key), func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsDigit(c)
	})
	for _, s := range segments {
		if _, ok := sensitiveSegments[s]; ok {
			return true
		}
	}
	return false
}
