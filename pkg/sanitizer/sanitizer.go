// Package sanitizer normalizes untrusted input before it reaches lookups
// and storage.
package sanitizer

import (
	"strings"

	"golang.org/x/text/cases"
)

// Apply runs a value through a chain of transformations.
func Apply[T any](value T, transforms ...func(T) T) T {
	result := value
	for _, transform := range transforms {
		result = transform(result)
	}
	return result
}

// Compose builds a reusable transformation chain.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}

// Trim removes surrounding whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// Fold applies Unicode case folding, so lookups are case-insensitive for
// any script, not just ASCII.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// NormalizeUsername canonicalizes a username for lookup: trimmed and
// case-folded. Two usernames differing only in case resolve to the same
// account.
var NormalizeUsername = Compose(Trim, Fold)
