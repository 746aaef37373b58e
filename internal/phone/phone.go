// Package phone normalizes raw phone input into the canonical,
// plus-prefixed form used as an identity key everywhere else in the system.
// Normalization is pure and must run at every boundary that accepts a phone
// number: no raw phone string may reach persistence unnormalized.
package phone

import (
	"errors"
	"regexp"
	"strings"
)

// DefaultCountryCode is prepended to bare 10-digit national numbers.
const DefaultCountryCode = "91"

// ErrInvalidPhone is returned when the input cannot be classified as a
// valid phone number. Normalization failure is a hard validation error,
// never a silent pass-through.
var ErrInvalidPhone = errors.New("invalid phone number")

var nonDigitRE = regexp.MustCompile(`\D`)

// Normalize canonicalizes a raw phone string.
//
// Accepted shapes, after stripping every non-digit character:
//   - 10 digits: assumed national, prefixed with the default country code
//   - 12 digits starting with the default country code
//   - more than 10 digits when the raw input carried a leading "+"
//
// Two representations of the same number normalize identically; anything
// else fails with ErrInvalidPhone.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	hadPlus := strings.HasPrefix(trimmed, "+")
	digits := nonDigitRE.ReplaceAllString(trimmed, "")

	switch {
	case len(digits) == 10:
		return "+" + DefaultCountryCode + digits, nil
	case len(digits) == 12 && strings.HasPrefix(digits, DefaultCountryCode):
		return "+" + digits, nil
	case hadPlus && len(digits) > 10:
		return "+" + digits, nil
	}
	return "", ErrInvalidPhone
}

// IsCanonical reports whether s is already in the canonical form produced
// by Normalize. Useful as a cheap assertion at internal boundaries.
func IsCanonical(s string) bool {
	n, err := Normalize(s)
	return err == nil && n == s
}
