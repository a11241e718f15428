package redactor

import (
	"regexp"
	"strings"
)

var (
	shortPrefixRe = regexp.MustCompile(`^[a-z]{2,4}[-_]`)
	akiaShapeRe   = regexp.MustCompile(`^AKIA[0-9A-Z]{16}`)
)

var secretIndicatorSubstrings = []string{"key", "token", "secret", "password", "credential"}

// charClasses counts how many of {upper, lower, digit, symbol} appear in s.
func charClasses(s string) int {
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	n := 0
	for _, b := range []bool{upper, lower, digit, symbol} {
		if b {
			n++
		}
	}
	return n
}

// looksLikeSecret implements the spec §4.4 step 3 secret-likeness filter:
// at least 2 character classes, AND one of (short prefix shape, a secret
// indicator substring, AKIA shape, or long-enough with >=3 classes).
func looksLikeSecret(s string) bool {
	classes := charClasses(s)
	if classes < 2 {
		return false
	}

	lower := strings.ToLower(s)
	if shortPrefixRe.MatchString(lower) {
		return true
	}
	for _, sub := range secretIndicatorSubstrings {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	if akiaShapeRe.MatchString(s) {
		return true
	}
	if len(s) >= 24 && classes >= 3 {
		return true
	}
	return false
}
