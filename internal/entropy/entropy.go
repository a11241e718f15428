// Package entropy implements the Shannon-entropy and base64 heuristics
// used by the inbound sanitizer and outbound redactor to flag
// high-entropy substrings as likely secrets (spec §4.2).
package entropy

import (
	"math"
	"regexp"
	"strings"
)

const (
	// DefaultThreshold is the default Shannon-entropy cutoff (spec §4.2).
	DefaultThreshold = 4.5
	// DefaultMinLength is the minimum candidate length considered (spec §4.2).
	DefaultMinLength = 16
	// MaxCandidateLength caps how much of a candidate token is scanned,
	// bounding the cost of decode-and-rescan (spec §9).
	MaxCandidateLength = 512
)

var (
	candidateRe = regexp.MustCompile(`[A-Za-z0-9+/=_-]{16,}`)
	base64Re    = regexp.MustCompile(`[A-Za-z0-9+/]{24,}={0,2}`)
	hexRe       = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	digitsRe    = regexp.MustCompile(`^[0-9]+$`)
	mimeRe      = regexp.MustCompile(`^[a-zA-Z]+/[a-zA-Z0-9.+-]+$`)

	// secretIndicatorPrefixes are substring prefixes that mark a decoded
	// base64 payload as secret-shaped (spec §4.2).
	secretIndicatorPrefixes = []string{"sk-", "ghp_", "AKIA", "xoxb-"}
)

// Shannon computes the Shannon entropy H(s) = -Σ p(c)·log2 p(c) over the
// byte distribution of s.
func Shannon(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	counts := make(map[rune]int)
	total := 0
	for _, r := range s {
		counts[r]++
		total++
	}
	var h float64
	for _, c := range counts {
		p := float64(c) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}

// secretAlphabetRatio returns the fraction of s made up of characters in
// the base64/hex-ish "secret alphabet" (letters, digits, +/=_-).
func secretAlphabetRatio(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	n := 0
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '+', r == '/', r == '=', r == '_', r == '-':
			n++
		}
	}
	return float64(n) / float64(len(s))
}

// IsHighEntropy reports whether s looks like a high-entropy secret:
// length >= minLen, non-secret-alphabet characters under 30%, and filtered
// Shannon entropy >= threshold (spec §4.2).
func IsHighEntropy(s string, threshold float64, minLen int) bool {
	if len(s) < minLen {
		return false
	}
	if secretAlphabetRatio(s) < 0.70 {
		return false
	}
	return Shannon(s) >= threshold
}

// FindCandidates tokenizes s into base64/hex-alphabet runs of at least 16
// characters, capped at MaxCandidateLength, excluding tokens that are
// structurally unlikely to be secrets (spec §4.2).
func FindCandidates(s string) []string {
	raw := candidateRe.FindAllString(s, -1)
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		if len(c) > MaxCandidateLength {
			c = c[:MaxCandidateLength]
		}
		if isRejectedCandidate(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// isRejectedCandidate implements the exclusion rules from spec §4.2:
// one-character, short repeating patterns (period 1..4), >=70% monotone
// sequential codepoints, pure-hex, pure-digits, or MIME-type-shaped.
func isRejectedCandidate(s string) bool {
	if len(s) <= 1 {
		return true
	}
	if hasShortRepeatingPeriod(s) {
		return true
	}
	if isMonotoneSequential(s) {
		return true
	}
	if hexRe.MatchString(s) {
		return true
	}
	if digitsRe.MatchString(s) {
		return true
	}
	if mimeRe.MatchString(s) {
		return true
	}
	return false
}

func hasShortRepeatingPeriod(s string) bool {
	n := len(s)
	for period := 1; period <= 4; period++ {
		if n%period != 0 || n/period < 2 {
			continue
		}
		repeating := true
		for i := period; i < n; i++ {
			if s[i] != s[i%period] {
				repeating = false
				break
			}
		}
		if repeating {
			return true
		}
	}
	return false
}

func isMonotoneSequential(s string) bool {
	if len(s) < 2 {
		return false
	}
	seq := 0
	for i := 1; i < len(s); i++ {
		diff := int(s[i]) - int(s[i-1])
		if diff == 1 || diff == -1 {
			seq++
		}
	}
	return float64(seq)/float64(len(s)-1) >= 0.70
}

// Base64Finding describes a decoded base64 candidate that looks secret-like.
type Base64Finding struct {
	Span    string
	Decoded string
}

// FindBase64Secrets scans s for base64-shaped runs, decodes each as UTF-8
// printable text, and flags it as a finding if the decoded text either
// passes IsHighEntropy or contains a known secret-indicator prefix
// (spec §4.2).
func FindBase64Secrets(s string, threshold float64, minLen int) []Base64Finding {
	matches := base64Re.FindAllString(s, -1)
	var findings []Base64Finding
	seen := make(map[string]bool)
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		decoded, ok := decodeBase64Printable(m)
		if !ok {
			continue
		}
		if IsHighEntropy(decoded, threshold, minLen) || hasSecretIndicatorPrefix(decoded) {
			findings = append(findings, Base64Finding{Span: m, Decoded: decoded})
		}
	}
	return findings
}

func hasSecretIndicatorPrefix(decoded string) bool {
	for _, p := range secretIndicatorPrefixes {
		if strings.Contains(decoded, p) {
			return true
		}
	}
	return false
}
