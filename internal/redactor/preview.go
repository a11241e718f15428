package redactor

import "fmt"

// previewHalfLen is N in "first/last N chars with length in the middle".
const previewHalfLen = 4

// buildPreview renders a secret-safe preview: first/last previewHalfLen
// characters with the total length in between, never the full value
// (spec §4.4: "Log previews show first/last N chars with length in the
// middle; never full value").
func buildPreview(s string) string {
	r := []rune(s)
	n := len(r)
	if n <= previewHalfLen*2 {
		return fmt.Sprintf("***(%d chars)***", n)
	}
	return fmt.Sprintf("%s...(%d chars)...%s", string(r[:previewHalfLen]), n, string(r[n-previewHalfLen:]))
}
