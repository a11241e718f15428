package patterns

// DangerousRunes lists zero-width and bidi-override codepoints used to
// hide or reorder injected instructions (spec §4.1).
var DangerousRunes = []rune{
	'\u202e', // RIGHT-TO-LEFT OVERRIDE
	'\u200b', // ZERO WIDTH SPACE
	'\u200c', // ZERO WIDTH NON-JOINER
	'\u200d', // ZERO WIDTH JOINER
	'\u2060', // WORD JOINER
	'\ufeff', // BYTE ORDER MARK / ZERO WIDTH NO-BREAK SPACE
}

// LineSeparators are Unicode line/paragraph separators normalized to "\n"
// during sanitizer normalization (spec §4.3 step 3).
var LineSeparators = []rune{
	'\u2028', // LINE SEPARATOR
	'\u2029', // PARAGRAPH SEPARATOR
}

// ContainsDangerousRune reports whether s contains any unicode-obfuscation
// codepoint. Detection must run on the raw, un-normalized input (spec §9:
// "perform detection first on raw input, normalization after").
func ContainsDangerousRune(s string) bool {
	for _, r := range s {
		for _, d := range DangerousRunes {
			if r == d {
				return true
			}
		}
	}
	return false
}

// StripDangerousRunes removes zero-width and bidi-override codepoints from s.
func StripDangerousRunes(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		dangerous := false
		for _, d := range DangerousRunes {
			if r == d {
				dangerous = true
				break
			}
		}
		if !dangerous {
			out = append(out, r)
		}
	}
	return string(out)
}

// NormalizeLineSeparators maps U+2028/U+2029 to "\n".
func NormalizeLineSeparators(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		mapped := r
		for _, ls := range LineSeparators {
			if r == ls {
				mapped = '\n'
				break
			}
		}
		out = append(out, mapped)
	}
	return string(out)
}
