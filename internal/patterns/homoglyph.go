package patterns

// HomoglyphConfusables maps a non-ASCII codepoint to the ASCII Latin
// lookalike it impersonates in a hostname (spec §4.6 step 3 / §4.1). This
// is explicitly a defense-in-depth, ASCII-lookalike list — not a general
// IDN normalizer (spec §9).
var HomoglyphConfusables = map[rune]rune{
	// Cyrillic
	'а': 'a',
	'е': 'e',
	'о': 'o',
	'р': 'p',
	'с': 'c',
	'х': 'x',
	'у': 'y',
	'і': 'i',
	'ј': 'j',
	'һ': 'h',
	// Greek
	'α': 'a',
	'ε': 'e',
	'ο': 'o',
	'ρ': 'p',
	'τ': 't',
	'ν': 'v',
	// Latin lookalikes
	'ɡ': 'g',
	'ɯ': 'w',
	'ɑ': 'a',
}

// ContainsHomoglyph reports whether s (a raw, un-normalized hostname)
// contains any confusable codepoint.
func ContainsHomoglyph(s string) bool {
	for _, r := range s {
		if _, ok := HomoglyphConfusables[r]; ok {
			return true
		}
	}
	return false
}
