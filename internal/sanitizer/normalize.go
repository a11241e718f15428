package sanitizer

import (
	"regexp"
	"strings"

	"github.com/triage-ai/palisade-core/internal/patterns"
)

var (
	runOfSpacesTabs = regexp.MustCompile(`[ \t]{2,}`)
	threeOrMoreNL   = regexp.MustCompile(`\n{3,}`)
)

// Normalize implements spec §4.3 step 3: strip dangerous unicode, fold
// line/paragraph separators to "\n", collapse runs of spaces/tabs, cap
// consecutive newlines at two, and trim.
func Normalize(content string, stripUnicode bool) string {
	out := content
	if stripUnicode {
		out = patterns.StripDangerousRunes(out)
	}
	out = patterns.NormalizeLineSeparators(out)
	out = runOfSpacesTabs.ReplaceAllString(out, " ")
	out = threeOrMoreNL.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
