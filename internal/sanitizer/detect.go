package sanitizer

import (
	"sort"
	"strings"

	"github.com/triage-ai/palisade-core/internal/entropy"
	"github.com/triage-ai/palisade-core/internal/patterns"
)

// base64TokenMinLen is the minimum whitespace-split token length considered
// for the inbound base64 sweep (spec §4.3 step 2).
const base64TokenMinLen = 40

// Detect scans content against the injection catalogue and the base64
// secret detector, accumulating a risk score (spec §3, §4.2).
func Detect(content string) Detection {
	var d Detection
	categorySet := make(map[string]bool)

	for _, e := range patterns.Injection {
		loc := e.Re.FindStringIndex(content)
		if loc == nil {
			continue
		}
		d.Matches = append(d.Matches, Match{
			Kind:     e.Kind,
			Span:     content[loc[0]:loc[1]],
			Severity: e.Severity.Points(),
		})
		d.RiskScore += e.Severity.Points()
		if e.Severity == patterns.SeverityHigh {
			categorySet[e.Kind] = true
		}
	}

	if patterns.ContainsHomoglyph(content) {
		d.Matches = append(d.Matches, Match{Kind: "homoglyph", Severity: patterns.SeverityMedium.Points()})
		d.RiskScore += patterns.SeverityMedium.Points()
		categorySet["homoglyph"] = true
	}
	if patterns.ContainsDangerousRune(content) {
		d.Matches = append(d.Matches, Match{Kind: "unicode-obfuscation", Severity: patterns.SeverityMedium.Points()})
		d.RiskScore += patterns.SeverityMedium.Points()
		categorySet["unicode-obfuscation"] = true
	}

	for _, tok := range strings.Fields(content) {
		if len(tok) < base64TokenMinLen {
			continue
		}
		hits := entropy.FindBase64Secrets(tok, entropy.DefaultThreshold, entropy.DefaultMinLength)
		for _, h := range hits {
			d.Base64Hits = append(d.Base64Hits, h.Span)
			reinjected := false
			for _, e := range patterns.Injection {
				if e.Re.MatchString(h.Decoded) {
					reinjected = true
					break
				}
			}
			if reinjected {
				d.RiskScore += 30
				categorySet["base64-injection"] = true
			}
		}
	}

	if d.RiskScore > 100 {
		d.RiskScore = 100
	}
	for k := range categorySet {
		d.Categories = append(d.Categories, k)
	}
	sort.Strings(d.Categories)
	return d
}
