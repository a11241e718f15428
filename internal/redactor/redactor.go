package redactor

import (
	"strings"

	"github.com/triage-ai/palisade-core/internal/entropy"
	"github.com/triage-ai/palisade-core/internal/patterns"
)

// Redactor runs the outbound secret-redaction pipeline (spec §4.4).
type Redactor struct {
	cfg Config
}

// New constructs a Redactor.
func New(cfg Config) *Redactor {
	return &Redactor{cfg: cfg}
}

// Redact applies the pattern, base64, and entropy sweeps in sequence.
// Each stage only sees the residual text left by the previous stage, so a
// span already replaced with a placeholder can never be re-matched.
func (r *Redactor) Redact(text string) Result {
	res := Result{
		Text:         text,
		CountsByKind: map[string]int{},
	}

	res.Text = r.patternSweep(res.Text, &res)
	if r.cfg.DetectBase64 {
		res.Text = r.base64Sweep(res.Text, &res)
	}
	if r.cfg.DetectEntropy {
		res.Text = r.entropySweep(res.Text, &res)
	}

	res.Modified = len(res.Events) > 0
	return res
}

func (r *Redactor) placeholder(kind string) string {
	return strings.ReplaceAll(r.cfg.PlaceholderTmpl, "{TYPE}", kind)
}

func (r *Redactor) isWhitelisted(match string) bool {
	for _, w := range r.cfg.Whitelist {
		if match == w {
			return true
		}
	}
	return false
}

func (r *Redactor) patternSweep(text string, res *Result) string {
	out := text
	for _, e := range patterns.Secrets {
		if r.cfg.StrictPatterns && !e.HighConfidence {
			continue
		}
		matches := uniqueMatches(e.Re.FindAllString(out, -1))
		for _, m := range matches {
			if r.isWhitelisted(m) {
				continue
			}
			out = strings.ReplaceAll(out, m, r.placeholder(e.Kind))
			res.CountsByKind[e.Kind]++
			res.Events = append(res.Events, Event{Kind: e.Kind, Method: MethodPattern, Preview: buildPreview(m)})
		}
	}
	return out
}

func (r *Redactor) base64Sweep(text string, res *Result) string {
	out := text
	findings := entropy.FindBase64Secrets(out, r.cfg.EntropyThreshold, r.cfg.MinEntropyLength)
	seen := make(map[string]bool)
	for _, f := range findings {
		if seen[f.Span] || r.isWhitelisted(f.Span) {
			continue
		}
		seen[f.Span] = true
		out = strings.ReplaceAll(out, f.Span, r.placeholder("BASE64_SECRET"))
		res.CountsByKind["BASE64_SECRET"]++
		res.Events = append(res.Events, Event{Kind: "BASE64_SECRET", Method: MethodBase64, Preview: buildPreview(f.Span)})
	}
	return out
}

func (r *Redactor) entropySweep(text string, res *Result) string {
	out := text
	seen := make(map[string]bool)
	for _, c := range entropy.FindCandidates(out) {
		if seen[c] || r.isWhitelisted(c) {
			continue
		}
		seen[c] = true
		if !entropy.IsHighEntropy(c, r.cfg.EntropyThreshold, r.cfg.MinEntropyLength) {
			continue
		}
		if !looksLikeSecret(c) {
			continue
		}
		out = strings.ReplaceAll(out, c, r.placeholder("HIGH_ENTROPY"))
		res.CountsByKind["HIGH_ENTROPY"]++
		res.Events = append(res.Events, Event{Kind: "HIGH_ENTROPY", Method: MethodEntropy, Preview: buildPreview(c)})
	}
	return out
}

func uniqueMatches(matches []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
