// Package patterns holds the immutable regex and lookup-table catalogues
// shared by the inbound sanitizer, outbound redactor, tool policy engine,
// and navigation guard. Every catalogue is compiled once at package init
// and never touched again — callers only ever range over them.
package patterns

import "regexp"

// Severity classifies how dangerous a pattern match is.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	default:
		return "low"
	}
}

// Points returns the risk-score contribution of one match at this severity,
// per spec: high=40, medium=20, low=10.
func (s Severity) Points() int {
	switch s {
	case SeverityHigh:
		return 40
	case SeverityMedium:
		return 20
	default:
		return 10
	}
}

// Entry is one catalogue row: a pre-compiled pattern plus its metadata.
type Entry struct {
	Re             *regexp.Regexp
	Kind           string
	Severity       Severity
	HighConfidence bool
	Description    string
}

func must(expr string, kind string, sev Severity, highConf bool, desc string) Entry {
	return Entry{
		Re:             regexp.MustCompile(expr),
		Kind:           kind,
		Severity:       sev,
		HighConfidence: highConf,
		Description:    desc,
	}
}
