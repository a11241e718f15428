package sanitizer

import (
	"strconv"
	"strings"
	"time"
)

// escapeXML replaces the five XML entities in s. Used for both element
// payloads and attribute values (spec §4.3: "Envelope XML-escapes
// & < > " ' in both payload and attribute values").
func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

type attr struct {
	name  string
	value string
}

func openTag(name string, attrs []attr) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.name)
		b.WriteString(`="`)
		b.WriteString(escapeXML(a.value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return b.String()
}

func selfClosingTag(name string, attrs []attr) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.name)
		b.WriteString(`="`)
		b.WriteString(escapeXML(a.value))
		b.WriteByte('"')
	}
	b.WriteString(" />")
	return b.String()
}

// buildEnvelope wraps payload in an <untrusted-input> frame carrying
// source/timestamp/channel/sender and, when detected, risk-score and
// detected-categories (spec §3, §6 wire-level).
func buildEnvelope(payload, source string, opts Options, det Detection, now time.Time) string {
	attrs := []attr{
		{"source", source},
		{"timestamp", now.UTC().Format(time.RFC3339)},
	}
	if opts.Channel != "" {
		attrs = append(attrs, attr{"channel", opts.Channel})
	}
	if opts.Sender != "" {
		attrs = append(attrs, attr{"sender", opts.Sender})
	}
	if len(det.Matches) > 0 || len(det.Base64Hits) > 0 {
		attrs = append(attrs,
			attr{"risk-score", strconv.Itoa(det.RiskScore)},
			attr{"detected-categories", strings.Join(det.Categories, ",")},
		)
	}

	var b strings.Builder
	b.WriteString(openTag("untrusted-input", attrs))
	b.WriteString(escapeXML(payload))
	b.WriteString("</untrusted-input>")
	return b.String()
}

// buildSecurityWarning prepends a <security-warning> sibling naming the
// detected high-severity categories (spec §4.3 step 5).
func buildSecurityWarning(categories []string) string {
	return selfClosingTag("security-warning", []attr{
		{"categories", strings.Join(categories, ",")},
	})
}

// buildBlockedContent returns the self-closing sentinel emitted instead of
// payload when strict mode blocks high-risk content (spec §4.3 step 5).
func buildBlockedContent(reason string, riskScore int) string {
	return selfClosingTag("blocked-content", []attr{
		{"reason", reason},
		{"risk-score", strconv.Itoa(riskScore)},
	})
}
