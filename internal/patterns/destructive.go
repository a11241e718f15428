package patterns

import "regexp"

// DestructiveCategory classifies a destructive-command pattern per spec §4.5(d).
type DestructiveCategory int

const (
	CategoryDestructive DestructiveCategory = iota
	CategoryPrivileged
	CategoryExternal
	CategoryFinancial
	CategorySecurity
	CategoryConfiguration
)

// String returns the lowercase category name.
func (c DestructiveCategory) String() string {
	switch c {
	case CategoryPrivileged:
		return "privileged"
	case CategoryExternal:
		return "external"
	case CategoryFinancial:
		return "financial"
	case CategorySecurity:
		return "security"
	case CategoryConfiguration:
		return "configuration"
	default:
		return "destructive"
	}
}

// DestructiveEntry is one row of the destructive-command catalogue.
type DestructiveEntry struct {
	Re          *regexp.Regexp
	Category    DestructiveCategory
	Severity    Severity
	Description string
}

// Destructive holds the bash-command classification catalogue from spec §4.5(d).
var Destructive = []DestructiveEntry{
	{regexp.MustCompile(`(?i)\brm\s+-[a-z]*r[a-z]*f\b|\brm\s+-[a-z]*f[a-z]*r\b`), CategoryDestructive, SeverityHigh, "recursive forced delete"},
	{regexp.MustCompile(`(?i)\bmkfs(\.\w+)?\b`), CategoryDestructive, SeverityHigh, "filesystem format"},
	{regexp.MustCompile(`(?i)\bdd\s+if=`), CategoryDestructive, SeverityHigh, "raw disk write (dd)"},
	{regexp.MustCompile(`(?i)\bgit\s+push\s+(.*\s)?--force\b`), CategoryDestructive, SeverityMedium, "force push"},
	{regexp.MustCompile(`(?i)\bgit\s+reset\s+--hard\b`), CategoryDestructive, SeverityMedium, "hard reset"},
	{regexp.MustCompile(`(?i)\bDROP\s+TABLE\b`), CategoryDestructive, SeverityHigh, "SQL DROP TABLE"},
	{regexp.MustCompile(`(?i)\bTRUNCATE\b`), CategoryDestructive, SeverityHigh, "SQL TRUNCATE"},
	{regexp.MustCompile(`(?i)\bsudo\b`), CategoryPrivileged, SeverityMedium, "privilege escalation via sudo"},
	{regexp.MustCompile(`(?i)\bchmod\s+(777|\+s)\b`), CategoryPrivileged, SeverityMedium, "overly permissive chmod"},
	{regexp.MustCompile(`(?i)\bkill\s+-9\b`), CategoryPrivileged, SeverityMedium, "SIGKILL process"},
	{regexp.MustCompile(`(?i)>\s*/etc/`), CategoryConfiguration, SeverityHigh, "redirection into /etc/"},
	{regexp.MustCompile(`(?i)\bcurl\b.*\|\s*(bash|sh)\b`), CategoryExternal, SeverityHigh, "pipe remote script to shell"},
	{regexp.MustCompile(`(?i)\bwget\b.*\|\s*(bash|sh)\b`), CategoryExternal, SeverityHigh, "pipe remote script to shell"},
}

// NonBashSeverity is the fixed severity table for non-bash actions (spec §4.5(d)).
var NonBashSeverity = map[string]Severity{
	"file-delete":        SeverityHigh,
	"session-create":     SeverityLow,
	"cron-create":        SeverityMedium,
	"webhook-register":   SeverityMedium,
	"config-write":       SeverityMedium,
	"skill-install":      SeverityHigh,
}
