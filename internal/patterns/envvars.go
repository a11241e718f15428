package patterns

import "regexp"

// EnvAllowlist names environment variables considered safe to forward to a
// sandboxed subprocess (spec §6 build_safe_env).
var EnvAllowlist = map[string]bool{
	"PATH":     true,
	"HOME":     true,
	"LANG":     true,
	"TZ":       true,
	"TMPDIR":   true,
	"DISPLAY":  true,
	"NODE_ENV": true,
}

// EnvAllowPrefixes matches locale and XDG variable families.
var EnvAllowPrefixes = []string{"LC_", "XDG_"}

// EnvBlocklist matches environment variable names that must never be
// forwarded, regardless of allowlist membership (spec §6).
var EnvBlocklist = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^ANTHROPIC_`),
	regexp.MustCompile(`(?i)^AWS_`),
	regexp.MustCompile(`(?i)^DATABASE_`),
	regexp.MustCompile(`(?i)^REDIS_`),
	regexp.MustCompile(`(?i)^STRIPE_`),
	regexp.MustCompile(`(?i)^DOCKER_`),
	regexp.MustCompile(`(?i)^VAULT_`),
	regexp.MustCompile(`(?i)SECRET`),
	regexp.MustCompile(`(?i)TOKEN`),
	regexp.MustCompile(`(?i)PASSWORD`),
	regexp.MustCompile(`(?i)CREDENTIAL`),
	regexp.MustCompile(`(?i)KEY`),
	regexp.MustCompile(`(?i)AUTH`),
	regexp.MustCompile(`(?i)BEARER`),
}
