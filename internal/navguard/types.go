// Package navguard implements the outbound navigation guard: URL parse,
// protocol gate, homograph check, metadata/private-network blocking,
// domain allow/blocklist, and per-session navigation rate limiting.
package navguard

import "fmt"

// BlockedNavigationError is raised when a URL is rejected by any check
// stage (spec §4.6, §7).
type BlockedNavigationError struct {
	Category string
	Reason   string
}

func (e *BlockedNavigationError) Error() string {
	return fmt.Sprintf("navigation blocked (%s): %s", e.Category, e.Reason)
}

// NavigationRateLimitError is raised when a session exceeds its
// navigations-per-minute/hour budget (spec §4.6 step 7).
type NavigationRateLimitError struct {
	RetryAfterMs int64
}

func (e *NavigationRateLimitError) Error() string {
	return fmt.Sprintf("navigation rate limit exceeded, retry after %dms", e.RetryAfterMs)
}

// Config holds the browser_guard settings (spec §6).
type Config struct {
	MaxNavigationsPerMinute int
	MaxNavigationsPerHour   int
	MaxRedirectChainLength  int
	AllowDataURLs           bool
	BlockHomographAttacks   bool
	DomainAllowlist         []string
	DomainBlocklist         []string
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxNavigationsPerMinute: 30,
		MaxNavigationsPerHour:   300,
		MaxRedirectChainLength:  10,
		AllowDataURLs:           false,
		BlockHomographAttacks:   true,
	}
}
