package navguard

import (
	"net"
	"net/url"
	"strings"

	"github.com/triage-ai/palisade-core/internal/patterns"
)

func checkProtocol(u *url.URL) error {
	scheme := strings.ToLower(u.Scheme)
	if scheme == "about" {
		return nil
	}
	if patterns.DangerousProtocols[scheme] {
		return &BlockedNavigationError{Category: "protocol", Reason: "dangerous protocol: " + scheme}
	}
	if !patterns.AllowedProtocols[scheme] {
		return &BlockedNavigationError{Category: "protocol", Reason: "unrecognized protocol: " + scheme}
	}
	return nil
}

// checkHomograph scans the raw hostname substring straight out of the
// original URL text (not the normalized/punycode form, which would hide
// confusables) for homoglyph confusables (spec §4.6 step 3).
func checkHomograph(rawURL string) error {
	host := extractRawHost(rawURL)
	if patterns.ContainsHomoglyph(host) {
		return &BlockedNavigationError{Category: "homograph", Reason: "hostname contains confusable characters: " + host}
	}
	return nil
}

// extractRawHost pulls the authority's hostname out of the original URL
// text by string slicing, deliberately avoiding url.Parse's normalization.
func extractRawHost(rawURL string) string {
	rest := rawURL
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		rest = rest[i+1:]
	}
	if strings.HasPrefix(rest, "[") {
		if i := strings.Index(rest, "]"); i >= 0 {
			return rest[1:i]
		}
	}
	if i := strings.LastIndex(rest, ":"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

func checkMetadata(host string) error {
	if patterns.MetadataHosts[strings.ToLower(host)] {
		return &BlockedNavigationError{Category: "cloud-metadata", Reason: "link-local metadata endpoint: " + host}
	}
	return nil
}

func checkPrivateNetwork(host string) error {
	lower := strings.ToLower(host)
	if patterns.PrivateHostnames[lower] {
		return &BlockedNavigationError{Category: "private-network", Reason: "private hostname: " + host}
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return nil // hostname, not a literal IP; DNS resolution is out of scope
	}
	for _, cidr := range patterns.PrivateCIDRs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			continue
		}
		if network.Contains(ip) {
			return &BlockedNavigationError{Category: "private-network", Reason: "private-network address: " + host}
		}
	}
	return nil
}

// matchesWildcardList reports whether host equals, or (for "*."-prefixed
// entries) is a subdomain of, any entry in list.
func matchesWildcardList(host string, list []string) bool {
	host = strings.ToLower(host)
	for _, entry := range list {
		entry = strings.ToLower(entry)
		if strings.HasPrefix(entry, "*.") {
			suffix := entry[1:] // ".example.com"
			if host == entry[2:] || strings.HasSuffix(host, suffix) {
				return true
			}
			continue
		}
		if host == entry {
			return true
		}
	}
	return false
}

func checkAllowBlockList(host string, allowlist, blocklist []string) error {
	if len(allowlist) > 0 && !matchesWildcardList(host, allowlist) {
		return &BlockedNavigationError{Category: "allowlist", Reason: "host not in domain allowlist: " + host}
	}
	if matchesWildcardList(host, blocklist) {
		return &BlockedNavigationError{Category: "blocklist", Reason: "host in domain blocklist: " + host}
	}
	return nil
}
