package patterns

// DangerousProtocols are URL schemes the navigation guard always rejects
// (spec §4.6 step 2).
var DangerousProtocols = map[string]bool{
	"javascript": true,
	"data":       true,
	"vbscript":   true,
	"file":       true,
	"ftp":        true,
}

// AllowedProtocols are schemes the navigation guard accepts outright
// (subject to later catalogue checks); "about" bypasses everything after
// the protocol gate per spec §4.6 step 2 and §9's Open Question.
var AllowedProtocols = map[string]bool{
	"http":  true,
	"https": true,
	"about": true,
}

// MetadataHosts are link-local cloud metadata endpoints (spec §4.6 step 4).
var MetadataHosts = map[string]bool{
	"169.254.169.254":        true, // AWS / Azure / DigitalOcean / Oracle
	"metadata.google.internal": true, // GCP
	"100.100.100.200":        true, // Alibaba Cloud
	"kubernetes.default":     true,
}

// PrivateCIDRs are RFC-1918 / loopback / CGN / link-local ranges rejected
// by the navigation guard (spec §4.6 step 5).
var PrivateCIDRs = []string{
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"127.0.0.0/8",
	"0.0.0.0/32",
	"169.254.0.0/16",
	"100.64.0.0/10", // carrier-grade NAT
	"fe80::/10",
	"::1/128",
}

// PrivateHostnames are hostname-form loopback aliases the guard also rejects.
var PrivateHostnames = map[string]bool{
	"localhost": true,
}
