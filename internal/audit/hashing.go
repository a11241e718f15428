package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// argsHash returns SHA-256 hex of the JSON encoding of args. encoding/json
// sorts map keys lexicographically, giving the deterministic ordering spec
// §3 requires. Empty/nil args hash as sha256("{}").
func argsHash(args map[string]any) string {
	if len(args) == 0 {
		return hashString("{}")
	}
	b, err := json.Marshal(args)
	if err != nil {
		return hashString("{}")
	}
	return hashString(string(b))
}

func hashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// chainHash computes SHA-256 over the pipe-joined canonical fields of an
// event, per spec §4.10 step 2.
func chainHash(e Event) string {
	fields := []string{
		e.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"),
		e.EventID,
		e.SessionID,
		e.Channel,
		e.ToolName,
		e.ArgsHash,
		string(e.Outcome),
		e.PreviousHash,
	}
	return hashString(strings.Join(fields, "|"))
}

func inferSeverity(p LogParams) Severity {
	switch {
	case p.Outcome == OutcomeError:
		return SeverityError
	case p.Outcome == OutcomeBlocked:
		return SeverityWarning
	case p.HighRiskTool:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}
