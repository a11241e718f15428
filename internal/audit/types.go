// Package audit implements the structured audit event log: deterministic
// argument hashing, an optional hash chain over successive events, and a
// pluggable shipper (file, console, buffered, ClickHouse).
package audit

import "time"

// Outcome is the result of the policy decision an event records.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeBlocked Outcome = "blocked"
	OutcomeError   Outcome = "error"
)

// Severity is the inferred severity of an event.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Event is one audit log entry (spec §3 Audit event).
type Event struct {
	Timestamp    time.Time
	EventID      string
	SessionID    string
	Channel      string
	ToolName     string
	ArgsHash     string
	Outcome      Outcome
	Severity     Severity
	UserID       string
	PreviousHash string
	Metadata     map[string]any
	DurationMs   int64
	ErrorMessage string
}

// LogParams is the input to Logger.Log.
type LogParams struct {
	SessionID    string
	Channel      string
	ToolName     string
	Args         map[string]any
	Outcome      Outcome
	UserID       string
	Metadata     map[string]any
	DurationMs   int64
	ErrorMessage string
	HighRiskTool bool
}

// Config holds the audit-logger settings (spec §6).
type Config struct {
	Enabled    bool
	HashChain  bool
	BatchSize  int
	FlushMs    int64
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		HashChain: true,
		BatchSize: 10,
		FlushMs:   5000,
	}
}

// VerifyResult is returned by VerifyChain.
type VerifyResult struct {
	Valid          bool
	EventsVerified int
	BrokenAtIndex  int
	Error          string
}
