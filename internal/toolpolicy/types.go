// Package toolpolicy implements the four-layer tool policy engine:
// capability matrix, sliding-window rate limiter, JSON-Schema argument
// validator, and confirmation gate, composed with short-circuit ordering.
package toolpolicy

import "time"

// SessionType classifies the caller for capability-matrix lookups.
type SessionType string

const (
	SessionMainElevated SessionType = "main-elevated"
	SessionMainStandard SessionType = "main-standard"
	SessionSandbox      SessionType = "sandbox"
	SessionWebhook      SessionType = "webhook"
	SessionCron         SessionType = "cron"
	SessionAPI          SessionType = "api"
	SessionGuest        SessionType = "guest"
)

// Decision is a capability-matrix cell value.
type Decision string

const (
	DecisionAllow   Decision = "allow"
	DecisionConfirm Decision = "confirm"
	DecisionDeny    Decision = "deny"
)

// Capability names one of the checkable actions in the matrix.
type Capability string

const (
	CapShellUnrestricted Capability = "shell:unrestricted"
	CapShellSandboxed    Capability = "shell:sandboxed"
	CapShellReadOnly     Capability = "shell:read-only"
	CapBrowserCDP        Capability = "browser:cdp"
	CapBrowserScreenshot Capability = "browser:screenshot"
	CapBrowserNavigate   Capability = "browser:navigate"
	CapFileRead          Capability = "file:read"
	CapFileWrite         Capability = "file:write"
	CapFileDelete        Capability = "file:delete"
	CapCodeCanvasEval    Capability = "code:canvas-eval"
	CapCodeNodeInvoke    Capability = "code:node-invoke"
	CapSessionSend       Capability = "session:send"
	CapSessionHistoryOwn Capability = "session:history-own"
	CapSessionHistoryAll Capability = "session:history-other"
	CapSessionCreate     Capability = "session:create"
	CapCronCreate        Capability = "cron:create"
	CapCronDelete        Capability = "cron:delete"
	CapCronList          Capability = "cron:list"
	CapWebhookRegister   Capability = "webhook:register"
	CapWebhookDelete     Capability = "webhook:delete"
	CapSkillInstall      Capability = "skill:install"
	CapSkillExecute      Capability = "skill:execute"
	CapConfigRead        Capability = "config:read"
	CapConfigWrite       Capability = "config:write"
)

// RateLimitKind names which counter a RateLimitError refers to.
type RateLimitKind string

const (
	RateLimitMinute      RateLimitKind = "minute"
	RateLimitHourly      RateLimitKind = "hourly"
	RateLimitConcurrent  RateLimitKind = "concurrent"
)

// QuotaResource names which fixed quota a QuotaExceededError refers to.
type QuotaResource string

const (
	QuotaCron    QuotaResource = "cron"
	QuotaWebhook QuotaResource = "webhook"
	QuotaBudget  QuotaResource = "budget"
)

// RateLimits configures the C5 rate-limiter layer (spec §6 tool_policy.rate_limits).
type RateLimits struct {
	MaxToolCallsPerMinute int
	MaxToolCallsPerHour   int
	MaxConcurrentExecs    int
	MaxDailyTokenBudgetUSD float64
	MaxCronJobsPerSession int
	MaxWebhooksPerSession int
	WindowSizeMs          int64
}

// ConfirmationGateConfig configures the C5 confirmation-gate layer
// (spec §6 tool_policy.confirmation_gate).
type ConfirmationGateConfig struct {
	TimeoutMs    int64
	RequireHigh  bool
	RequireMedium bool
	RequireLow   bool
}

// Config bundles the C5 engine's settings.
type Config struct {
	RateLimits   RateLimits
	Confirmation ConfirmationGateConfig
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		RateLimits: RateLimits{
			MaxToolCallsPerMinute:  20,
			MaxToolCallsPerHour:    100,
			MaxConcurrentExecs:     5,
			MaxDailyTokenBudgetUSD: 5.00,
			MaxCronJobsPerSession:  10,
			MaxWebhooksPerSession:  5,
			WindowSizeMs:           3_600_000,
		},
		Confirmation: ConfirmationGateConfig{
			TimeoutMs:     300_000,
			RequireHigh:   true,
			RequireMedium: true,
			RequireLow:    false,
		},
	}
}

// CheckRequest is one tool-dispatch check (spec §4.5).
type CheckRequest struct {
	SessionID     string
	SessionType   SessionType
	Capability    Capability
	ToolName      string
	ArgumentsJSON string
	BashCommand   string // set only when ToolName == "bash"
	UserConfirmed bool
	ConfirmationID string
}

// CheckResult is the composed outcome of all four layers (spec §4.5 Policy composition).
type CheckResult struct {
	Allowed              bool
	RequiresConfirmation bool
	ConfirmationID       string
	Reason               string
	SchemaWarnings       []string
	RemainingPerMinute   int
	RemainingPerHour     int
}

// PendingConfirmation is one outstanding destructive-action confirmation
// (spec §3 Pending confirmation).
type PendingConfirmation struct {
	ID        string
	SessionID string
	Action    string
	Params    string
	Reason    string
	Category  string
	Severity  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

const defaultConfirmationTTL = 5 * time.Minute
