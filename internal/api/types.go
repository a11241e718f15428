// Package api exposes the guard components over HTTP/JSON, mirroring the
// teacher's net/http ServeMux router and middleware idioms.
package api

import "time"

// SanitizeReq is the JSON body for POST /v1/sanitize.
type SanitizeReq struct {
	Content   string `json:"content"`
	SourceTag string `json:"source_tag"`
	Channel   string `json:"channel,omitempty"`
	Sender    string `json:"sender,omitempty"`
}

// SanitizeResp mirrors sanitizer.Result.
type SanitizeResp struct {
	WrappedText  string   `json:"wrapped_text"`
	OriginalHash string   `json:"original_hash"`
	Detected     bool     `json:"detected"`
	HighRisk     bool     `json:"high_risk"`
	Action       string   `json:"action"`
	Categories   []string `json:"categories,omitempty"`
	RiskScore    int      `json:"risk_score"`
}

// RedactReq is the JSON body for POST /v1/redact.
type RedactReq struct {
	Text string `json:"text"`
}

// RedactResp mirrors redactor.Result.
type RedactResp struct {
	Text         string         `json:"text"`
	Modified     bool           `json:"modified"`
	CountsByKind map[string]int `json:"counts_by_kind,omitempty"`
}

// ToolCheckReq is the JSON body for POST /v1/tool-check.
type ToolCheckReq struct {
	SessionID      string  `json:"session_id"`
	SessionType    string  `json:"session_type"`
	Capability     string  `json:"capability"`
	ToolName       string  `json:"tool_name,omitempty"`
	ArgumentsJSON  string  `json:"arguments_json,omitempty"`
	BashCommand    string  `json:"bash_command,omitempty"`
	UserConfirmed  bool    `json:"user_confirmed,omitempty"`
	ConfirmationID string  `json:"confirmation_id,omitempty"`
	NavigationURL  string  `json:"navigation_url,omitempty"`
}

// ToolCheckResp mirrors toolpolicy.CheckResult plus an optional
// navigation-guard verdict.
type ToolCheckResp struct {
	Allowed              bool     `json:"allowed"`
	RequiresConfirmation bool     `json:"requires_confirmation"`
	ConfirmationID       string   `json:"confirmation_id,omitempty"`
	SchemaWarnings       []string `json:"schema_warnings,omitempty"`
	Reason               string   `json:"reason,omitempty"`
	RemainingPerMinute   int      `json:"remaining_per_minute,omitempty"`
	RemainingPerHour     int      `json:"remaining_per_hour,omitempty"`
	NavigationBlocked    bool     `json:"navigation_blocked,omitempty"`
	NavigationReason     string   `json:"navigation_reason,omitempty"`
}

// ConfirmReq is the JSON body for POST /v1/confirmations/{id}/confirm.
type ConfirmReq struct {
	SessionID string `json:"session_id"`
}

// WebhookVerifyReq is the JSON body for POST /v1/webhooks/verify.
type WebhookVerifyReq struct {
	Payload         string `json:"payload"`
	SignatureHeader string `json:"signature_header"`
	Secret          string `json:"secret"`
	SourceIP        string `json:"source_ip,omitempty"`
}

// WebhookVerifyResp mirrors webhookauth.VerifyResult plus allowlist check.
type WebhookVerifyResp struct {
	Valid          bool   `json:"valid"`
	Algorithm      string `json:"algorithm,omitempty"`
	Reason         string `json:"reason,omitempty"`
	IPAllowed      bool   `json:"ip_allowed"`
}

// CreateSessionReq is the JSON body for POST /v1/sessions.
type CreateSessionReq struct {
	UserID      string            `json:"user_id"`
	TTLHours    float64           `json:"ttl_hours,omitempty"`
	ClientIP    string            `json:"client_ip,omitempty"`
	SessionType string            `json:"session_type,omitempty"`
	Data        map[string]string `json:"data,omitempty"`
}

// CreateSessionResp carries the raw token — the only time it appears.
type CreateSessionResp struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ValidateSessionReq is the JSON body for POST /v1/sessions/validate.
type ValidateSessionReq struct {
	Token    string `json:"token"`
	ClientIP string `json:"client_ip,omitempty"`
}

// ValidateSessionResp mirrors sessions.ValidateResult.
type ValidateSessionResp struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"user_id,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// SkillApprovalReq is the JSON body for POST /v1/skills/{id}/approve|deny.
type SkillApprovalReq struct {
	By     string `json:"by"`
	Reason string `json:"reason,omitempty"`
}

// SkillApprovalResp mirrors skillgate.Approval.
type SkillApprovalResp struct {
	SkillID     string     `json:"skill_id"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
	DecidedBy   string     `json:"decided_by,omitempty"`
	Reason      string     `json:"reason,omitempty"`
}

// AuditVerifyResp mirrors audit.VerifyResult.
type AuditVerifyResp struct {
	Valid          bool   `json:"valid"`
	EventsVerified int    `json:"events_verified"`
	BrokenAtIndex  int    `json:"broken_at_index"`
	Error          string `json:"error,omitempty"`
}

// ErrorResp is a standard error response body.
type ErrorResp struct {
	Detail string `json:"detail"`
}
