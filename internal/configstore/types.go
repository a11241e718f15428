// Package configstore is the multi-tenant registry of calling
// applications and their per-application configuration overrides,
// backed by Postgres via pgx.
package configstore

import (
	"encoding/json"
	"time"
)

// Application is a row in the applications table: one calling host's
// identity and its bcrypt-hashed API key.
type Application struct {
	ID          string
	Name        string
	APIKeyHash  string
	APIKeyPrefix string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ConfigOverride holds one application's detector/policy overrides,
// stored as JSONB and unmarshaled into the component Config structs by
// the caller.
type ConfigOverride struct {
	ApplicationID    string
	PromptSanitizer  json.RawMessage
	OutputRedaction  json.RawMessage
	ToolPolicy       json.RawMessage
	BrowserGuard     json.RawMessage
	Webhook          json.RawMessage
	Session          json.RawMessage
	SkillGate        json.RawMessage
	Audit            json.RawMessage
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UpdateOverrideParams holds optional fields for a partial config update.
// Only non-nil fields are changed.
type UpdateOverrideParams struct {
	PromptSanitizer *json.RawMessage
	OutputRedaction *json.RawMessage
	ToolPolicy      *json.RawMessage
	BrowserGuard    *json.RawMessage
	Webhook         *json.RawMessage
	Session         *json.RawMessage
	SkillGate       *json.RawMessage
	Audit           *json.RawMessage
}
