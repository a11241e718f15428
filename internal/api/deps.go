package api

import (
	"github.com/triage-ai/palisade-core/internal/audit"
	"github.com/triage-ai/palisade-core/internal/configstore"
	"github.com/triage-ai/palisade-core/internal/navguard"
	"github.com/triage-ai/palisade-core/internal/redactor"
	"github.com/triage-ai/palisade-core/internal/sanitizer"
	"github.com/triage-ai/palisade-core/internal/sessions"
	"github.com/triage-ai/palisade-core/internal/skillgate"
	"github.com/triage-ai/palisade-core/internal/toolpolicy"
	"github.com/triage-ai/palisade-core/internal/webhookauth"
	"go.uber.org/zap"
)

// Dependencies holds every component the HTTP surface dispatches to, wired
// once at startup and shared across requests (mirrors the teacher's
// router Dependencies struct in guard/internal/api).
type Dependencies struct {
	Sanitizer *sanitizer.Sanitizer
	Redactor  *redactor.MonitoredRedactor
	ToolPolicy *toolpolicy.Engine
	NavGuard  *navguard.Guard

	WebhookConfig    webhookauth.Config
	WebhookAllowlist *webhookauth.Allowlist

	Sessions  *sessions.Store
	SkillGate *skillgate.Gate
	Audit     *audit.Logger

	// Authenticator is nil in single-tenant deployments; authMiddleware
	// falls through unauthenticated when unset.
	Authenticator *configstore.Authenticator

	Logger *zap.Logger
}
