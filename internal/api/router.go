package api

import "net/http"

// NewRouter wires every guard endpoint onto a ServeMux using Go 1.22+
// method-pattern routes, the same idiom the teacher's router.go uses.
func NewRouter(d *Dependencies) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealthz)

	mux.HandleFunc("POST /v1/sanitize", d.authMiddleware(d.handleSanitize))
	mux.HandleFunc("POST /v1/redact", d.authMiddleware(d.handleRedact))
	mux.HandleFunc("POST /v1/tool-check", d.authMiddleware(d.handleToolCheck))
	mux.HandleFunc("POST /v1/confirmations/{id}/confirm", d.authMiddleware(d.handleConfirm))
	mux.HandleFunc("POST /v1/webhooks/verify", d.authMiddleware(d.handleWebhookVerify))

	mux.HandleFunc("POST /v1/sessions", d.authMiddleware(d.handleCreateSession))
	mux.HandleFunc("POST /v1/sessions/validate", d.authMiddleware(d.handleValidateSession))
	mux.HandleFunc("DELETE /v1/sessions/{token}", d.authMiddleware(d.handleDeleteSession))

	mux.HandleFunc("POST /v1/skills/{id}/approve", d.authMiddleware(d.handleSkillApprove))
	mux.HandleFunc("POST /v1/skills/{id}/deny", d.authMiddleware(d.handleSkillDeny))
	mux.HandleFunc("GET /v1/skills/{id}", d.authMiddleware(d.handleGetSkill))

	mux.HandleFunc("GET /v1/audit/events", d.authMiddleware(d.handleAuditEvents))
	mux.HandleFunc("GET /v1/audit/verify", d.authMiddleware(d.handleAuditVerify))

	return corsMiddleware(requestLogging(mux, d.Logger))
}
