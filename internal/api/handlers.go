package api

import (
	"net/http"

	"github.com/triage-ai/palisade-core/internal/audit"
	"github.com/triage-ai/palisade-core/internal/sanitizer"
	"github.com/triage-ai/palisade-core/internal/sessions"
	"github.com/triage-ai/palisade-core/internal/skillgate"
	"github.com/triage-ai/palisade-core/internal/toolpolicy"
	"github.com/triage-ai/palisade-core/internal/webhookauth"
)

func (d *Dependencies) handleSanitize(w http.ResponseWriter, r *http.Request) {
	var req SanitizeReq
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Detail: "invalid request body"})
		return
	}

	res := d.Sanitizer.Sanitize(req.Content, req.SourceTag, sanitizer.Options{Channel: req.Channel, Sender: req.Sender})
	writeJSON(w, http.StatusOK, SanitizeResp{
		WrappedText:  res.WrappedText,
		OriginalHash: res.OriginalHash,
		Detected:     res.Detected,
		HighRisk:     res.HighRisk,
		Action:       res.Action.String(),
		Categories:   res.Detection.Categories,
		RiskScore:    res.Detection.RiskScore,
	})
}

func (d *Dependencies) handleRedact(w http.ResponseWriter, r *http.Request) {
	var req RedactReq
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Detail: "invalid request body"})
		return
	}

	res := d.Redactor.Redact(req.Text)
	writeJSON(w, http.StatusOK, RedactResp{
		Text:         res.Text,
		Modified:     res.Modified,
		CountsByKind: res.CountsByKind,
	})
}

func (d *Dependencies) handleToolCheck(w http.ResponseWriter, r *http.Request) {
	var req ToolCheckReq
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Detail: "invalid request body"})
		return
	}

	if req.NavigationURL != "" {
		if err := d.NavGuard.CheckNavigation(req.SessionID, req.NavigationURL); err != nil {
			d.logAuditOutcome(r, req.SessionID, req.ToolName, audit.OutcomeBlocked, err.Error())
			writeJSON(w, http.StatusOK, ToolCheckResp{Allowed: false, NavigationBlocked: true, NavigationReason: err.Error()})
			return
		}
		d.NavGuard.RecordNavigation(req.SessionID)
	}

	checkReq := toolpolicy.CheckRequest{
		SessionID:      req.SessionID,
		SessionType:    toolpolicy.SessionType(req.SessionType),
		Capability:     toolpolicy.Capability(req.Capability),
		ToolName:       req.ToolName,
		ArgumentsJSON:  req.ArgumentsJSON,
		BashCommand:    req.BashCommand,
		UserConfirmed:  req.UserConfirmed,
		ConfirmationID: req.ConfirmationID,
	}

	res, err := d.ToolPolicy.Check(checkReq)
	outcome := audit.OutcomeSuccess
	if !res.Allowed {
		outcome = audit.OutcomeBlocked
	}
	if err != nil {
		outcome = audit.OutcomeError
	}
	d.logAuditOutcome(r, req.SessionID, req.ToolName, outcome, errString(err))

	writeJSON(w, http.StatusOK, ToolCheckResp{
		Allowed:              res.Allowed,
		RequiresConfirmation: res.RequiresConfirmation,
		ConfirmationID:       res.ConfirmationID,
		SchemaWarnings:       res.SchemaWarnings,
		Reason:               res.Reason,
		RemainingPerMinute:   res.RemainingPerMinute,
		RemainingPerHour:     res.RemainingPerHour,
	})
}

func (d *Dependencies) handleConfirm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req ConfirmReq
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Detail: "invalid request body"})
		return
	}

	ok, err := d.ToolPolicy.Confirm(id, req.SessionID)
	if err != nil || !ok {
		writeJSON(w, http.StatusConflict, ErrorResp{Detail: "confirmation could not be consumed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"confirmed": true})
}

func (d *Dependencies) handleWebhookVerify(w http.ResponseWriter, r *http.Request) {
	var req WebhookVerifyReq
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Detail: "invalid request body"})
		return
	}

	res := webhookauth.Verify([]byte(req.Payload), req.SignatureHeader, req.Secret, d.WebhookConfig.Algorithm)
	ipAllowed := true
	if req.SourceIP != "" {
		ipAllowed = d.WebhookAllowlist.Check(req.SourceIP)
	}
	writeJSON(w, http.StatusOK, WebhookVerifyResp{
		Valid:     res.Valid && ipAllowed,
		Algorithm: string(res.Algorithm),
		Reason:    res.Reason,
		IPAllowed: ipAllowed,
	})
}

func (d *Dependencies) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionReq
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Detail: "invalid request body"})
		return
	}

	token, err := d.Sessions.Create(req.UserID, sessions.CreateOptions{
		TTLHours:    req.TTLHours,
		ClientIP:    req.ClientIP,
		SessionType: req.SessionType,
		Data:        req.Data,
	})
	if err != nil {
		writeJSON(w, http.StatusTooManyRequests, ErrorResp{Detail: err.Error()})
		return
	}

	res := d.Sessions.Validate(token, "")
	resp := CreateSessionResp{Token: token}
	if res.Metadata != nil {
		resp.ExpiresAt = res.Metadata.ExpiresAt
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (d *Dependencies) handleValidateSession(w http.ResponseWriter, r *http.Request) {
	var req ValidateSessionReq
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Detail: "invalid request body"})
		return
	}

	res := d.Sessions.Validate(req.Token, req.ClientIP)
	resp := ValidateSessionResp{Valid: res.Valid, Reason: res.Reason}
	if res.Metadata != nil {
		resp.UserID = res.Metadata.UserID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (d *Dependencies) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	d.Sessions.Invalidate(token)
	writeJSON(w, http.StatusNoContent, nil)
}

func (d *Dependencies) handleSkillApprove(w http.ResponseWriter, r *http.Request) {
	d.decideSkill(w, r, true)
}

func (d *Dependencies) handleSkillDeny(w http.ResponseWriter, r *http.Request) {
	d.decideSkill(w, r, false)
}

func (d *Dependencies) decideSkill(w http.ResponseWriter, r *http.Request, approve bool) {
	id := r.PathValue("id")
	var req SkillApprovalReq
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Detail: "invalid request body"})
		return
	}

	var a *skillgate.Approval
	var err error
	if approve {
		a, err = d.SkillGate.Approve(id, req.By, req.Reason)
	} else {
		a, err = d.SkillGate.Deny(id, req.By, req.Reason)
	}
	if err != nil {
		writeJSON(w, http.StatusConflict, ErrorResp{Detail: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, toSkillApprovalResp(a))
}

func (d *Dependencies) handleGetSkill(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	a, ok := d.SkillGate.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResp{Detail: "no approval record for that skill"})
		return
	}
	writeJSON(w, http.StatusOK, toSkillApprovalResp(a))
}

func toSkillApprovalResp(a *skillgate.Approval) SkillApprovalResp {
	return SkillApprovalResp{
		SkillID:     a.SkillID,
		Status:      string(a.Status),
		RequestedAt: a.RequestedAt,
		DecidedAt:   a.DecidedAt,
		DecidedBy:   a.DecidedBy,
		Reason:      a.Reason,
	}
}

func (d *Dependencies) handleAuditEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, d.Audit.Events())
}

func (d *Dependencies) handleAuditVerify(w http.ResponseWriter, r *http.Request) {
	res := audit.VerifyChain(d.Audit.Events())
	writeJSON(w, http.StatusOK, AuditVerifyResp{
		Valid:          res.Valid,
		EventsVerified: res.EventsVerified,
		BrokenAtIndex:  res.BrokenAtIndex,
		Error:          res.Error,
	})
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// logAuditOutcome records a policy decision, attributing it to the
// authenticated calling application when present.
func (d *Dependencies) logAuditOutcome(r *http.Request, sessionID, toolName string, outcome audit.Outcome, errMsg string) {
	if d.Audit == nil {
		return
	}
	userID := ""
	if appCtx := appFromContext(r.Context()); appCtx != nil {
		userID = appCtx.ApplicationID
	}
	d.Audit.Log(audit.LogParams{
		SessionID:    sessionID,
		Channel:      "api",
		ToolName:     toolName,
		Outcome:      outcome,
		UserID:       userID,
		ErrorMessage: errMsg,
	})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
