package toolpolicy

import "fmt"

// Engine composes the capability matrix, rate limiter, schema validator,
// and confirmation gate with short-circuit ordering (spec §4.5).
type Engine struct {
	matrix       *CapabilityMatrix
	limiter      *RateLimiter
	schemas      *SchemaRegistry
	confirmation *ConfirmationGate
}

// NewEngine wires the four layers from cfg.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		matrix:       NewCapabilityMatrix(),
		limiter:      NewRateLimiter(cfg.RateLimits),
		schemas:      NewSchemaRegistry(),
		confirmation: NewConfirmationGate(cfg.Confirmation),
	}
}

// RegisterSchema exposes the engine's schema registry for custom tools.
func (e *Engine) RegisterSchema(toolName string, schema map[string]any) error {
	return e.schemas.Register(toolName, schema)
}

// ReleaseConcurrent signals that a dispatched call identified by req has
// finished, freeing its concurrent-execution slot.
func (e *Engine) ReleaseConcurrent(sessionID string) {
	e.limiter.ReleaseConcurrent(sessionID)
}

// Confirm consumes a standalone pending confirmation, for callers that
// resolve confirmations out of band from a Check call (e.g. an HTTP
// confirm endpoint).
func (e *Engine) Confirm(confirmationID, sessionID string) (bool, error) {
	return e.confirmation.Confirm(confirmationID, sessionID)
}

// Check runs all four layers in order, short-circuiting on the first
// denial (spec §4.5, §4.5 Policy composition).
func (e *Engine) Check(req CheckRequest) (CheckResult, error) {
	// (a) capability matrix
	decision := e.matrix.Decide(req.SessionType, req.Capability)
	if decision == DecisionDeny {
		return CheckResult{Allowed: false, Reason: fmt.Sprintf("capability %s denied for session type %s", req.Capability, req.SessionType)}, nil
	}

	// (b) rate limiter
	remMin, remHour, err := e.limiter.CheckToolCall(req.SessionID)
	if err != nil {
		return CheckResult{}, err
	}

	if req.Capability == CapCronCreate {
		if err := e.limiter.CheckCronQuota(req.SessionID); err != nil {
			return CheckResult{}, err
		}
	}
	if req.Capability == CapWebhookRegister {
		if err := e.limiter.CheckWebhookQuota(req.SessionID); err != nil {
			return CheckResult{}, err
		}
	}

	// (c) schema validator
	var warnings []string
	if req.ArgumentsJSON != "" {
		vr := e.schemas.Validate(req.ToolName, req.ArgumentsJSON)
		if !vr.Valid {
			return CheckResult{Allowed: false, Reason: joinErrors(vr.Errors), SchemaWarnings: vr.Warnings}, nil
		}
		warnings = vr.Warnings
	}

	// (d) confirmation gate, composed with the matrix's own confirm decision.
	classification := Classify(req.ToolName, req.BashCommand)
	destructiveRequires := e.confirmation.Requires(classification)
	matrixRequires := decision == DecisionConfirm

	requiresConfirmation := matrixRequires || destructiveRequires

	if requiresConfirmation && !req.UserConfirmed {
		reason := classification.Description
		if reason == "" {
			reason = fmt.Sprintf("capability %s requires confirmation for session type %s", req.Capability, req.SessionType)
		}
		pc, err := e.confirmation.Create(req.SessionID, req.ToolName, req.ArgumentsJSON, reason, classification)
		if err != nil {
			return CheckResult{}, err
		}
		return CheckResult{
			Allowed:              false,
			RequiresConfirmation: true,
			ConfirmationID:       pc.ID,
			Reason:               reason,
			SchemaWarnings:       warnings,
			RemainingPerMinute:   remMin,
			RemainingPerHour:     remHour,
		}, nil
	}

	if requiresConfirmation && req.UserConfirmed {
		ok, err := e.confirmation.Confirm(req.ConfirmationID, req.SessionID)
		if err != nil {
			return CheckResult{}, err
		}
		if !ok {
			return CheckResult{Allowed: false, Reason: "confirmation invalid, expired, or already consumed", SchemaWarnings: warnings}, nil
		}
	}

	return CheckResult{
		Allowed:            true,
		SchemaWarnings:     warnings,
		RemainingPerMinute: remMin,
		RemainingPerHour:   remHour,
	}, nil
}

func joinErrors(errs []string) string {
	if len(errs) == 0 {
		return "schema validation failed"
	}
	out := errs[0]
	for _, e := range errs[1:] {
		out += "; " + e
	}
	return out
}
