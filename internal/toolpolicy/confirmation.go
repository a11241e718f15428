package toolpolicy

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/triage-ai/palisade-core/internal/patterns"
)

// ConfirmationGate implements spec §4.5(d): classify an action's severity
// via the destructive-command catalogue, decide whether confirmation is
// required, and track pending confirmations until consumed or expired.
type ConfirmationGate struct {
	cfg ConfirmationGateConfig
	mu  sync.Mutex
	byID map[string]*PendingConfirmation
	now  func() time.Time
}

// NewConfirmationGate constructs a ConfirmationGate with its own map.
func NewConfirmationGate(cfg ConfirmationGateConfig) *ConfirmationGate {
	return &ConfirmationGate{cfg: cfg, byID: map[string]*PendingConfirmation{}, now: time.Now}
}

// Classification is the outcome of classifying an action/command.
type Classification struct {
	Category    string
	Severity    string
	Description string
	Matched     bool
}

// Classify runs the destructive-pattern catalogue over a bash command, or
// looks up the fixed severity table for non-bash actions.
func Classify(action, bashCommand string) Classification {
	if action == "bash" || bashCommand != "" {
		for _, e := range patterns.Destructive {
			if e.Re.MatchString(bashCommand) {
				return Classification{
					Category:    e.Category.String(),
					Severity:    e.Severity.String(),
					Description: e.Description,
					Matched:     true,
				}
			}
		}
		return Classification{}
	}
	if sev, ok := patterns.NonBashSeverity[action]; ok {
		return Classification{Category: "action", Severity: sev.String(), Matched: true}
	}
	return Classification{}
}

// Requires reports whether the gate's severity filter requires confirmation
// for the given classification.
func (g *ConfirmationGate) Requires(c Classification) bool {
	if !c.Matched {
		return false
	}
	switch c.Severity {
	case "high":
		return g.cfg.RequireHigh
	case "medium":
		return g.cfg.RequireMedium
	case "low":
		return g.cfg.RequireLow
	default:
		return false
	}
}

// Create registers a new pending confirmation with an unguessable ID and
// the default 5-minute expiry (spec §4.5(d)).
func (g *ConfirmationGate) Create(sessionID, action, params, reason string, c Classification) (*PendingConfirmation, error) {
	id, err := randomID()
	if err != nil {
		return nil, fmt.Errorf("toolpolicy: generating confirmation id: %w", err)
	}
	now := g.now()
	pc := &PendingConfirmation{
		ID:        id,
		SessionID: sessionID,
		Action:    action,
		Params:    params,
		Reason:    reason,
		Category:  c.Category,
		Severity:  c.Severity,
		CreatedAt: now,
		ExpiresAt: now.Add(defaultConfirmationTTL),
	}
	g.mu.Lock()
	g.byID[id] = pc
	g.mu.Unlock()
	return pc, nil
}

// Confirm consumes a pending confirmation. Succeeds iff the record exists,
// belongs to sessionID, and has not expired (spec §4.5(d), invariant I3).
func (g *ConfirmationGate) Confirm(id, sessionID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	pc, ok := g.byID[id]
	if !ok {
		return false, nil
	}
	if pc.SessionID != sessionID {
		return false, nil
	}
	if g.now().After(pc.ExpiresAt) {
		delete(g.byID, id)
		return false, nil
	}
	delete(g.byID, id)
	return true, nil
}

func randomID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
