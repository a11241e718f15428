package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/triage-ai/palisade-core/internal/sanitizer"
)

// Logger builds and ships audit events, serializing hash-chain linkage
// under a single mutex (spec §5: "log be serialized with respect to the
// previous_hash read-modify-write step").
type Logger struct {
	cfg     Config
	shipper Shipper

	mu           sync.Mutex
	lastHash     string
	eventHistory []Event // in-memory chain, for verify_chain and for
	// preserving ordering even when shipping fails (spec §7).
	now func() time.Time
}

// NewLogger constructs a Logger backed by shipper.
func NewLogger(cfg Config, shipper Shipper) *Logger {
	return &Logger{
		cfg:     cfg,
		shipper: shipper,
		now:     time.Now,
	}
}

// Log builds an event from p, computes its hash-chain linkage if enabled,
// hands it to the shipper, and returns its event_id (spec §4.10).
func (l *Logger) Log(p LogParams) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := uuid.New().String()
	e := Event{
		Timestamp:    l.now().UTC(),
		EventID:      id,
		SessionID:    p.SessionID,
		Channel:      p.Channel,
		ToolName:     p.ToolName,
		ArgsHash:     argsHash(p.Args),
		Outcome:      p.Outcome,
		Severity:     inferSeverity(p),
		UserID:       p.UserID,
		Metadata:     p.Metadata,
		DurationMs:   p.DurationMs,
		ErrorMessage: p.ErrorMessage,
	}

	if l.cfg.HashChain {
		e.PreviousHash = l.lastHash
		l.lastHash = chainHash(e)
	}

	// The event is appended to the in-memory chain before shipping so
	// ordering survives a shipper failure (spec §7).
	l.eventHistory = append(l.eventHistory, e)

	if !l.cfg.Enabled {
		return id, nil
	}

	return id, l.shipper.Ship(e)
}

// LogSanitizeEvent adapts a sanitizer.Event into a LogParams call, letting
// *Logger satisfy sanitizer.EventLogger.
func (l *Logger) LogSanitizeEvent(e sanitizer.Event) {
	outcome := OutcomeSuccess
	if e.Action.String() == "blocked" {
		outcome = OutcomeBlocked
	}
	_, _ = l.Log(LogParams{
		SessionID: e.Source,
		Channel:   "sanitizer",
		ToolName:  "prompt_sanitizer",
		Outcome:   outcome,
		Metadata: map[string]any{
			"categories":      e.Categories,
			"risk_score":      e.RiskScore,
			"content_length":  e.ContentLength,
			"original_prefix": e.OriginalPrefix,
		},
	})
}

// Flush forces the shipper to deliver buffered events.
func (l *Logger) Flush() error {
	return l.shipper.Flush()
}

// Close flushes and releases the shipper.
func (l *Logger) Close() error {
	return l.shipper.Close()
}

// Events returns a snapshot of every event logged so far, in order.
func (l *Logger) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.eventHistory))
	copy(out, l.eventHistory)
	return out
}

// VerifyChain replays the chain-hash computation over events and reports
// where (if anywhere) it breaks (spec §4.10).
func VerifyChain(events []Event) VerifyResult {
	if len(events) == 0 {
		return VerifyResult{Valid: true, BrokenAtIndex: -1}
	}

	var prev string
	for i, e := range events {
		if i > 0 && e.PreviousHash != prev {
			return VerifyResult{
				Valid:          false,
				EventsVerified: i,
				BrokenAtIndex:  i,
				Error:          "previous_hash does not match prior event's computed hash",
			}
		}
		prev = chainHash(e)
	}

	return VerifyResult{Valid: true, EventsVerified: len(events), BrokenAtIndex: -1}
}
