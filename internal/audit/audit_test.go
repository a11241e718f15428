package audit

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type memShipper struct {
	mu     sync.Mutex
	events []Event
	failOn string
}

func (m *memShipper) Ship(e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != "" && e.ToolName == m.failOn {
		return errors.New("simulated shipper failure")
	}
	m.events = append(m.events, e)
	return nil
}
func (m *memShipper) Flush() error { return nil }
func (m *memShipper) Close() error { return nil }

func (m *memShipper) snapshot() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

func TestArgsHashIsDeterministicRegardlessOfKeyOrder(t *testing.T) {
	a := argsHash(map[string]any{"b": 1, "a": 2})
	b := argsHash(map[string]any{"a": 2, "b": 1})
	if a != b {
		t.Errorf("expected identical hash regardless of map iteration order, got %s vs %s", a, b)
	}
}

func TestArgsHashEmptyIsHashOfEmptyObject(t *testing.T) {
	got := argsHash(nil)
	want := hashString("{}")
	if got != want {
		t.Errorf("expected empty args to hash as sha256(\"{}\"), got %s want %s", got, want)
	}
}

func TestLogBuildsChainedEvents(t *testing.T) {
	shipper := &memShipper{}
	l := NewLogger(DefaultConfig(), shipper)

	id1, err := l.Log(LogParams{SessionID: "s1", ToolName: "bash", Outcome: OutcomeSuccess})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id2, err := l.Log(LogParams{SessionID: "s1", ToolName: "fileRead", Outcome: OutcomeBlocked})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id1 == id2 {
		t.Error("expected distinct event IDs")
	}

	events := shipper.snapshot()
	if len(events) != 2 {
		t.Fatalf("expected 2 shipped events, got %d", len(events))
	}
	if events[0].PreviousHash != "" {
		t.Errorf("expected first event to have empty previous_hash, got %q", events[0].PreviousHash)
	}
	if events[1].PreviousHash != chainHash(events[0]) {
		t.Error("expected second event's previous_hash to equal first event's computed chain hash")
	}
	if events[1].Severity != SeverityWarning {
		t.Errorf("expected blocked outcome to infer warning severity, got %s", events[1].Severity)
	}
}

func TestVerifyChainDetectsTamperedEvent(t *testing.T) {
	shipper := &memShipper{}
	l := NewLogger(DefaultConfig(), shipper)
	l.Log(LogParams{SessionID: "s1", ToolName: "bash", Outcome: OutcomeSuccess})
	l.Log(LogParams{SessionID: "s1", ToolName: "fileRead", Outcome: OutcomeSuccess})
	l.Log(LogParams{SessionID: "s1", ToolName: "fileWrite", Outcome: OutcomeSuccess})

	events := l.Events()
	res := VerifyChain(events)
	if !res.Valid || res.EventsVerified != 3 {
		t.Fatalf("expected a valid 3-event chain, got %+v", res)
	}

	events[1].ToolName = "tampered"
	res = VerifyChain(events)
	if res.Valid {
		t.Error("expected tampering to break the chain")
	}
	if res.BrokenAtIndex != 2 {
		t.Errorf("expected break detected at index 2 (next event's previous_hash mismatch), got %d", res.BrokenAtIndex)
	}
}

func TestVerifyChainEmptyIsValid(t *testing.T) {
	res := VerifyChain(nil)
	if !res.Valid {
		t.Error("expected empty input to be valid")
	}
	if res.BrokenAtIndex != -1 {
		t.Errorf("expected broken_at_index -1 for a valid chain, got %d", res.BrokenAtIndex)
	}
}

func TestLogPreservesOrderingEvenWhenShipperFails(t *testing.T) {
	shipper := &memShipper{failOn: "bash"}
	l := NewLogger(DefaultConfig(), shipper)

	_, err := l.Log(LogParams{SessionID: "s1", ToolName: "bash", Outcome: OutcomeSuccess})
	if err == nil {
		t.Fatal("expected shipper error to propagate")
	}
	_, err = l.Log(LogParams{SessionID: "s1", ToolName: "fileRead", Outcome: OutcomeSuccess})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := l.Events()
	if len(events) != 2 {
		t.Fatalf("expected both events retained in memory despite shipper failure, got %d", len(events))
	}
	res := VerifyChain(events)
	if !res.Valid {
		t.Error("expected in-memory chain to remain unbroken despite a shipper failure")
	}
}

func TestInferSeverityErrorOutcomeWins(t *testing.T) {
	got := inferSeverity(LogParams{Outcome: OutcomeError, HighRiskTool: true})
	if got != SeverityError {
		t.Errorf("expected error outcome to take priority, got %s", got)
	}
}

func TestBufferedShipperFlushesOnBatchSize(t *testing.T) {
	inner := &memShipper{}
	buf := NewBufferedShipper(inner, 2, time.Hour)
	defer buf.Close()

	buf.Ship(Event{EventID: "1", ToolName: "bash"})
	buf.Ship(Event{EventID: "2", ToolName: "bash"})

	deadline := time.Now().Add(time.Second)
	for len(inner.snapshot()) < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := len(inner.snapshot()); got != 2 {
		t.Errorf("expected 2 events flushed on batch size, got %d", got)
	}
}

func TestBufferedShipperDrainsOnClose(t *testing.T) {
	inner := &memShipper{}
	buf := NewBufferedShipper(inner, 100, time.Hour)

	buf.Ship(Event{EventID: "1", ToolName: "bash"})
	if err := buf.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(inner.snapshot()); got != 1 {
		t.Errorf("expected buffered event drained on close, got %d", got)
	}
}
