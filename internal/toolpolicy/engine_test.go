package toolpolicy

import "testing"

func TestGuestDeniesEverything(t *testing.T) {
	e := NewEngine(DefaultConfig())
	res, err := e.Check(CheckRequest{SessionID: "s1", SessionType: SessionGuest, Capability: CapFileRead, ToolName: "fileRead"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Allowed {
		t.Error("guest session must be denied for any capability")
	}
}

func TestDeniedCapabilityCannotBeEscalatedByConfirmation(t *testing.T) {
	e := NewEngine(DefaultConfig())
	res, err := e.Check(CheckRequest{
		SessionID: "s1", SessionType: SessionGuest, Capability: CapFileDelete,
		ToolName: "fileWrite", UserConfirmed: true, ConfirmationID: "whatever",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Allowed {
		t.Error("invariant I5 violated: denied capability escalated via confirmation")
	}
}

func TestMainElevatedRequiresConfirmationForFileDelete(t *testing.T) {
	e := NewEngine(DefaultConfig())
	req := CheckRequest{SessionID: "s1", SessionType: SessionMainElevated, Capability: CapFileDelete, ToolName: "custom-delete"}
	res, err := e.Check(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Allowed || !res.RequiresConfirmation {
		t.Fatalf("expected pending confirmation, got %+v", res)
	}

	req.UserConfirmed = true
	req.ConfirmationID = res.ConfirmationID
	res2, err := e.Check(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res2.Allowed {
		t.Errorf("expected allowed after confirming, got %+v", res2)
	}
}

func TestConfirmationCannotBeConsumedTwice(t *testing.T) {
	gate := NewConfirmationGate(ConfirmationGateConfig{RequireHigh: true})
	pc, err := gate.Create("s1", "bash", `{"command":"rm -rf /"}`, "destructive", Classification{Severity: "high", Matched: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ok, err := gate.Confirm(pc.ID, "s1")
	if err != nil || !ok {
		t.Fatalf("expected first confirm to succeed, ok=%v err=%v", ok, err)
	}
	ok2, err := gate.Confirm(pc.ID, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok2 {
		t.Error("invariant I3 violated: confirmation consumed twice")
	}
}

func TestConfirmationRejectsWrongSession(t *testing.T) {
	gate := NewConfirmationGate(ConfirmationGateConfig{RequireHigh: true})
	pc, _ := gate.Create("s1", "bash", "", "destructive", Classification{Severity: "high", Matched: true})
	ok, err := gate.Confirm(pc.ID, "s2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("confirmation must not be consumable from a different session")
	}
}

func TestClassifyDestructiveBashCommand(t *testing.T) {
	c := Classify("bash", "rm -rf /var/data")
	if !c.Matched || c.Severity != "high" {
		t.Errorf("expected high-severity destructive classification, got %+v", c)
	}
}

func TestClassifyNonBashActionFixedTable(t *testing.T) {
	c := Classify("file-delete", "")
	if !c.Matched || c.Severity != "high" {
		t.Errorf("expected file-delete to classify as high severity, got %+v", c)
	}
	c2 := Classify("session-create", "")
	if !c2.Matched || c2.Severity != "low" {
		t.Errorf("expected session-create to classify as low severity, got %+v", c2)
	}
}

func TestRateLimiterEnforcesPerMinuteBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimits{MaxToolCallsPerMinute: 2, MaxToolCallsPerHour: 100, MaxConcurrentExecs: 10})
	if _, _, err := rl.CheckToolCall("s1"); err != nil {
		t.Fatalf("unexpected error on call 1: %v", err)
	}
	if _, _, err := rl.CheckToolCall("s1"); err != nil {
		t.Fatalf("unexpected error on call 2: %v", err)
	}
	_, _, err := rl.CheckToolCall("s1")
	if err == nil {
		t.Fatal("expected rate limit error on call 3")
	}
	rlErr, ok := err.(*RateLimitError)
	if !ok || rlErr.Kind != RateLimitMinute {
		t.Errorf("expected RateLimitError{Kind: minute}, got %v", err)
	}
}

func TestRateLimiterEnforcesConcurrentCap(t *testing.T) {
	rl := NewRateLimiter(RateLimits{MaxToolCallsPerMinute: 100, MaxToolCallsPerHour: 100, MaxConcurrentExecs: 1})
	if _, _, err := rl.CheckToolCall("s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _, err := rl.CheckToolCall("s1")
	if err == nil {
		t.Fatal("expected concurrent limit error")
	}
	rl.ReleaseConcurrent("s1")
	if _, _, err := rl.CheckToolCall("s1"); err != nil {
		t.Errorf("expected call to succeed after release, got %v", err)
	}
}

func TestRateLimiterCronQuota(t *testing.T) {
	rl := NewRateLimiter(RateLimits{MaxCronJobsPerSession: 1})
	if err := rl.CheckCronQuota("s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := rl.CheckCronQuota("s1")
	if err == nil {
		t.Fatal("expected quota exceeded error")
	}
	if _, ok := err.(*QuotaExceededError); !ok {
		t.Errorf("expected QuotaExceededError, got %v", err)
	}
}

func TestRateLimiterDailyBudget(t *testing.T) {
	rl := NewRateLimiter(RateLimits{MaxDailyTokenBudgetUSD: 1.00})
	if err := rl.CheckBudget("s1", 0.60); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := rl.CheckBudget("s1", 0.60); err == nil {
		t.Fatal("expected budget exceeded error")
	}
}

func TestSchemaRegistryRejectsAdditionalProperties(t *testing.T) {
	r := NewSchemaRegistry()
	vr := r.Validate("bash", `{"command":"ls","unexpected_field":true}`)
	if vr.Valid {
		t.Error("expected validation failure for additionalProperties=false violation")
	}
}

func TestSchemaRegistryPassesValidArgs(t *testing.T) {
	r := NewSchemaRegistry()
	vr := r.Validate("fileRead", `{"path":"/tmp/x.txt"}`)
	if !vr.Valid {
		t.Errorf("expected valid fileRead args to pass, got errors %v", vr.Errors)
	}
}

func TestSchemaRegistryWarnsOnUnregisteredTool(t *testing.T) {
	r := NewSchemaRegistry()
	vr := r.Validate("some-custom-tool", `{"anything":true}`)
	if !vr.Valid {
		t.Error("unregistered tool must pass")
	}
	if len(vr.Warnings) == 0 {
		t.Error("expected a warning for unregistered tool")
	}
}
