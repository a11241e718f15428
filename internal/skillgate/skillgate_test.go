package skillgate

import (
	"testing"
	"time"
)

func TestRequestApprovalAutoInstallApprovesImmediately(t *testing.T) {
	g := New(DefaultConfig())
	a, err := g.RequestApproval(Request{SkillID: "s1", AutoInstall: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusApproved {
		t.Errorf("expected approved, got %s", a.Status)
	}
}

func TestRequestApprovalEnqueuesPending(t *testing.T) {
	g := New(DefaultConfig())
	a, err := g.RequestApproval(Request{SkillID: "s1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusPending {
		t.Errorf("expected pending, got %s", a.Status)
	}
}

func TestRequestApprovalEnforcesMaxPending(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPendingApprovals = 1
	g := New(cfg)
	if _, err := g.RequestApproval(Request{SkillID: "s1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := g.RequestApproval(Request{SkillID: "s2"})
	if err == nil {
		t.Fatal("expected max-pending error")
	}
	if ie, ok := err.(*InstallError); !ok || ie.Code != MaxPendingExceeded {
		t.Errorf("expected MaxPendingExceeded, got %v", err)
	}
}

func TestApproveOnlyActsOnPending(t *testing.T) {
	g := New(DefaultConfig())
	g.RequestApproval(Request{SkillID: "s1"})
	if _, err := g.Approve("s1", "owner", "looks fine"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := g.Approve("s1", "owner", "again")
	if err == nil {
		t.Fatal("expected invalid-status error on second approve")
	}
	if ie, ok := err.(*InstallError); !ok || ie.Code != InvalidStatus {
		t.Errorf("expected InvalidStatus, got %v", err)
	}
}

func TestDenyOnlyActsOnPending(t *testing.T) {
	g := New(DefaultConfig())
	g.RequestApproval(Request{SkillID: "s1"})
	if _, err := g.Deny("s1", "owner", "suspicious"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _ := g.Get("s1")
	if a.Status != StatusDenied {
		t.Errorf("expected denied, got %s", a.Status)
	}
}

func TestApproveUnknownSkillReturnsNotFound(t *testing.T) {
	g := New(DefaultConfig())
	_, err := g.Approve("missing", "owner", "")
	if ie, ok := err.(*InstallError); !ok || ie.Code != NotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestPendingExpiresLazilyOnAccess(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApprovalExpirationMs = 1
	g := New(cfg)
	fake := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return fake }
	g.RequestApproval(Request{SkillID: "s1"})
	g.now = func() time.Time { return fake.Add(time.Hour) }

	a, ok := g.Get("s1")
	if !ok {
		t.Fatal("expected record to exist")
	}
	if a.Status != StatusExpired {
		t.Errorf("expected expired, got %s", a.Status)
	}

	_, err := g.Approve("s1", "owner", "")
	if err == nil {
		t.Fatal("expected error approving an expired request")
	}
}

func TestVerifyContentSHA256(t *testing.T) {
	content := []byte("skill payload")
	hash, err := hashContent(content, AlgoSHA256)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ok, err := VerifyContent(content, hash, AlgoSHA256, true)
	if err != nil || !ok {
		t.Errorf("expected content to verify, got ok=%v err=%v", ok, err)
	}
}

func TestVerifyContentRejectsMismatch(t *testing.T) {
	ok, err := VerifyContent([]byte("payload"), "deadbeef", AlgoSHA256, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected mismatched hash to fail verification")
	}
}

func TestVerifyContentSkipsCheckWhenDisabled(t *testing.T) {
	ok, err := VerifyContent([]byte("payload"), "not-even-hex", AlgoSHA256, false)
	if err != nil || !ok {
		t.Errorf("expected verify_hashes=false to always pass, got ok=%v err=%v", ok, err)
	}
}

func TestVerifyContentSupportsSHA384AndSHA512(t *testing.T) {
	content := []byte("payload")
	for _, algo := range []HashAlgorithm{AlgoSHA384, AlgoSHA512} {
		hash, err := hashContent(content, algo)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", algo, err)
		}
		ok, err := VerifyContent(content, hash, algo, true)
		if err != nil || !ok {
			t.Errorf("expected %s content to verify, got ok=%v err=%v", algo, ok, err)
		}
	}
}

func TestSRIRoundTrip(t *testing.T) {
	content := []byte("skill payload")
	sri, err := CreateSRIHash(content, AlgoSHA256)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	algo, hexHash, err := ParseSRI(sri)
	if err != nil {
		t.Fatalf("unexpected error parsing SRI: %v", err)
	}
	if algo != AlgoSHA256 {
		t.Errorf("expected sha256, got %s", algo)
	}
	ok, err := VerifyContent(content, hexHash, algo, true)
	if err != nil || !ok {
		t.Errorf("expected SRI round trip to verify, got ok=%v err=%v", ok, err)
	}
}

func TestParseSRIRejectsMalformed(t *testing.T) {
	if _, _, err := ParseSRI("no-dash-separator-missing"); err == nil {
		t.Error("expected unsupported algorithm prefix to error")
	}
	if _, _, err := ParseSRI("unknownalgo-QQ=="); err == nil {
		t.Error("expected unsupported algorithm to error")
	}
}

func TestVerifyAndInstallRecordsRegistryEntry(t *testing.T) {
	g := New(DefaultConfig())
	content := []byte("skill payload")
	hash, _ := hashContent(content, AlgoSHA256)

	ok, err := g.VerifyAndInstall("s1", content, hash, "1.0.0")
	if err != nil || !ok {
		t.Fatalf("expected install to succeed, got ok=%v err=%v", ok, err)
	}
	if !g.Registry().IsInstalled("s1") {
		t.Error("expected s1 to be installed")
	}
	skill, ok := g.Registry().GetInstalledSkill("s1")
	if !ok || skill.Version != "1.0.0" || skill.Hash != hash {
		t.Errorf("unexpected installed skill record: %+v", skill)
	}
}

func TestVerifyAndInstallRejectsBadHash(t *testing.T) {
	g := New(DefaultConfig())
	ok, err := g.VerifyAndInstall("s1", []byte("payload"), "deadbeef", "1.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected install to fail on hash mismatch")
	}
	if g.Registry().IsInstalled("s1") {
		t.Error("expected s1 to not be installed after failed verification")
	}
}
