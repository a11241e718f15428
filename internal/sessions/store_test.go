package sessions

import "testing"

func TestCreateReturnsUsableToken(t *testing.T) {
	s := New(DefaultConfig())
	token, err := s.Create("user-1", CreateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(token) < 64 {
		t.Errorf("expected hex-encoded >=32-byte token, got length %d", len(token))
	}
	res := s.Validate(token, "")
	if !res.Valid {
		t.Fatalf("expected freshly created token to validate, reason=%q", res.Reason)
	}
	if res.Metadata.UserID != "user-1" {
		t.Errorf("expected user-1, got %q", res.Metadata.UserID)
	}
}

func TestCreateEnforcesMaxTokensPerUser(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTokensPerUser = 2
	s := New(cfg)
	if _, err := s.Create("user-1", CreateOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Create("user-1", CreateOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := s.Create("user-1", CreateOptions{})
	if err == nil {
		t.Fatal("expected max-tokens-per-user error")
	}
	if te, ok := err.(*TokenError); !ok || te.Code != MaxTokensPerUserExceeded {
		t.Errorf("expected TokenError{MaxTokensPerUserExceeded}, got %v", err)
	}
}

func TestTTLClampedToMax(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTTLHours = 1
	s := New(cfg)
	token, err := s.Create("user-1", CreateOptions{TTLHours: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := s.Validate(token, "")
	if !res.Valid {
		t.Fatal("expected token to validate")
	}
	if res.Metadata.ExpiresAt.Sub(res.Metadata.CreatedAt).Hours() > 1.001 {
		t.Errorf("expected TTL clamped to 1h, got %v", res.Metadata.ExpiresAt.Sub(res.Metadata.CreatedAt))
	}
}

func TestValidateRejectsUnknownToken(t *testing.T) {
	s := New(DefaultConfig())
	res := s.Validate("not-a-real-token", "")
	if res.Valid {
		t.Error("expected unknown token to be rejected")
	}
}

func TestInvalidateRemovesToken(t *testing.T) {
	s := New(DefaultConfig())
	token, _ := s.Create("user-1", CreateOptions{})
	s.Invalidate(token)
	res := s.Validate(token, "")
	if res.Valid {
		t.Error("expected invalidated token to fail validation")
	}
}

func TestInvalidateAllRemovesEveryUserToken(t *testing.T) {
	s := New(DefaultConfig())
	t1, _ := s.Create("user-1", CreateOptions{})
	t2, _ := s.Create("user-1", CreateOptions{})
	s.InvalidateAll("user-1")
	if s.Validate(t1, "").Valid || s.Validate(t2, "").Valid {
		t.Error("expected all tokens for user-1 to be invalidated")
	}
	// invariant I6: per-user token count must be zero after invalidate_all,
	// so a fresh create must succeed even at a low cap.
	cfg := DefaultConfig()
	cfg.MaxTokensPerUser = 1
	s2 := New(cfg)
	tok, _ := s2.Create("user-1", CreateOptions{})
	s2.InvalidateAll("user-1")
	if _, err := s2.Create("user-1", CreateOptions{}); err != nil {
		t.Errorf("expected create to succeed after invalidate_all, got %v", err)
	}
	_ = tok
}

func TestBindToClientIPRejectsMismatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BindToClientIP = true
	s := New(cfg)
	token, err := s.Create("user-1", CreateOptions{ClientIP: "10.0.0.1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res := s.Validate(token, "10.0.0.1"); !res.Valid {
		t.Error("expected matching IP to validate")
	}
	token2, _ := s.Create("user-1", CreateOptions{ClientIP: "10.0.0.1"})
	if res := s.Validate(token2, "10.0.0.2"); res.Valid {
		t.Error("expected mismatched IP to invalidate the session")
	}
}

func TestRawTokenNeverStoredInPlaintext(t *testing.T) {
	s := New(DefaultConfig())
	token, _ := s.Create("user-1", CreateOptions{})
	for h := range s.byHash {
		if h == token {
			t.Fatal("raw token must never be used as the storage key")
		}
	}
}
