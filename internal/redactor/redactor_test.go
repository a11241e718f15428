package redactor

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestRedactPatternSweepReplacesSecret(t *testing.T) {
	r := New(DefaultConfig())
	res := r.Redact("here is my key: sk-ant-REDACTED end")
	if !res.Modified {
		t.Fatal("expected redaction to fire")
	}
	if strings.Contains(res.Text, "sk-ant-") {
		t.Error("secret must not survive redaction")
	}
	if !strings.Contains(res.Text, "[REDACTED:ANTHROPIC_KEY]") {
		t.Errorf("expected placeholder in output, got %q", res.Text)
	}
	if res.CountsByKind["ANTHROPIC_KEY"] != 1 {
		t.Errorf("expected count 1 for ANTHROPIC_KEY, got %d", res.CountsByKind["ANTHROPIC_KEY"])
	}
}

func TestRedactDedupsRepeatedSecret(t *testing.T) {
	r := New(DefaultConfig())
	secret := "sk-ant-REDACTED"
	res := r.Redact(secret + " and again " + secret)
	if res.CountsByKind["ANTHROPIC_KEY"] != 1 {
		t.Errorf("expected the repeated identical secret counted once, got %d", res.CountsByKind["ANTHROPIC_KEY"])
	}
	if strings.Contains(res.Text, secret) {
		t.Error("both occurrences of the secret must be replaced")
	}
}

func TestRedactStrictPatternsExcludesLowConfidence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StrictPatterns = true
	r := New(cfg)
	azureUUID := "12345678-1234-1234-1234-123456789012"
	res := r.Redact("id: " + azureUUID)
	if strings.Contains(res.Text, "[REDACTED:AZURE_UUID]") {
		t.Error("low-confidence AZURE_UUID pattern must be excluded in strict mode")
	}
}

func TestRedactBase64Sweep(t *testing.T) {
	r := New(DefaultConfig())
	secret := "sk-ant-REDACTED"
	encoded := base64.StdEncoding.EncodeToString([]byte(secret))
	res := r.Redact("payload=" + encoded)
	if !strings.Contains(res.Text, "[REDACTED:BASE64_SECRET]") {
		t.Errorf("expected base64 secret to be redacted, got %q", res.Text)
	}
}

func TestRedactEntropySweepRequiresSecretLikeness(t *testing.T) {
	r := New(DefaultConfig())
	res := r.Redact("api_key: aB3xQ9mK2pL7vN4zR8wJ6tY1")
	if !strings.Contains(res.Text, "[REDACTED:HIGH_ENTROPY]") {
		t.Errorf("expected secret-shaped high-entropy token to be redacted, got %q", res.Text)
	}
}

func TestRedactEntropySweepSkipsPlainProse(t *testing.T) {
	r := New(DefaultConfig())
	prose := "This paragraph discusses quarterly revenue projections in significant depth."
	res := r.Redact(prose)
	if res.Modified {
		t.Errorf("expected no redaction on plain prose, got %q", res.Text)
	}
}

func TestRedactWhitelistBypassesRedaction(t *testing.T) {
	cfg := DefaultConfig()
	secret := "sk-ant-REDACTED"
	cfg.Whitelist = []string{secret}
	r := New(cfg)
	res := r.Redact("token: " + secret)
	if res.Modified {
		t.Error("whitelisted value must not be redacted")
	}
	if !strings.Contains(res.Text, secret) {
		t.Error("whitelisted value must survive unchanged")
	}
}

func TestBuildPreviewNeverLeaksFullValue(t *testing.T) {
	secret := "sk-ant-REDACTED"
	preview := buildPreview(secret)
	if strings.Contains(preview, secret) {
		t.Error("preview must not contain the full secret")
	}
	if !strings.Contains(preview, "chars") {
		t.Errorf("expected length marker in preview, got %q", preview)
	}
}

func TestMonitoredRedactorAccumulatesStats(t *testing.T) {
	m := NewMonitored(DefaultConfig())
	m.Redact("sk-ant-REDACTED")
	m.Redact("nothing interesting here")
	stats := m.Stats()
	if stats.TotalChecked != 2 {
		t.Errorf("expected 2 total checked, got %d", stats.TotalChecked)
	}
	if stats.TotalRedacted != 1 {
		t.Errorf("expected 1 total redacted, got %d", stats.TotalRedacted)
	}
	if stats.ByKind["ANTHROPIC_KEY"] != 1 {
		t.Errorf("expected ANTHROPIC_KEY count 1, got %d", stats.ByKind["ANTHROPIC_KEY"])
	}
	if stats.ByMethod[MethodPattern] != 1 {
		t.Errorf("expected pattern method count 1, got %d", stats.ByMethod[MethodPattern])
	}
}
