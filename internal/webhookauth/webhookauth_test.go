package webhookauth

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"testing"
)

func sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRawHex(t *testing.T) {
	payload := []byte(`{"event":"push"}`)
	secret := "topsecret"
	sig := sign(payload, secret)
	res := Verify(payload, sig, secret, AlgoSHA256)
	if !res.Valid {
		t.Errorf("expected valid signature, got %+v", res)
	}
}

func TestVerifyAlgoEqualsHexForm(t *testing.T) {
	payload := []byte(`{"event":"push"}`)
	secret := "topsecret"
	sig := "sha256=" + sign(payload, secret)
	res := Verify(payload, sig, secret, AlgoSHA256)
	if !res.Valid || res.Algorithm != AlgoSHA256 {
		t.Errorf("expected valid sha256 signature, got %+v", res)
	}
}

func TestVerifyVersionedForm(t *testing.T) {
	payload := []byte(`{"event":"push"}`)
	secret := "topsecret"
	sig := "v1=" + sign(payload, secret)
	res := Verify(payload, sig, secret, AlgoSHA256)
	if !res.Valid {
		t.Errorf("expected valid v1 signature, got %+v", res)
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	secret := "topsecret"
	sig := sign([]byte("original"), secret)
	res := Verify([]byte("tampered"), sig, secret, AlgoSHA256)
	if res.Valid {
		t.Error("expected tampered payload to fail verification")
	}
}

func TestVerifyRejectsMalformedHex(t *testing.T) {
	res := Verify([]byte("payload"), "sha256=not-hex!!", "secret", AlgoSHA256)
	if res.Valid {
		t.Error("expected malformed hex to fail, not panic")
	}
}

func TestVerifyRejectsLengthMismatch(t *testing.T) {
	res := Verify([]byte("payload"), "aabbcc", "secret", AlgoSHA256)
	if res.Valid {
		t.Error("expected short signature to fail length check")
	}
}

func TestVerifySupportsSHA1AndSHA512(t *testing.T) {
	payload := []byte("data")
	secret := "s"

	sha1Mac := hmac.New(sha1.New, []byte(secret))
	sha1Mac.Write(payload)
	sig1 := "sha1=" + hex.EncodeToString(sha1Mac.Sum(nil))
	if res := Verify(payload, sig1, secret, AlgoSHA256); !res.Valid || res.Algorithm != AlgoSHA1 {
		t.Errorf("expected sha1 signature to verify, got %+v", res)
	}

	sha512Mac := hmac.New(sha512.New, []byte(secret))
	sha512Mac.Write(payload)
	sig512 := "sha512=" + hex.EncodeToString(sha512Mac.Sum(nil))
	if res := Verify(payload, sig512, secret, AlgoSHA256); !res.Valid || res.Algorithm != AlgoSHA512 {
		t.Errorf("expected sha512 signature to verify, got %+v", res)
	}
}

func TestAllowlistPermitsAllWhenEmpty(t *testing.T) {
	a := NewAllowlist(nil)
	if !a.Check("8.8.8.8") {
		t.Error("expected empty allowlist to permit all IPs")
	}
}

func TestAllowlistBareIPIsSlash32(t *testing.T) {
	a := NewAllowlist([]string{"203.0.113.5"})
	if !a.Check("203.0.113.5") {
		t.Error("expected exact IP match to pass")
	}
	if a.Check("203.0.113.6") {
		t.Error("expected neighboring IP to be rejected under /32")
	}
}

func TestAllowlistCIDRRange(t *testing.T) {
	a := NewAllowlist([]string{"192.0.2.0/24"})
	if !a.Check("192.0.2.42") {
		t.Error("expected IP within CIDR range to pass")
	}
	if a.Check("192.0.3.1") {
		t.Error("expected IP outside CIDR range to be rejected")
	}
}
