package webhookauth

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"
)

// parseSignatureHeader accepts raw hex, "algo=hex" (e.g. "sha256=…"), and
// versioned "v1=hex" forms (spec §4.7, §6 wire-level).
func parseSignatureHeader(header string, defaultAlgo Algorithm) (Algorithm, string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", "", false
	}

	if i := strings.Index(header, "="); i >= 0 {
		prefix := strings.ToLower(header[:i])
		hexPart := header[i+1:]
		switch prefix {
		case "sha1", "sha256", "sha384", "sha512":
			return Algorithm(prefix), hexPart, true
		case "v1":
			return defaultAlgo, hexPart, true
		default:
			return "", "", false
		}
	}

	return defaultAlgo, header, true
}

func newHash(algo Algorithm) func() hash.Hash {
	switch algo {
	case AlgoSHA1:
		return sha1.New
	case AlgoSHA384:
		return sha512.New384
	case AlgoSHA512:
		return sha512.New
	default:
		return sha256.New
	}
}

// Verify implements spec §4.7's verify(payload_bytes, signature_header,
// secret, algorithm): parse the header, compute the HMAC, and compare in
// constant time. Decoding failures return {valid:false} rather than an
// error (spec §7: "HMAC/hash comparisons that raise during decoding return
// {valid:false} rather than propagating exceptions").
func Verify(payload []byte, signatureHeader, secret string, defaultAlgo Algorithm) VerifyResult {
	algo, hexSig, ok := parseSignatureHeader(signatureHeader, defaultAlgo)
	if !ok {
		return VerifyResult{Valid: false, Reason: "malformed signature header"}
	}

	decoded, err := hex.DecodeString(hexSig)
	if err != nil {
		return VerifyResult{Valid: false, Algorithm: algo, Reason: "signature is not valid hex"}
	}

	mac := hmac.New(newHash(algo), []byte(secret))
	mac.Write(payload)
	expected := mac.Sum(nil)

	if len(decoded) != len(expected) {
		return VerifyResult{Valid: false, Algorithm: algo, Reason: "signature length mismatch"}
	}
	if !hmac.Equal(decoded, expected) {
		return VerifyResult{Valid: false, Algorithm: algo, Reason: "signature mismatch"}
	}
	return VerifyResult{Valid: true, Algorithm: algo}
}
