package skillgate

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

func newHash(algo HashAlgorithm) (func() hash.Hash, error) {
	switch algo {
	case AlgoSHA256:
		return sha256.New, nil
	case AlgoSHA384:
		return sha512.New384, nil
	case AlgoSHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("skillgate: unsupported hash algorithm %q", algo)
	}
}

// hashContent hashes content under algo, returning hex.
func hashContent(content []byte, algo HashAlgorithm) (string, error) {
	newFn, err := newHash(algo)
	if err != nil {
		return "", err
	}
	h := newFn()
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyContent recomputes content's hash under algo and constant-time
// compares it to expectedHex. Returns true unconditionally when
// verifyHashes is false (spec §4.9).
func VerifyContent(content []byte, expectedHex string, algo HashAlgorithm, verifyHashes bool) (bool, error) {
	if !verifyHashes {
		return true, nil
	}
	actual, err := hashContent(content, algo)
	if err != nil {
		return false, err
	}
	actualBytes, err1 := hex.DecodeString(actual)
	expectedBytes, err2 := hex.DecodeString(strings.TrimSpace(expectedHex))
	if err1 != nil || err2 != nil {
		return false, nil
	}
	return hmac.Equal(actualBytes, expectedBytes), nil
}

// ParseSRI parses a Subresource-Integrity-style string "algo-base64(hash)"
// and returns the algorithm and the hash in hex form (spec §4.9).
func ParseSRI(sri string) (HashAlgorithm, string, error) {
	parts := strings.SplitN(sri, "-", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("skillgate: malformed SRI string %q", sri)
	}
	algo := HashAlgorithm(strings.ToLower(parts[0]))
	if _, err := newHash(algo); err != nil {
		return "", "", err
	}
	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", fmt.Errorf("skillgate: malformed SRI hash encoding: %w", err)
	}
	return algo, hex.EncodeToString(decoded), nil
}

// CreateSRIHash returns "algo-base64(hash)" for content under algo.
func CreateSRIHash(content []byte, algo HashAlgorithm) (string, error) {
	newFn, err := newHash(algo)
	if err != nil {
		return "", err
	}
	h := newFn()
	h.Write(content)
	return fmt.Sprintf("%s-%s", algo, base64.StdEncoding.EncodeToString(h.Sum(nil))), nil
}
