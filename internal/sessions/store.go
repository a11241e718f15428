package sessions

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// entry is the internal storage row, keyed by SHA-256(raw token) hex.
type entry struct {
	record Record
}

// Store implements the session token store of spec §4.8. Safe for
// concurrent use.
type Store struct {
	cfg Config
	mu  sync.Mutex
	byHash    map[string]*entry
	byUser    map[string]map[string]bool // userID -> set of token hashes
	now       func() time.Time
}

// New constructs a Store with its own maps.
func New(cfg Config) *Store {
	return &Store{
		cfg:    cfg,
		byHash: map[string]*entry{},
		byUser: map[string]map[string]bool{},
		now:    time.Now,
	}
}

func hashToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}

// Create issues a new raw token for userID (spec §4.8). The raw token is
// returned exactly once (invariant I2); only its hash is ever stored.
func (s *Store) Create(userID string, opts CreateOptions) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanupLocked()

	if s.countActiveLocked(userID) >= s.cfg.MaxTokensPerUser {
		return "", &TokenError{Code: MaxTokensPerUserExceeded}
	}

	ttl := opts.TTLHours
	if ttl <= 0 {
		ttl = s.cfg.DefaultTTLHours
	}
	if ttl > s.cfg.MaxTTLHours {
		ttl = s.cfg.MaxTTLHours
	}

	byteLen := s.cfg.TokenByteLength
	if byteLen < 32 {
		byteLen = 32
	}
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sessions: generating token: %w", err)
	}
	rawToken := hex.EncodeToString(buf)
	tokenHash := hashToken(rawToken)

	now := s.now()
	rec := Record{
		UserID:      userID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Duration(ttl * float64(time.Hour))),
		ClientIP:    opts.ClientIP,
		SessionType: opts.SessionType,
		Data:        opts.Data,
	}
	s.byHash[tokenHash] = &entry{record: rec}

	if s.byUser[userID] == nil {
		s.byUser[userID] = map[string]bool{}
	}
	s.byUser[userID][tokenHash] = true

	return rawToken, nil
}

// Validate looks up a token by its hash, self-deleting expired entries and
// checking IP binding when enabled (spec §4.8).
func (s *Store) Validate(rawToken, clientIP string) ValidateResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokenHash := hashToken(rawToken)
	e, ok := s.byHash[tokenHash]
	if !ok {
		return ValidateResult{Valid: false, Reason: "token not found"}
	}

	if s.now().After(e.record.ExpiresAt) {
		s.deleteLocked(tokenHash, e.record.UserID)
		return ValidateResult{Valid: false, Reason: "token expired"}
	}

	if s.cfg.BindToClientIP && e.record.ClientIP != "" && clientIP != "" && e.record.ClientIP != clientIP {
		s.deleteLocked(tokenHash, e.record.UserID)
		return ValidateResult{Valid: false, Reason: "client IP mismatch"}
	}

	recCopy := e.record
	return ValidateResult{Valid: true, Metadata: &recCopy}
}

// Invalidate removes a single token.
func (s *Store) Invalidate(rawToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tokenHash := hashToken(rawToken)
	if e, ok := s.byHash[tokenHash]; ok {
		s.deleteLocked(tokenHash, e.record.UserID)
	}
}

// InvalidateAll removes every token belonging to userID.
func (s *Store) InvalidateAll(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for tokenHash := range s.byUser[userID] {
		delete(s.byHash, tokenHash)
	}
	delete(s.byUser, userID)
}

// Cleanup removes all expired entries. Implicitly invoked by Create,
// Validate, and countActive queries (spec §4.8).
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked()
}

func (s *Store) cleanupLocked() {
	now := s.now()
	for tokenHash, e := range s.byHash {
		if now.After(e.record.ExpiresAt) {
			s.deleteLocked(tokenHash, e.record.UserID)
		}
	}
}

func (s *Store) deleteLocked(tokenHash, userID string) {
	delete(s.byHash, tokenHash)
	if set, ok := s.byUser[userID]; ok {
		delete(set, tokenHash)
		if len(set) == 0 {
			delete(s.byUser, userID)
		}
	}
}

// countActiveLocked returns the number of non-expired tokens for userID.
// Must be called with s.mu held, after cleanupLocked.
func (s *Store) countActiveLocked(userID string) int {
	return len(s.byUser[userID])
}
