package configstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Store provides access to the Postgres-backed application/config
// registry, adapted from the teacher's project/policy CRUD store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps an existing pgx connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// GenerateAPIKey creates a new "plsd_" API key with its bcrypt hash and
// lookup prefix. Returns (fullKey, hash, prefix, error); fullKey is
// shown to the caller exactly once.
func GenerateAPIKey() (string, string, string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", "", fmt.Errorf("configstore: generating API key: %w", err)
	}
	fullKey := "plsd_" + hex.EncodeToString(raw)

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(fullKey), bcrypt.DefaultCost)
	if err != nil {
		return "", "", "", fmt.Errorf("configstore: hashing API key: %w", err)
	}

	prefix := fullKey[:9] // "plsd_" + 4 hex chars
	return fullKey, string(hashBytes), prefix, nil
}

// CreateApplication inserts a new application and an empty config
// override row in a single transaction. Returns the application, its
// override, and the plaintext API key.
func (s *Store) CreateApplication(ctx context.Context, name string) (*Application, *ConfigOverride, string, error) {
	fullKey, keyHash, keyPrefix, err := GenerateAPIKey()
	if err != nil {
		return nil, nil, "", err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, "", fmt.Errorf("configstore: begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var app Application
	err = tx.QueryRow(ctx, `
		INSERT INTO applications (name, api_key_hash, api_key_prefix)
		VALUES ($1, $2, $3)
		RETURNING id, name, api_key_hash, api_key_prefix, created_at, updated_at`,
		name, keyHash, keyPrefix,
	).Scan(&app.ID, &app.Name, &app.APIKeyHash, &app.APIKeyPrefix, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, nil, "", fmt.Errorf("configstore: create application: %w", err)
	}

	var cfg ConfigOverride
	err = tx.QueryRow(ctx, `
		INSERT INTO config_overrides (application_id)
		VALUES ($1)
		RETURNING application_id, prompt_sanitizer, output_redaction, tool_policy,
		          browser_guard, webhook, session, skill_gate, audit,
		          created_at, updated_at`,
		app.ID,
	).Scan(&cfg.ApplicationID, &cfg.PromptSanitizer, &cfg.OutputRedaction, &cfg.ToolPolicy,
		&cfg.BrowserGuard, &cfg.Webhook, &cfg.Session, &cfg.SkillGate, &cfg.Audit,
		&cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return nil, nil, "", fmt.Errorf("configstore: create config override: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, "", fmt.Errorf("configstore: commit: %w", err)
	}

	return &app, &cfg, fullKey, nil
}

// GetApplication returns an application by ID, or nil if not found.
func (s *Store) GetApplication(ctx context.Context, id string) (*Application, error) {
	var app Application
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, api_key_hash, api_key_prefix, created_at, updated_at
		FROM applications WHERE id = $1`, id,
	).Scan(&app.ID, &app.Name, &app.APIKeyHash, &app.APIKeyPrefix, &app.CreatedAt, &app.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("configstore: get application: %w", err)
	}
	return &app, nil
}

// LookupByPrefix finds an application by its API key prefix, joined with
// its config override, to narrow candidates before a bcrypt compare.
func (s *Store) LookupByPrefix(ctx context.Context, prefix string) (*Application, *ConfigOverride, error) {
	var app Application
	var cfg ConfigOverride
	err := s.pool.QueryRow(ctx, `
		SELECT a.id, a.name, a.api_key_hash, a.api_key_prefix, a.created_at, a.updated_at,
		       c.prompt_sanitizer, c.output_redaction, c.tool_policy, c.browser_guard,
		       c.webhook, c.session, c.skill_gate, c.audit
		FROM applications a
		LEFT JOIN config_overrides c ON c.application_id = a.id
		WHERE a.api_key_prefix = $1`, prefix,
	).Scan(&app.ID, &app.Name, &app.APIKeyHash, &app.APIKeyPrefix, &app.CreatedAt, &app.UpdatedAt,
		&cfg.PromptSanitizer, &cfg.OutputRedaction, &cfg.ToolPolicy, &cfg.BrowserGuard,
		&cfg.Webhook, &cfg.Session, &cfg.SkillGate, &cfg.Audit)
	if err == pgx.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("configstore: lookup by prefix: %w", err)
	}
	cfg.ApplicationID = app.ID
	return &app, &cfg, nil
}

// UpdateOverride applies a partial update to an application's config
// override. Only non-nil fields are changed.
func (s *Store) UpdateOverride(ctx context.Context, appID string, params UpdateOverrideParams) (*ConfigOverride, error) {
	var cfg ConfigOverride
	err := s.pool.QueryRow(ctx, `
		UPDATE config_overrides SET
			prompt_sanitizer = COALESCE($2, prompt_sanitizer),
			output_redaction = COALESCE($3, output_redaction),
			tool_policy      = COALESCE($4, tool_policy),
			browser_guard    = COALESCE($5, browser_guard),
			webhook          = COALESCE($6, webhook),
			session          = COALESCE($7, session),
			skill_gate       = COALESCE($8, skill_gate),
			audit            = COALESCE($9, audit),
			updated_at       = now()
		WHERE application_id = $1
		RETURNING application_id, prompt_sanitizer, output_redaction, tool_policy,
		          browser_guard, webhook, session, skill_gate, audit,
		          created_at, updated_at`,
		appID, nullableJSON(params.PromptSanitizer), nullableJSON(params.OutputRedaction),
		nullableJSON(params.ToolPolicy), nullableJSON(params.BrowserGuard), nullableJSON(params.Webhook),
		nullableJSON(params.Session), nullableJSON(params.SkillGate), nullableJSON(params.Audit),
	).Scan(&cfg.ApplicationID, &cfg.PromptSanitizer, &cfg.OutputRedaction, &cfg.ToolPolicy,
		&cfg.BrowserGuard, &cfg.Webhook, &cfg.Session, &cfg.SkillGate, &cfg.Audit,
		&cfg.CreatedAt, &cfg.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("configstore: update override: %w", err)
	}
	return &cfg, nil
}

// DeleteApplication removes an application; its config override cascades.
func (s *Store) DeleteApplication(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("configstore: delete application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func nullableJSON(v *json.RawMessage) any {
	if v == nil {
		return nil
	}
	return *v
}
