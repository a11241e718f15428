package configstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingAPIKey = errors.New("configstore: missing API key")
	ErrInvalidAPIKey = errors.New("configstore: invalid API key")
	ErrUnavailable   = errors.New("configstore: application store unavailable")
)

// AppContext is the authenticated calling application's identity and
// config override bundle.
type AppContext struct {
	ApplicationID string
	Override      *ConfigOverride
}

// Authenticator validates a caller's API key against the application
// registry, caching verified keys to avoid a bcrypt compare per request.
type Authenticator struct {
	store  *Store
	cache  *authCache
	logger *zap.Logger
}

// AuthenticatorConfig configures an Authenticator.
type AuthenticatorConfig struct {
	Store    *Store
	CacheTTL time.Duration // default 30s
	Logger   *zap.Logger
}

// NewAuthenticator constructs an Authenticator backed by store.
func NewAuthenticator(cfg AuthenticatorConfig) *Authenticator {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{store: cfg.Store, cache: newAuthCache(ttl), logger: logger}
}

// Authenticate verifies apiKey and returns the caller's application
// context, using a stale-while-revalidate cache to keep the hot path off
// the database and bcrypt.
func (a *Authenticator) Authenticate(ctx context.Context, apiKey string) (*AppContext, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	result := a.cache.Get(apiKey)
	if result.Hit {
		if result.NeedsRefresh {
			go a.backgroundRefresh(apiKey)
		}
		return result.AppContext, nil
	}

	appCtx, err := a.lookupAndVerify(ctx, apiKey)
	if err != nil {
		return nil, a.classifyError(err)
	}
	a.cache.Set(apiKey, appCtx)
	return appCtx, nil
}

func (a *Authenticator) backgroundRefresh(apiKey string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	appCtx, err := a.lookupAndVerify(ctx, apiKey)
	if err != nil {
		a.logger.Warn("configstore: background auth refresh failed", zap.Error(err))
		a.cache.Delete(apiKey)
		return
	}
	a.cache.Set(apiKey, appCtx)
}

func (a *Authenticator) lookupAndVerify(ctx context.Context, apiKey string) (*AppContext, error) {
	if len(apiKey) < 9 {
		return nil, ErrInvalidAPIKey
	}
	prefix := apiKey[:9]

	app, override, err := a.store.LookupByPrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("lookupAndVerify: %w", err)
	}
	if app == nil {
		return nil, ErrInvalidAPIKey
	}
	if err := bcrypt.CompareHashAndPassword([]byte(app.APIKeyHash), []byte(apiKey)); err != nil {
		return nil, ErrInvalidAPIKey
	}

	return &AppContext{ApplicationID: app.ID, Override: override}, nil
}

func (a *Authenticator) classifyError(err error) error {
	if errors.Is(err, ErrInvalidAPIKey) {
		return ErrInvalidAPIKey
	}
	a.logger.Warn("configstore: application store unreachable", zap.Error(err))
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
