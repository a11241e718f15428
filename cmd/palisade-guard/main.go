package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/triage-ai/palisade-core/internal/api"
	"github.com/triage-ai/palisade-core/internal/audit"
	"github.com/triage-ai/palisade-core/internal/configstore"
	"github.com/triage-ai/palisade-core/internal/navguard"
	"github.com/triage-ai/palisade-core/internal/redactor"
	"github.com/triage-ai/palisade-core/internal/sanitizer"
	"github.com/triage-ai/palisade-core/internal/sessions"
	"github.com/triage-ai/palisade-core/internal/skillgate"
	"github.com/triage-ai/palisade-core/internal/toolpolicy"
	"github.com/triage-ai/palisade-core/internal/webhookauth"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	logger := mustBuildLogger(envOrDefault("PALISADE_LOG_LEVEL", "info"))
	defer logger.Sync() //nolint:errcheck // best-effort flush

	httpPort := envOrDefault("PALISADE_HTTP_PORT", "8080")
	clickhouseDSN := os.Getenv("CLICKHOUSE_DSN")
	postgresDSN := os.Getenv("POSTGRES_DSN")
	auditLogPath := envOrDefault("PALISADE_AUDIT_LOG_PATH", "")
	authCacheTTL := envOrDefaultInt("PALISADE_AUTH_CACHE_TTL_S", 30)

	logger.Info("starting guard server", zap.String("http_port", httpPort))

	// Audit shipper — ClickHouse if configured, else a file/console fallback,
	// buffered the same way the teacher batches ClickHouse writes.
	var shipper audit.Shipper
	if clickhouseDSN != "" {
		chShipper, err := audit.NewClickHouseShipper(clickhouseDSN)
		if err != nil {
			logger.Warn("clickhouse audit shipper failed, falling back to console", zap.Error(err))
			shipper = audit.NewConsoleShipper(logger)
		} else {
			shipper = audit.NewBufferedShipper(chShipper, 20, 5*time.Second)
			logger.Info("clickhouse audit shipper connected")
		}
	} else if auditLogPath != "" {
		fileShipper, err := audit.NewFileShipper(auditLogPath)
		if err != nil {
			logger.Fatal("failed to open audit log", zap.Error(err))
		}
		shipper = fileShipper
	} else {
		shipper = audit.NewConsoleShipper(logger)
		logger.Info("no CLICKHOUSE_DSN or PALISADE_AUDIT_LOG_PATH set, auditing to console")
	}
	defer shipper.Close() //nolint:errcheck // best-effort flush

	auditLogger := audit.NewLogger(audit.DefaultConfig(), shipper)
	defer auditLogger.Close() //nolint:errcheck

	sanitizerEngine := sanitizer.New(sanitizer.DefaultConfig(), auditLogger)
	redactorEngine := redactor.NewMonitored(redactor.DefaultConfig())
	navGuard := navguard.New(navguard.DefaultConfig())
	sessionStore := sessions.New(sessions.DefaultConfig())
	skillGate := skillgate.New(skillgate.DefaultConfig())
	toolPolicy := toolpolicy.NewEngine(toolpolicy.DefaultConfig())

	webhookCfg := webhookauth.DefaultConfig()
	allowlistEntries := splitNonEmpty(os.Getenv("PALISADE_WEBHOOK_ALLOWLIST"), ",")
	webhookAllowlist := webhookauth.NewAllowlist(allowlistEntries)

	// Postgres-backed application registry (required for multi-tenant auth).
	var authenticator *configstore.Authenticator
	if postgresDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err := pgxpool.New(ctx, postgresDSN)
		cancel()
		if err != nil {
			logger.Fatal("failed to open postgres pool", zap.Error(err))
		}
		defer pool.Close()
		if err := pool.Ping(context.Background()); err != nil {
			logger.Fatal("failed to ping postgres", zap.Error(err))
		}
		store := configstore.NewStore(pool)
		authenticator = configstore.NewAuthenticator(configstore.AuthenticatorConfig{
			Store:    store,
			CacheTTL: time.Duration(authCacheTTL) * time.Second,
			Logger:   logger,
		})
		logger.Info("postgres application registry connected")
	} else {
		logger.Info("no POSTGRES_DSN set, running without application authentication")
	}

	deps := &api.Dependencies{
		Sanitizer:        sanitizerEngine,
		Redactor:         redactorEngine,
		ToolPolicy:       toolPolicy,
		NavGuard:         navGuard,
		WebhookConfig:    webhookCfg,
		WebhookAllowlist: webhookAllowlist,
		Sessions:         sessionStore,
		SkillGate:        skillGate,
		Audit:            auditLogger,
		Authenticator:    authenticator,
		Logger:           logger,
	}

	httpServer := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      api.NewRouter(deps),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	cleanupTicker := time.NewTicker(time.Minute)
	defer cleanupTicker.Stop()
	stopCleanup := make(chan struct{})
	go func() {
		for {
			select {
			case <-cleanupTicker.C:
				sessionStore.Cleanup()
			case <-stopCleanup:
				return
			}
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	close(stopCleanup)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", zap.Error(err))
	}

	logger.Info("guard server stopped")
}

func mustBuildLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	return logger
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
