package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/belaycheck/internal/domain/kv"
	"github.com/yanqian/belaycheck/internal/domain/notice"
	"github.com/yanqian/belaycheck/internal/domain/pairs"
	"github.com/yanqian/belaycheck/internal/domain/session"
	"github.com/yanqian/belaycheck/internal/infra/config"
	"github.com/yanqian/belaycheck/internal/infra/kvstore"
)

func providePairsConfig(cfg *config.Config) pairs.Config {
	return pairs.Config{Limit: cfg.App.MaxSavedPairs}
}

func provideNoticeConfig(cfg *config.Config) notice.Config {
	return notice.Config{CurrentVersion: cfg.App.Version}
}

func provideSessionConfig(cfg *config.Config) session.Config {
	return session.Config{
		Secret:   cfg.Session.Secret,
		TokenTTL: cfg.Session.TokenTTL,
	}
}

// provideStore picks the configured backend for per-client state. A backend
// that cannot be reached at startup falls back to memory so assessments keep
// working.
func provideStore(cfg *config.Config, logger *slog.Logger) (kv.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendValkey:
		if store, cleanup, ok := openValkeyStore(cfg, logger); ok {
			return store, cleanup, nil
		}
	case config.BackendPostgres:
		if store, cleanup, ok := openPostgresStore(cfg, logger); ok {
			return store, cleanup, nil
		}
	default:
		logger.Info("using memory store for client state")
	}
	return kvstore.NewMemoryStore(), func() {}, nil
}

func openValkeyStore(cfg *config.Config, logger *slog.Logger) (kv.Store, func(), bool) {
	opt, err := buildValkeyOptions(cfg.Storage.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return nil, nil, false
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return nil, nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return nil, nil, false
	}
	logger.Info("valkey store enabled", "addr", cfg.Storage.Valkey.Addr)
	return kvstore.NewValkeyStore(client, cfg.Storage.KeyPrefix, cfg.Storage.TTL), client.Close, true
}

func openPostgresStore(cfg *config.Config, logger *slog.Logger) (kv.Store, func(), bool) {
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.Storage.Postgres.DSN))
	if err != nil {
		logger.Error("invalid postgres dsn, falling back to memory store", "error", err)
		return nil, nil, false
	}
	if cfg.Storage.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Storage.Postgres.MaxConns
	}
	if cfg.Storage.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Storage.Postgres.MinConns
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, falling back to memory store", "error", err)
		return nil, nil, false
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, falling back to memory store", "error", err)
		pool.Close()
		return nil, nil, false
	}
	store := kvstore.NewPostgresStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Error("failed to prepare client_state table, falling back to memory store", "error", err)
		pool.Close()
		return nil, nil, false
	}
	logger.Info("postgres store enabled")
	return store, pool.Close, true
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
