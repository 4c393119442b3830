package kvstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yanqian/belaycheck/internal/domain/kv"
)

const createClientStateTable = `
	CREATE TABLE IF NOT EXISTS client_state (
		namespace  TEXT        NOT NULL,
		key        TEXT        NOT NULL,
		value      TEXT        NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (namespace, key)
	)
`

// PostgresDB is the part of pgx the store uses; *pgxpool.Pool satisfies it.
type PostgresDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements kv.Store on a single table using pgx.
type PostgresStore struct {
	pool PostgresDB
}

// NewPostgresStore constructs the store.
func NewPostgresStore(pool PostgresDB) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the client_state table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, createClientStateTable)
	return err
}

// Get implements kv.Store.
func (s *PostgresStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `
		SELECT value
		FROM client_state
		WHERE namespace = $1 AND key = $2
	`, namespace, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Set implements kv.Store. Last write wins.
func (s *PostgresStore) Set(ctx context.Context, namespace, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO client_state (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, namespace, key, value)
	return err
}

// Delete implements kv.Store.
func (s *PostgresStore) Delete(ctx context.Context, namespace, key string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM client_state
		WHERE namespace = $1 AND key = $2
	`, namespace, key)
	return err
}

var _ kv.Store = (*PostgresStore)(nil)
