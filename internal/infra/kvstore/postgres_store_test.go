package kvstore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestPostgresStoreGet(t *testing.T) {
	db := &fakePostgres{row: fakeRow{value: `[{"climber":70}]`}}
	store := NewPostgresStore(db)

	value, found, err := store.Get(context.Background(), "client-a", "commonPairs")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `[{"climber":70}]`, value)
	require.Contains(t, db.queries[0], "FROM client_state")
	require.Equal(t, []any{"client-a", "commonPairs"}, db.args[0])
}

func TestPostgresStoreGetMapsNoRowsToNotFound(t *testing.T) {
	store := NewPostgresStore(&fakePostgres{row: fakeRow{err: pgx.ErrNoRows}})

	value, found, err := store.Get(context.Background(), "client-a", "commonPairs")
	require.NoError(t, err)
	require.False(t, found)
	require.Empty(t, value)
}

func TestPostgresStoreGetPropagatesErrors(t *testing.T) {
	cause := errors.New("connection reset")
	store := NewPostgresStore(&fakePostgres{row: fakeRow{err: cause}})

	_, found, err := store.Get(context.Background(), "client-a", "commonPairs")
	require.ErrorIs(t, err, cause)
	require.False(t, found)
}

func TestPostgresStoreSetUpsertsAndDeleteRemoves(t *testing.T) {
	db := &fakePostgres{}
	store := NewPostgresStore(db)
	ctx := context.Background()

	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.Set(ctx, "client-a", "appUpdateInfo", `{"version":"1.4.0","closed":true}`))
	require.NoError(t, store.Delete(ctx, "client-a", "appUpdateInfo"))

	require.Len(t, db.queries, 3)
	require.Contains(t, db.queries[0], "CREATE TABLE IF NOT EXISTS client_state")
	require.Contains(t, db.queries[1], "ON CONFLICT (namespace, key)")
	require.Equal(t, []any{"client-a", "appUpdateInfo", `{"version":"1.4.0","closed":true}`}, db.args[1])
	require.True(t, strings.Contains(db.queries[2], "DELETE FROM client_state"))
	require.Equal(t, []any{"client-a", "appUpdateInfo"}, db.args[2])
}

func TestPostgresStoreExecErrors(t *testing.T) {
	cause := errors.New("read-only transaction")
	store := NewPostgresStore(&fakePostgres{execErr: cause})
	ctx := context.Background()

	require.ErrorIs(t, store.Set(ctx, "client-a", "commonPairs", "[]"), cause)
	require.ErrorIs(t, store.Delete(ctx, "client-a", "commonPairs"), cause)
}

type fakePostgres struct {
	row     fakeRow
	execErr error
	queries []string
	args    [][]any
}

func (f *fakePostgres) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.queries = append(f.queries, sql)
	f.args = append(f.args, args)
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakePostgres) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.queries = append(f.queries, sql)
	f.args = append(f.args, args)
	return f.row
}

type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}
