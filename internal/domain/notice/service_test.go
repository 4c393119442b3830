package notice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/belaycheck/pkg/errors"
)

func TestChangelogNewestFirst(t *testing.T) {
	svc := newServiceUnderTest(t, newMapStore(), "")
	entries := svc.Changelog()
	require.NotEmpty(t, entries)
	for i := 1; i < len(entries); i++ {
		require.GreaterOrEqual(t, entries[i-1].Date, entries[i].Date)
	}

	entries[0].Changes[0] = "mutated"
	require.NotEqual(t, "mutated", svc.Changelog()[0].Changes[0])
}

func TestStatusShowsUpdateUntilAcknowledged(t *testing.T) {
	store := newMapStore()
	svc := newServiceUnderTest(t, store, "")
	ctx := context.Background()

	status, err := svc.Status(ctx, "client-1")
	require.NoError(t, err)
	require.True(t, status.ShowUpdate)
	require.False(t, status.InstallPromptDismissed)
	require.NotNil(t, status.Latest)
	require.Equal(t, status.CurrentVersion, status.Latest.Version)

	require.NoError(t, svc.AcknowledgeUpdate(ctx, "client-1"))
	require.Contains(t, store.data["client-1/"+UpdateInfoKey], `"closed":true`)

	status, err = svc.Status(ctx, "client-1")
	require.NoError(t, err)
	require.False(t, status.ShowUpdate)

	other, err := svc.Status(ctx, "client-2")
	require.NoError(t, err)
	require.True(t, other.ShowUpdate)
}

func TestStatusShowsUpdateAgainForNewRelease(t *testing.T) {
	store := newMapStore()
	ctx := context.Background()

	old := newServiceUnderTest(t, store, "1.3.0")
	require.NoError(t, old.AcknowledgeUpdate(ctx, "client-1"))

	current := newServiceUnderTest(t, store, "1.4.0")
	status, err := current.Status(ctx, "client-1")
	require.NoError(t, err)
	require.True(t, status.ShowUpdate)
	require.Equal(t, "1.4.0", status.Latest.Version)
}

func TestStatusIgnoresCorruptUpdateInfo(t *testing.T) {
	store := newMapStore()
	store.data["client-1/"+UpdateInfoKey] = "{broken"
	svc := newServiceUnderTest(t, store, "")

	status, err := svc.Status(context.Background(), "client-1")
	require.NoError(t, err)
	require.True(t, status.ShowUpdate)
}

func TestDismissInstallPrompt(t *testing.T) {
	store := newMapStore()
	svc := newServiceUnderTest(t, store, "")
	ctx := context.Background()

	require.NoError(t, svc.DismissInstallPrompt(ctx, "client-1"))
	require.Equal(t, "true", store.data["client-1/"+InstallDismissedKey])

	status, err := svc.Status(ctx, "client-1")
	require.NoError(t, err)
	require.True(t, status.InstallPromptDismissed)
}

func TestUnknownVersionHasNoLatestEntry(t *testing.T) {
	svc := newServiceUnderTest(t, newMapStore(), "9.9.9")
	status, err := svc.Status(context.Background(), "client-1")
	require.NoError(t, err)
	require.Nil(t, status.Latest)
	require.Equal(t, "9.9.9", status.CurrentVersion)
}

func TestNoticeErrors(t *testing.T) {
	store := newMapStore()
	svc := newServiceUnderTest(t, store, "")
	ctx := context.Background()

	_, err := svc.Status(ctx, "")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	store.err = errors.New("postgres down")
	_, err = svc.Status(ctx, "client-1")
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
	require.True(t, apperrors.IsCode(svc.AcknowledgeUpdate(ctx, "client-1"), apperrors.CodeStorage))
	require.True(t, apperrors.IsCode(svc.DismissInstallPrompt(ctx, "client-1"), apperrors.CodeStorage))
}

func TestParseChangelogRejectsMissingVersion(t *testing.T) {
	_, err := parseChangelog([]byte(`[{"date":"2025-01-01","changes":[]}]`))
	require.Error(t, err)
}

func newServiceUnderTest(t *testing.T, store *mapStore, version string) Service {
	t.Helper()
	svc, err := NewService(Config{CurrentVersion: version}, store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return svc
}

type mapStore struct {
	data map[string]string
	err  error
}

func newMapStore() *mapStore {
	return &mapStore{data: make(map[string]string)}
}

func (m *mapStore) Get(_ context.Context, namespace, key string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.data[namespace+"/"+key]
	return v, ok, nil
}

func (m *mapStore) Set(_ context.Context, namespace, key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.data[namespace+"/"+key] = value
	return nil
}

func (m *mapStore) Delete(_ context.Context, namespace, key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.data, namespace+"/"+key)
	return nil
}
