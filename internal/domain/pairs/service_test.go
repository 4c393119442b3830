package pairs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/belaycheck/internal/domain/belay"
	apperrors "github.com/yanqian/belaycheck/pkg/errors"
)

func TestServiceSaveAndList(t *testing.T) {
	store := newMapStore()
	svc := newServiceUnderTest(store, 0)

	saved, err := svc.Save(context.Background(), "client-1", SaveRequest{
		ClimberWeight: "70",
		BelayerWeight: "65",
		Unit:          "kg",
		Device:        "assistedActive",
		UseOhm:        true,
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.Equal(t, 70.0, saved[0].Climber)
	require.Equal(t, belay.AssistedActive, saved[0].Device)
	require.True(t, saved[0].UseOhm)
	require.Equal(t, fixedNow, saved[0].Timestamp)

	listed, err := svc.List(context.Background(), "client-1")
	require.NoError(t, err)
	require.Equal(t, saved, listed)
	require.Contains(t, store.data["client-1/"+StorageKey], `"device":"assistedActive"`)

	other, err := svc.List(context.Background(), "client-2")
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestServiceSaveKeepsMostRecentTen(t *testing.T) {
	svc := newServiceUnderTest(newMapStore(), 0)

	var saved []SavedPair
	var err error
	for i := 1; i <= 13; i++ {
		saved, err = svc.Save(context.Background(), "client-1", SaveRequest{
			ClimberWeight: belay.WeightField(strconv.Itoa(50 + i)),
			BelayerWeight: "60",
		})
		require.NoError(t, err)
	}
	require.Len(t, saved, DefaultLimit)
	require.Equal(t, 54.0, saved[0].Climber)
	require.Equal(t, 63.0, saved[len(saved)-1].Climber)
}

func TestServiceSaveHonoursConfiguredLimit(t *testing.T) {
	svc := newServiceUnderTest(newMapStore(), 3)
	for i := 0; i < 5; i++ {
		_, err := svc.Save(context.Background(), "c", SaveRequest{ClimberWeight: "70", BelayerWeight: "60"})
		require.NoError(t, err)
	}
	listed, err := svc.List(context.Background(), "c")
	require.NoError(t, err)
	require.Len(t, listed, 3)
}

func TestServiceSaveValidates(t *testing.T) {
	svc := newServiceUnderTest(newMapStore(), 0)
	cases := []SaveRequest{
		{ClimberWeight: "", BelayerWeight: "60"},
		{ClimberWeight: "70", BelayerWeight: "0"},
		{ClimberWeight: "NaN", BelayerWeight: "60"},
		{ClimberWeight: "70", BelayerWeight: "60", Unit: "stone"},
		{ClimberWeight: "70", BelayerWeight: "60", Device: "tube"},
	}
	for _, req := range cases {
		_, err := svc.Save(context.Background(), "client-1", req)
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput), req)
	}

	_, err := svc.Save(context.Background(), " ", SaveRequest{ClimberWeight: "70", BelayerWeight: "60"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestServiceClear(t *testing.T) {
	store := newMapStore()
	svc := newServiceUnderTest(store, 0)
	_, err := svc.Save(context.Background(), "client-1", SaveRequest{ClimberWeight: "70", BelayerWeight: "60"})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), "client-1"))
	listed, err := svc.List(context.Background(), "client-1")
	require.NoError(t, err)
	require.Empty(t, listed)
}

func TestServiceListTreatsCorruptDataAsEmpty(t *testing.T) {
	store := newMapStore()
	store.data["client-1/"+StorageKey] = "{not json"
	svc := newServiceUnderTest(store, 0)

	listed, err := svc.List(context.Background(), "client-1")
	require.NoError(t, err)
	require.Empty(t, listed)

	saved, err := svc.Save(context.Background(), "client-1", SaveRequest{ClimberWeight: "70", BelayerWeight: "60"})
	require.NoError(t, err)
	require.Len(t, saved, 1)
}

func TestServiceStorageFailure(t *testing.T) {
	store := newMapStore()
	store.err = errors.New("valkey down")
	svc := newServiceUnderTest(store, 0)

	_, err := svc.List(context.Background(), "client-1")
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
	_, err = svc.Save(context.Background(), "client-1", SaveRequest{ClimberWeight: "70", BelayerWeight: "60"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
	require.True(t, apperrors.IsCode(svc.Clear(context.Background(), "client-1"), apperrors.CodeStorage))
}

var fixedNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func newServiceUnderTest(store *mapStore, limit int) Service {
	svc := NewService(Config{Limit: limit}, store, noopRecorder{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.(*service).now = func() time.Time { return fixedNow }
	return svc
}

type noopRecorder struct{}

func (noopRecorder) ObservePairSaved() {}

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
