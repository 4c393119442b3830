package pairs

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/belaycheck/internal/domain/belay"
	"github.com/yanqian/belaycheck/internal/domain/kv"
	apperrors "github.com/yanqian/belaycheck/pkg/errors"
	"github.com/yanqian/belaycheck/pkg/util"
)

// Service manages a client's saved pairs.
type Service interface {
	List(ctx context.Context, clientID string) ([]SavedPair, error)
	Save(ctx context.Context, clientID string, req SaveRequest) ([]SavedPair, error)
	Clear(ctx context.Context, clientID string) error
}

// Recorder is notified of every saved pair.
type Recorder interface {
	ObservePairSaved()
}

type service struct {
	cfg      Config
	store    kv.Store
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the saved pairs domain.
func NewService(cfg Config, store kv.Store, recorder Recorder, logger *slog.Logger) Service {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	return &service{
		cfg:      cfg,
		store:    store,
		recorder: recorder,
		logger:   logger.With("component", "pairs.service"),
		now:      util.NowUTC,
	}
}

func (s *service) List(ctx context.Context, clientID string) ([]SavedPair, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "client id cannot be empty", nil)
	}
	return s.load(ctx, clientID)
}

func (s *service) Save(ctx context.Context, clientID string, req SaveRequest) ([]SavedPair, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "client id cannot be empty", nil)
	}
	pair, err := s.buildPair(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	updated := append(existing, pair)
	if len(updated) > s.cfg.Limit {
		updated = updated[len(updated)-s.cfg.Limit:]
	}

	payload, err := json.Marshal(updated)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to encode saved pairs", err)
	}
	if err := s.store.Set(ctx, clientID, StorageKey, string(payload)); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to store saved pairs", err)
	}
	s.recorder.ObservePairSaved()
	s.logger.Info("pair saved", "client_id", clientID, "device", pair.Device, "count", len(updated))
	return updated, nil
}

func (s *service) Clear(ctx context.Context, clientID string) error {
	if strings.TrimSpace(clientID) == "" {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "client id cannot be empty", nil)
	}
	if err := s.store.Delete(ctx, clientID, StorageKey); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to clear saved pairs", err)
	}
	s.logger.Info("pairs cleared", "client_id", clientID)
	return nil
}

func (s *service) buildPair(req SaveRequest) (SavedPair, error) {
	climber, ok := req.ClimberWeight.Positive()
	if !ok {
		return SavedPair{}, apperrors.Wrap(apperrors.CodeInvalidInput, "climber weight must be a positive number", nil)
	}
	belayer, ok := req.BelayerWeight.Positive()
	if !ok {
		return SavedPair{}, apperrors.Wrap(apperrors.CodeInvalidInput, "belayer weight must be a positive number", nil)
	}
	unit, ok := belay.ParseUnit(req.Unit)
	if !ok {
		return SavedPair{}, apperrors.Wrap(apperrors.CodeInvalidInput, "unit must be kg or lbs", nil)
	}
	device, ok := belay.ParseDevice(req.Device)
	if !ok {
		return SavedPair{}, apperrors.Wrap(apperrors.CodeInvalidInput, "unknown belay device", nil)
	}
	return SavedPair{
		Climber:   climber,
		Belayer:   belayer,
		Unit:      unit,
		Device:    device,
		UseOhm:    req.UseOhm,
		Timestamp: s.now(),
	}, nil
}

func (s *service) load(ctx context.Context, clientID string) ([]SavedPair, error) {
	raw, found, err := s.store.Get(ctx, clientID, StorageKey)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to load saved pairs", err)
	}
	if !found || strings.TrimSpace(raw) == "" {
		return []SavedPair{}, nil
	}
	var stored []SavedPair
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("discarding undecodable saved pairs", "client_id", clientID, "error", err)
		return []SavedPair{}, nil
	}
	if stored == nil {
		stored = []SavedPair{}
	}
	return stored, nil
}
