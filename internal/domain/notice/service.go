package notice

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/yanqian/belaycheck/internal/domain/kv"
	apperrors "github.com/yanqian/belaycheck/pkg/errors"
)

//go:embed changelog.json
var changelogJSON []byte

// Service exposes the "what's new" and install prompt state of a client.
type Service interface {
	Status(ctx context.Context, clientID string) (Status, error)
	AcknowledgeUpdate(ctx context.Context, clientID string) error
	DismissInstallPrompt(ctx context.Context, clientID string) error
	Changelog() []Entry
}

type service struct {
	cfg       Config
	store     kv.Store
	changelog []Entry
	logger    *slog.Logger
}

// NewService loads the embedded changelog and wires up the notice domain.
func NewService(cfg Config, store kv.Store, logger *slog.Logger) (Service, error) {
	entries, err := parseChangelog(changelogJSON)
	if err != nil {
		return nil, fmt.Errorf("load changelog: %w", err)
	}
	if strings.TrimSpace(cfg.CurrentVersion) == "" && len(entries) > 0 {
		cfg.CurrentVersion = entries[0].Version
	}
	return &service{
		cfg:       cfg,
		store:     store,
		changelog: entries,
		logger:    logger.With("component", "notice.service"),
	}, nil
}

func (s *service) Status(ctx context.Context, clientID string) (Status, error) {
	if strings.TrimSpace(clientID) == "" {
		return Status{}, apperrors.Wrap(apperrors.CodeInvalidInput, "client id cannot be empty", nil)
	}
	status := Status{CurrentVersion: s.cfg.CurrentVersion}
	if entry, ok := s.entryFor(s.cfg.CurrentVersion); ok {
		status.Latest = &entry
	}

	raw, found, err := s.store.Get(ctx, clientID, UpdateInfoKey)
	if err != nil {
		return Status{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load update info", err)
	}
	status.ShowUpdate = true
	if found {
		var info UpdateInfo
		if err := json.Unmarshal([]byte(raw), &info); err != nil {
			s.logger.Warn("ignoring undecodable update info", "client_id", clientID, "error", err)
		} else if info.Version == s.cfg.CurrentVersion {
			status.ShowUpdate = false
		}
	}

	dismissed, found, err := s.store.Get(ctx, clientID, InstallDismissedKey)
	if err != nil {
		return Status{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load install prompt state", err)
	}
	status.InstallPromptDismissed = found && dismissed == "true"
	return status, nil
}

func (s *service) AcknowledgeUpdate(ctx context.Context, clientID string) error {
	if strings.TrimSpace(clientID) == "" {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "client id cannot be empty", nil)
	}
	payload, err := json.Marshal(UpdateInfo{Version: s.cfg.CurrentVersion, Closed: true})
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to encode update info", err)
	}
	if err := s.store.Set(ctx, clientID, UpdateInfoKey, string(payload)); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to store update info", err)
	}
	s.logger.Info("update notice acknowledged", "client_id", clientID, "version", s.cfg.CurrentVersion)
	return nil
}

func (s *service) DismissInstallPrompt(ctx context.Context, clientID string) error {
	if strings.TrimSpace(clientID) == "" {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "client id cannot be empty", nil)
	}
	if err := s.store.Set(ctx, clientID, InstallDismissedKey, "true"); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to store install prompt state", err)
	}
	return nil
}

func (s *service) Changelog() []Entry {
	out := make([]Entry, len(s.changelog))
	for i, entry := range s.changelog {
		entry.Changes = append([]string(nil), entry.Changes...)
		out[i] = entry
	}
	return out
}

func (s *service) entryFor(version string) (Entry, bool) {
	for _, entry := range s.changelog {
		if entry.Version == version {
			entry.Changes = append([]string(nil), entry.Changes...)
			return entry, true
		}
	}
	return Entry{}, false
}

// parseChangelog decodes entries and orders them newest first by date.
func parseChangelog(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	for i, entry := range entries {
		if strings.TrimSpace(entry.Version) == "" {
			return nil, fmt.Errorf("entry %d has no version", i)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries, nil
}
