package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Dosada05/matchup-generator/models"
	"github.com/Dosada05/matchup-generator/settings"
)

// ValidationError carries per-field messages. It matches ErrValidationFailed
// with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

type SettingsService interface {
	// Load never fails because of stored data: malformed values and an
	// unavailable store both fall back to defaults.
	Load(ctx context.Context, sessionID string) (models.Settings, error)
	Save(ctx context.Context, sessionID string, s models.Settings) (models.Settings, error)
}

type settingsService struct {
	store  settings.Store
	logger *slog.Logger
}

func NewSettingsService(store settings.Store, logger *slog.Logger) SettingsService {
	return &settingsService{store: store, logger: logger}
}

func (s *settingsService) Load(ctx context.Context, sessionID string) (models.Settings, error) {
	if sessionID == "" {
		return models.Settings{}, ErrSessionRequired
	}
	loaded, err := s.store.Load(ctx, sessionID)
	if err != nil {
		s.logger.WarnContext(ctx, "settings store unavailable, using defaults",
			slog.String("session_id", sessionID), slog.Any("error", err))
		return models.DefaultSettings(), nil
	}
	return loaded, nil
}

func (s *settingsService) Save(ctx context.Context, sessionID string, in models.Settings) (models.Settings, error) {
	if sessionID == "" {
		return models.Settings{}, ErrSessionRequired
	}
	if fields := settings.Validate(in); fields != nil {
		return models.Settings{}, &ValidationError{Fields: fields}
	}
	if err := s.store.Save(ctx, sessionID, in); err != nil {
		s.logger.ErrorContext(ctx, "failed to save settings", slog.String("session_id", sessionID), slog.Any("error", err))
		return models.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return in, nil
}
