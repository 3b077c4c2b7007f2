package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/moodjournal/journal-api/internal/core/domain"
	"github.com/moodjournal/journal-api/internal/core/ports"
	"github.com/moodjournal/journal-api/internal/pkg/metrics"
)

type SettingsService struct {
	repo ports.SettingsRepository
	log  zerolog.Logger
}

func NewSettingsService(repo ports.SettingsRepository, log zerolog.Logger) *SettingsService {
	return &SettingsService{repo: repo, log: log}
}

// Get returns the stored settings, storing the defaults on first access.
func (s *SettingsService) Get(ctx context.Context, userID string) domain.Settings {
	return s.repo.GetOrCreate(ctx, userID, domain.DefaultSettings())
}

// Put replaces the whole record and echoes what was written.
func (s *SettingsService) Put(ctx context.Context, userID string, settings domain.Settings) domain.Settings {
	s.repo.Put(ctx, userID, settings)
	metrics.SettingsUpdatesTotal.Inc()
	s.log.Debug().Str("user_id", userID).Str("theme", settings.Theme).Msg("settings replaced")
	return settings
}
