package ports

import (
	"context"

	"github.com/moodjournal/journal-api/internal/core/domain"
)

// SettingsRepository holds one settings record per user.
type SettingsRepository interface {
	// GetOrCreate returns the stored record, inserting def atomically if none exists.
	GetOrCreate(ctx context.Context, userID string, def domain.Settings) domain.Settings
	Put(ctx context.Context, userID string, s domain.Settings)
}
