package ports

import (
	"context"
	"time"

	"github.com/moodjournal/journal-api/internal/core/domain"
)

// CreateEntryInput is the DTO passed from the transport layer to JournalService.
type CreateEntryInput struct {
	Text          string
	Mood          int
	EntryDatetime *time.Time // optional, defaults to now
}

// JournalService defines use-case operations on a user's journal.
type JournalService interface {
	List(ctx context.Context, userID string) []domain.JournalEntry
	Create(ctx context.Context, userID string, in CreateEntryInput) (domain.JournalEntry, error)
	MoodCalendar(ctx context.Context, userID string) []domain.MoodCalendarDay
}

// SettingsService defines use-case operations on a user's preferences.
type SettingsService interface {
	Get(ctx context.Context, userID string) domain.Settings
	Put(ctx context.Context, userID string, s domain.Settings) domain.Settings
}
