package ports

import (
	"context"

	"github.com/moodjournal/journal-api/internal/core/domain"
)

// JournalRepository holds each user's entries.
type JournalRepository interface {
	// Prepend makes a fully built entry visible at the head of the user's list.
	Prepend(ctx context.Context, userID string, entry domain.JournalEntry)
	// List returns a snapshot, most recently inserted first.
	List(ctx context.Context, userID string) []domain.JournalEntry
}
