package memory

import (
	"context"
	"sync"

	"github.com/moodjournal/journal-api/internal/core/domain"
)

// JournalStore keeps each user's entries in insertion order and serves them
// reversed, which gives head-insert semantics with an O(1) write.
type JournalStore struct {
	mu      sync.RWMutex
	entries map[string][]domain.JournalEntry
}

func NewJournalStore() *JournalStore {
	return &JournalStore{entries: make(map[string][]domain.JournalEntry)}
}

// Prepend publishes a fully built entry. Concurrent writers are serialised.
func (s *JournalStore) Prepend(_ context.Context, userID string, entry domain.JournalEntry) {
	s.mu.Lock()
	s.entries[userID] = append(s.entries[userID], entry)
	s.mu.Unlock()
}

// List returns a fresh slice, newest insert first. Callers may keep or
// modify it freely.
func (s *JournalStore) List(_ context.Context, userID string) []domain.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.entries[userID]
	out := make([]domain.JournalEntry, len(stored))
	for i, e := range stored {
		out[len(stored)-1-i] = e
	}
	return out
}
