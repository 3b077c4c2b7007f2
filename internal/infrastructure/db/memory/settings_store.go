package memory

import (
	"context"
	"sync"

	"github.com/moodjournal/journal-api/internal/core/domain"
)

// SettingsStore holds one record per user.
type SettingsStore struct {
	mu       sync.Mutex
	settings map[string]domain.Settings
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{settings: make(map[string]domain.Settings)}
}

// GetOrCreate does the lookup and the default insert in one critical section,
// so two first reads for the same user cannot both insert.
func (s *SettingsStore) GetOrCreate(_ context.Context, userID string, def domain.Settings) domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.settings[userID]; ok {
		return cur
	}
	s.settings[userID] = def
	return def
}

func (s *SettingsStore) Put(_ context.Context, userID string, settings domain.Settings) {
	s.mu.Lock()
	s.settings[userID] = settings
	s.mu.Unlock()
}
