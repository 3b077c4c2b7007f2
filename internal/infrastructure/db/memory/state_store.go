package memory

import (
	"context"
	"sync"
	"time"
)

// StateStore is the single-process OAuth state store used when Redis is not
// configured. Expired values are swept lazily on Save.
type StateStore struct {
	mu     sync.Mutex
	states map[string]time.Time // state -> expiry
	now    func() time.Time
}

func NewStateStore() *StateStore {
	return &StateStore{states: make(map[string]time.Time), now: time.Now}
}

func (s *StateStore) Save(_ context.Context, state string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, exp := range s.states {
		if !now.Before(exp) {
			delete(s.states, k)
		}
	}
	s.states[state] = now.Add(ttl)
	return nil
}

func (s *StateStore) Consume(_ context.Context, state string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.states[state]
	if !ok {
		return false, nil
	}
	delete(s.states, state)
	return s.now().Before(exp), nil
}
