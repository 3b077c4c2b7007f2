package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "oauth_state:"

// StateStore keeps outstanding OAuth state values in Redis so any instance
// can finish a login another one started.
// Key format: oauth_state:<state>
type StateStore struct {
	client *redis.Client
}

// NewStateStore creates a StateStore wrapping the given Redis client.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Save records state until ttl elapses.
func (s *StateStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(state), "1", ttl).Err(); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Consume atomically reads and deletes state, so a value is honoured once.
func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	err := s.client.GetDel(ctx, s.key(state)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume state: %w", err)
	}
	return true, nil
}

func (s *StateStore) key(state string) string {
	return stateKeyPrefix + state
}
