package ports

import (
	"context"
	"time"
)

// StateStore remembers the OAuth state values handed out at login start.
type StateStore interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	// Consume reports whether state was outstanding and removes it.
	Consume(ctx context.Context, state string) (bool, error)
}
