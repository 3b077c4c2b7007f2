package ports

import (
	"context"

	"github.com/moodjournal/journal-api/internal/core/domain"
)

// UserRepository stores user records keyed by id.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, bool)
	// CreateIfAbsent stores user unless its id is already taken, and returns
	// whichever record ends up stored. created reports whether user was inserted.
	CreateIfAbsent(ctx context.Context, user domain.User) (stored domain.User, created bool)
	List(ctx context.Context) []domain.User
}
