package ports

import (
	"context"

	"github.com/moodjournal/journal-api/internal/core/domain"
)

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(user domain.User) (string, error)
	Verify(token string) (domain.User, error)
}

// UserRegistry resolves identities to user records.
type UserRegistry interface {
	ResolveOrCreate(ctx context.Context, email, displayName string) (domain.User, error)
	LookupDemo(username string) (domain.User, error)
	List(ctx context.Context) []domain.User
}

// CallbackInput carries the query parameters of the provider's redirect back.
type CallbackInput struct {
	State string
	Code  string
	Error string
}

// FederationService drives one OAuth login attempt.
type FederationService interface {
	Begin(ctx context.Context) (string, error)
	Complete(ctx context.Context, in CallbackInput) domain.FederationResult
}
