package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/moodjournal/journal-api/internal/core/domain"
	"github.com/moodjournal/journal-api/internal/core/ports"
)

// demoUsers are the fixed, non-federated identities behind the demo login.
var demoUsers = map[string]domain.User{
	"demo":  {ID: "user-1", DisplayName: "demo", IsAdmin: false},
	"admin": {ID: "user-2", DisplayName: "admin", IsAdmin: true},
}

// UserRegistry is the single writer of user records.
type UserRegistry struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

// NewUserRegistry seeds repo with the demo identities so they show up in
// listings alongside federated users.
func NewUserRegistry(ctx context.Context, repo ports.UserRepository, log zerolog.Logger) *UserRegistry {
	for _, u := range demoUsers {
		repo.CreateIfAbsent(ctx, u)
	}
	return &UserRegistry{repo: repo, log: log}
}

// ResolveOrCreate maps a verified email to its user, creating a non-admin
// record on first sight. An existing record is returned as stored; its
// display name is not refreshed.
func (r *UserRegistry) ResolveOrCreate(ctx context.Context, email, displayName string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.User{}, fmt.Errorf("resolve user: %w: empty email", domain.ErrFederation)
	}

	id := domain.FederatedUserID(email)
	if u, ok := r.repo.FindByID(ctx, id); ok {
		return *u, nil
	}

	stored, created := r.repo.CreateIfAbsent(ctx, domain.User{
		ID:          id,
		DisplayName: domain.FallbackDisplayName(email, displayName),
		IsAdmin:     false,
	})
	if created {
		r.log.Info().Str("user_id", stored.ID).Msg("federated user created")
	}
	return stored, nil
}

// LookupDemo resolves one of the fixed demo usernames.
func (r *UserRegistry) LookupDemo(username string) (domain.User, error) {
	u, ok := demoUsers[username]
	if !ok {
		return domain.User{}, &domain.UnknownUserError{Username: username, Allowed: DemoUsernames()}
	}
	return u, nil
}

// List returns every known user sorted by id.
func (r *UserRegistry) List(ctx context.Context) []domain.User {
	users := r.repo.List(ctx)
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// DemoUsernames returns the accepted demo login names in sorted order.
func DemoUsernames() []string {
	names := make([]string, 0, len(demoUsers))
	for name := range demoUsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
