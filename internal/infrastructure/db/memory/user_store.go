// Package memory holds the process-lifetime stores behind the journal API.
// Every store owns its synchronisation; nothing here survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/moodjournal/journal-api/internal/core/domain"
)

// UserStore keeps users in a sync.Map so lookups of existing ids never take a
// lock and first inserts are atomic per id.
type UserStore struct {
	users sync.Map // id -> domain.User
}

func NewUserStore() *UserStore {
	return &UserStore{}
}

func (s *UserStore) FindByID(_ context.Context, id string) (*domain.User, bool) {
	v, ok := s.users.Load(id)
	if !ok {
		return nil, false
	}
	u := v.(domain.User)
	return &u, true
}

func (s *UserStore) CreateIfAbsent(_ context.Context, user domain.User) (domain.User, bool) {
	v, loaded := s.users.LoadOrStore(user.ID, user)
	return v.(domain.User), !loaded
}

func (s *UserStore) List(_ context.Context) []domain.User {
	out := make([]domain.User, 0)
	s.users.Range(func(_, v any) bool {
		out = append(out, v.(domain.User))
		return true
	})
	return out
}
