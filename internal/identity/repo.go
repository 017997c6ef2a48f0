package identity

import (
	"context"
	"sync"

	"github.com/google/uuid"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
)

// Repository is the in-memory user collection. Users never change or
// disappear mid-session, so reads hand out copies and writes only happen
// at seed time.
type Repository struct {
	mu      sync.RWMutex
	users   []User
	byID    map[uuid.UUID]User
	byPhone map[string]User
}

func NewRepository() *Repository {
	return &Repository{
		byID:    make(map[uuid.UUID]User),
		byPhone: make(map[string]User),
	}
}

// Seed inserts users, replacing any prior entry with the same id or phone.
func (r *Repository) Seed(users ...User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range users {
		r.users = append(r.users, u)
		r.byID[u.ID] = u
		r.byPhone[u.Phone] = u
	}
}

// FindByPhone resolves the login key (exact match).
func (r *Repository) FindByPhone(ctx context.Context, phone string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byPhone[phone]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return &u, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return &u, nil
}

// List returns all users in seed insertion order.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]User, len(r.users))
	copy(out, r.users)
	return out, nil
}
