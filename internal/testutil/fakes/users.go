// Package fakes holds in-memory repositories and collaborators for service tests.
package fakes

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

type Users struct {
	mu    sync.Mutex
	users map[string]user.User
	// referenced reports whether a user still owns records, emulating the foreign key.
	referenced func(id string) bool
	Err        error
}

func NewUsers(seed ...user.User) *Users {
	r := &Users{users: make(map[string]user.User)}
	for _, u := range seed {
		r.users[u.ID] = u
	}
	return r
}

// ReferencedBy makes Delete fail with ErrUserHasAbsences while fn reports true.
func (r *Users) ReferencedBy(fn func(id string) bool) {
	r.referenced = fn
}

func (r *Users) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return user.User{}, r.Err
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, newUser.Email) {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	if newUser.ID == "" {
		newUser.ID = uuid.Must(uuid.NewV7()).String()
	}
	now := time.Now()
	newUser.CreatedAt, newUser.UpdatedAt = now, now
	r.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *Users) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return user.User{}, r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *Users) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return user.User{}, r.Err
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *Users) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == user.ErrUserNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *Users) List(ctx context.Context, filter user.ListFilter) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return page(out, filter.Offset, filter.Limit), nil
}

func (r *Users) ListAdmins(ctx context.Context) ([]user.User, error) {
	all, err := r.List(ctx, user.ListFilter{})
	if err != nil {
		return nil, err
	}
	var admins []user.User
	for _, u := range all {
		if u.IsAdmin() && u.IsActive {
			admins = append(admins, u)
		}
	}
	return admins, nil
}

func (r *Users) Update(ctx context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return user.User{}, r.Err
	}
	existing, ok := r.users[u.ID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	for id, other := range r.users {
		if id != u.ID && strings.EqualFold(other.Email, u.Email) {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now()
	r.users[u.ID] = u
	return u, nil
}

func (r *Users) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	if r.referenced != nil && r.referenced(id) {
		return user.ErrUserHasAbsences
	}
	delete(r.users, id)
	return nil
}

func page[T any](items []T, offset, limit uint64) []T {
	if offset >= uint64(len(items)) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < uint64(len(items)) {
		items = items[:limit]
	}
	return items
}
