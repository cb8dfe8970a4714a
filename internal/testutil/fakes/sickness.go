package fakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/sickness"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

type SicknessDeclarations struct {
	mu           sync.Mutex
	users        *Users
	declarations map[string]sickness.SicknessDeclaration
	Err          error
}

func NewSicknessDeclarations(users *Users, seed ...sickness.SicknessDeclaration) *SicknessDeclarations {
	r := &SicknessDeclarations{users: users, declarations: make(map[string]sickness.SicknessDeclaration)}
	for _, d := range seed {
		r.declarations[d.ID] = d
	}
	return r
}

func (r *SicknessDeclarations) withOwner(d sickness.SicknessDeclaration) (sickness.SicknessDeclaration, bool) {
	owner, err := r.users.GetByID(context.Background(), d.UserID)
	if err != nil {
		return d, false
	}
	d.OwnerFirstName, d.OwnerLastName, d.OwnerEmail = owner.FirstName, owner.LastName, owner.Email
	return d, owner.IsActive
}

func (r *SicknessDeclarations) Create(ctx context.Context, d sickness.SicknessDeclaration) (sickness.SicknessDeclaration, error) {
	if _, err := r.users.GetByID(ctx, d.UserID); err != nil {
		return sickness.SicknessDeclaration{}, user.ErrUserNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return sickness.SicknessDeclaration{}, r.Err
	}
	if d.ID == "" {
		d.ID = uuid.Must(uuid.NewV7()).String()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	d.UpdatedAt = d.CreatedAt
	r.declarations[d.ID] = d
	out, _ := r.withOwner(d)
	return out, nil
}

func (r *SicknessDeclarations) GetByID(ctx context.Context, id string) (sickness.SicknessDeclaration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return sickness.SicknessDeclaration{}, r.Err
	}
	d, ok := r.declarations[id]
	if !ok {
		return sickness.SicknessDeclaration{}, sickness.ErrDeclarationNotFound
	}
	out, _ := r.withOwner(d)
	return out, nil
}

func (r *SicknessDeclarations) List(ctx context.Context, filter sickness.Filter) ([]sickness.SicknessDeclaration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []sickness.SicknessDeclaration
	for _, d := range r.declarations {
		withOwner, active := r.withOwner(d)
		if filter.ActiveOwnersOnly && !active {
			continue
		}
		if filter.UserID != "" && d.UserID != filter.UserID {
			continue
		}
		if filter.Unviewed && d.ViewedByAdmin {
			continue
		}
		if !matchPeriod(filter.Period, filter.Match, d.StartDate, d.EndDate) {
			continue
		}
		out = append(out, withOwner)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if filter.OldestFirst {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return page(out, filter.Offset, filter.Limit), nil
}

func (r *SicknessDeclarations) Count(ctx context.Context, filter sickness.Filter) (int, error) {
	filter.Limit, filter.Offset = 0, 0
	list, err := r.List(ctx, filter)
	return len(list), err
}

func (r *SicknessDeclarations) MarkEmailSent(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.declarations[id]
	if !ok {
		return sickness.ErrDeclarationNotFound
	}
	d.EmailSent = true
	r.declarations[id] = d
	return nil
}

func (r *SicknessDeclarations) MarkViewed(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.declarations[id]
	if !ok {
		return false, sickness.ErrDeclarationNotFound
	}
	if d.ViewedByAdmin {
		return false, nil
	}
	d.ViewedByAdmin = true
	r.declarations[id] = d
	return true, nil
}
