package fakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

// AbsenceRequests joins owner details from Users the way the SQL repository joins the users table.
type AbsenceRequests struct {
	mu       sync.Mutex
	users    *Users
	requests map[string]absence.AbsenceRequest
	Err      error
}

func NewAbsenceRequests(users *Users, seed ...absence.AbsenceRequest) *AbsenceRequests {
	r := &AbsenceRequests{users: users, requests: make(map[string]absence.AbsenceRequest)}
	for _, a := range seed {
		r.requests[a.ID] = a
	}
	return r
}

// HasUser reports whether any request belongs to userID.
func (r *AbsenceRequests) HasUser(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.requests {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

func (r *AbsenceRequests) withOwner(a absence.AbsenceRequest) (absence.AbsenceRequest, bool) {
	owner, err := r.users.GetByID(context.Background(), a.UserID)
	if err != nil {
		return a, false
	}
	a.OwnerFirstName, a.OwnerLastName, a.OwnerEmail = owner.FirstName, owner.LastName, owner.Email
	return a, owner.IsActive
}

func (r *AbsenceRequests) Create(ctx context.Context, req absence.AbsenceRequest) (absence.AbsenceRequest, error) {
	if _, err := r.users.GetByID(ctx, req.UserID); err != nil {
		return absence.AbsenceRequest{}, user.ErrUserNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return absence.AbsenceRequest{}, r.Err
	}
	if req.ID == "" {
		req.ID = uuid.Must(uuid.NewV7()).String()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	req.UpdatedAt = req.CreatedAt
	r.requests[req.ID] = req
	out, _ := r.withOwner(req)
	return out, nil
}

func (r *AbsenceRequests) GetByID(ctx context.Context, id string) (absence.AbsenceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return absence.AbsenceRequest{}, r.Err
	}
	a, ok := r.requests[id]
	if !ok {
		return absence.AbsenceRequest{}, absence.ErrAbsenceRequestNotFound
	}
	out, _ := r.withOwner(a)
	return out, nil
}

func (r *AbsenceRequests) List(ctx context.Context, filter absence.Filter) ([]absence.AbsenceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []absence.AbsenceRequest
	for _, a := range r.requests {
		withOwner, active := r.withOwner(a)
		if filter.ActiveOwnersOnly && !active {
			continue
		}
		if !matchAbsence(a, filter) {
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

func matchAbsence(a absence.AbsenceRequest, f absence.Filter) bool {
	if f.UserID != "" && a.UserID != f.UserID {
		return false
	}
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.WithoutCalendarEvent && a.GoogleCalendarEventID != nil {
		return false
	}
	return matchPeriod(f.Period, f.Match, a.StartDate, a.EndDate)
}

func matchPeriod(p *leave.Period, m leave.Match, start, end time.Time) bool {
	if p == nil {
		return true
	}
	if m == leave.MatchContained {
		return p.Contains(start, end)
	}
	return p.Overlaps(start, end)
}

func (r *AbsenceRequests) Count(ctx context.Context, filter absence.Filter) (int, error) {
	filter.Limit, filter.Offset = 0, 0
	list, err := r.List(ctx, filter)
	return len(list), err
}

func (r *AbsenceRequests) CountByStatus(ctx context.Context, userID string) (map[absence.Status]int, error) {
	list, err := r.List(ctx, absence.Filter{UserID: userID})
	if err != nil {
		return nil, err
	}
	counts := make(map[absence.Status]int)
	for _, a := range list {
		counts[a.Status]++
	}
	return counts, nil
}

func (r *AbsenceRequests) Update(ctx context.Context, req absence.AbsenceRequest) (absence.AbsenceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return absence.AbsenceRequest{}, r.Err
	}
	existing, ok := r.requests[req.ID]
	if !ok {
		return absence.AbsenceRequest{}, absence.ErrAbsenceRequestNotFound
	}
	req.CreatedAt = existing.CreatedAt
	req.UpdatedAt = time.Now()
	r.requests[req.ID] = req
	out, _ := r.withOwner(req)
	return out, nil
}

func (r *AbsenceRequests) SetCalendarEventID(ctx context.Context, id string, eventID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	a, ok := r.requests[id]
	if !ok {
		return absence.ErrAbsenceRequestNotFound
	}
	a.GoogleCalendarEventID = eventID
	r.requests[id] = a
	return nil
}

func (r *AbsenceRequests) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.requests[id]; !ok {
		return absence.ErrAbsenceRequestNotFound
	}
	delete(r.requests, id)
	return nil
}
