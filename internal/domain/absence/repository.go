package absence

import (
	"context"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
)

type AbsenceRequestRepository interface {
	Create(ctx context.Context, req AbsenceRequest) (AbsenceRequest, error)
	GetByID(ctx context.Context, id string) (AbsenceRequest, error)
	List(ctx context.Context, filter Filter) ([]AbsenceRequest, error)
	Count(ctx context.Context, filter Filter) (int, error)
	CountByStatus(ctx context.Context, userID string) (map[Status]int, error)
	Update(ctx context.Context, req AbsenceRequest) (AbsenceRequest, error)
	SetCalendarEventID(ctx context.Context, id string, eventID *string) error
	Delete(ctx context.Context, id string) error
}

// Filter narrows absence request queries. Zero values mean "no constraint".
type Filter struct {
	UserID string
	Type   Type
	Status Status

	Period *leave.Period
	Match  leave.Match

	ActiveOwnersOnly     bool
	WithoutCalendarEvent bool
	// OldestFirst orders by start date instead of newest creation first.
	OldestFirst bool

	Limit  uint64
	Offset uint64
}
