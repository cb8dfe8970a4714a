package calendarsync

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/absence"
)

var ErrSyncDisabled = errors.New("google calendar sync is not configured")

type CalendarSyncService interface {
	Status(ctx context.Context) (StatusResponse, error)
	SyncAll(ctx context.Context) (SyncResult, error)
}

// EventPublisher mirrors absence requests as events on the shared calendar.
type EventPublisher interface {
	CreateEvent(ctx context.Context, a absence.AbsenceRequest) (string, error)
	UpdateEvent(ctx context.Context, eventID string, a absence.AbsenceRequest) error
	DeleteEvent(ctx context.Context, eventID string) error
}
