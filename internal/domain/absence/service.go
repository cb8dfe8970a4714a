package absence

import (
	"context"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
)

type AbsenceService interface {
	List(ctx context.Context, actor user.Actor, query ListQuery) ([]AbsenceRequestResponse, error)
	GetByID(ctx context.Context, actor user.Actor, id string) (AbsenceRequestResponse, error)
	Create(ctx context.Context, actor user.Actor, req CreateAbsenceRequest) (AbsenceRequestResponse, error)
	Update(ctx context.Context, actor user.Actor, req UpdateAbsenceRequest) (AbsenceRequestResponse, error)
	Delete(ctx context.Context, actor user.Actor, id string) error

	UpdateStatus(ctx context.Context, actor user.Actor, req UpdateStatusRequest) (AbsenceRequestResponse, error)
	AdminCreate(ctx context.Context, actor user.Actor, req AdminCreateAbsenceRequest) (AbsenceRequestResponse, error)
	AdminUpdate(ctx context.Context, actor user.Actor, req AdminUpdateAbsenceRequest) (AbsenceRequestResponse, error)
	AdminDelete(ctx context.Context, actor user.Actor, id string) error
	PendingCount(ctx context.Context) (PendingCountResponse, error)
}
