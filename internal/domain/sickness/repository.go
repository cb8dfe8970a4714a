package sickness

import (
	"context"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
)

type SicknessDeclarationRepository interface {
	Create(ctx context.Context, d SicknessDeclaration) (SicknessDeclaration, error)
	GetByID(ctx context.Context, id string) (SicknessDeclaration, error)
	List(ctx context.Context, filter Filter) ([]SicknessDeclaration, error)
	Count(ctx context.Context, filter Filter) (int, error)
	MarkEmailSent(ctx context.Context, id string) error
	// MarkViewed flips viewed_by_admin and reports whether this call was the first view.
	MarkViewed(ctx context.Context, id string) (bool, error)
}

type Filter struct {
	UserID string

	Period *leave.Period
	Match  leave.Match

	ActiveOwnersOnly bool
	Unviewed         bool
	OldestFirst      bool

	Limit  uint64
	Offset uint64
}
