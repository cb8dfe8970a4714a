package sickness

import (
	"context"
	"io"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
)

type SicknessService interface {
	List(ctx context.Context, actor user.Actor, query ListQuery) ([]DeclarationResponse, error)
	GetByID(ctx context.Context, actor user.Actor, id string) (DeclarationResponse, error)
	Create(ctx context.Context, actor user.Actor, req CreateDeclarationRequest) (DeclarationResponse, error)
	OpenDocument(ctx context.Context, actor user.Actor, id string) (io.ReadCloser, string, error)
	MarkViewed(ctx context.Context, actor user.Actor, id string) (DeclarationResponse, error)
	ResendEmail(ctx context.Context, actor user.Actor, id string) (DeclarationResponse, error)
	UnviewedCount(ctx context.Context) (int, error)
}
