package user

import "context"

type UserService interface {
	List(ctx context.Context, filter ListFilter) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, actorID string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, actorID string, id string) error
}
