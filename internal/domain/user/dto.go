package user

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Role            string `json:"role"`
	IsActive        bool   `json:"is_active"`
	AnnualLeaveDays int    `json:"annual_leave_days"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            string(u.Role),
		IsActive:        u.IsActive,
		AnnualLeaveDays: u.AnnualLeaveDays,
		CreatedAt:       u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       u.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateUserRequest represents request to create a new user
type CreateUserRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	FirstName       string `json:"first_name" validate:"required,max=100"`
	LastName        string `json:"last_name" validate:"required,max=100"`
	Role            string `json:"role" validate:"omitempty,oneof=user admin"`
	IsActive        *bool  `json:"is_active,omitempty"`
	AnnualLeaveDays *int   `json:"annual_leave_days,omitempty" validate:"omitempty,min=0,max=366"`
}

func (r *CreateUserRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	return validator.Struct(r).Err()
}

// UpdateUserRequest represents a partial update of a user, applied by an admin
type UpdateUserRequest struct {
	ID              string  `json:"-"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Password        *string `json:"password,omitempty" validate:"omitempty,min=8"`
	FirstName       *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName        *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Role            *string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
	IsActive        *bool   `json:"is_active,omitempty"`
	AnnualLeaveDays *int    `json:"annual_leave_days,omitempty" validate:"omitempty,min=0,max=366"`
}

func (r *UpdateUserRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &normalized
	}
	return errs.Err()
}
