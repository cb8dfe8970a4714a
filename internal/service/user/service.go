package user

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
	tx database.Transactor
}

func NewUserService(userRepository user.UserRepository, tx database.Transactor) user.UserService {
	return &UserServiceImpl{UserRepository: userRepository, tx: tx}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.ListFilter) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}
	return responses, nil
}

// GetByID implements user.UserService.
func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	hash, err := hashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, err
	}

	newUser := user.User{
		Email:           req.Email,
		PasswordHash:    hash,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Role:            user.RoleUser,
		IsActive:        true,
		AnnualLeaveDays: user.DefaultAnnualLeaveDays,
	}
	if req.Role != "" {
		newUser.Role = user.Role(req.Role)
	}
	if req.IsActive != nil {
		newUser.IsActive = *req.IsActive
	}
	if req.AnnualLeaveDays != nil {
		newUser.AnnualLeaveDays = *req.AnnualLeaveDays
	}

	var created user.User
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.UserRepository.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return user.ErrUserEmailExists
		}
		created, err = s.UserRepository.Create(ctx, newUser)
		return err
	})
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(created), nil
}

// Update implements user.UserService. Admins cannot change their own account here.
func (s *UserServiceImpl) Update(ctx context.Context, actorID string, req user.UpdateUserRequest) (user.UserResponse, error) {
	if req.ID == actorID {
		return user.UserResponse{}, user.ErrCannotModifySelf
	}

	var passwordHash string
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return user.UserResponse{}, err
		}
		passwordHash = hash
	}

	var updated user.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.UserRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if req.Email != nil && *req.Email != existing.Email {
			exists, err := s.UserRepository.ExistsByEmail(ctx, *req.Email)
			if err != nil {
				return fmt.Errorf("failed to check email: %w", err)
			}
			if exists {
				return user.ErrUserEmailExists
			}
			existing.Email = *req.Email
		}
		if passwordHash != "" {
			existing.PasswordHash = passwordHash
		}
		if req.FirstName != nil {
			existing.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			existing.LastName = *req.LastName
		}
		if req.Role != nil {
			existing.Role = user.Role(*req.Role)
		}
		if req.IsActive != nil {
			existing.IsActive = *req.IsActive
		}
		if req.AnnualLeaveDays != nil {
			existing.AnnualLeaveDays = *req.AnnualLeaveDays
		}

		updated, err = s.UserRepository.Update(ctx, existing)
		return err
	})
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(updated), nil
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, actorID string, id string) error {
	if id == actorID {
		return user.ErrCannotDeleteSelf
	}
	return s.UserRepository.Delete(ctx, id)
}
