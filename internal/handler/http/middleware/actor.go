package middleware

import (
	"context"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// ActorFromContext reads the caller identity from the verified JWT claims.
func ActorFromContext(ctx context.Context) (user.Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Actor{}, auth.ErrInvalidToken
	}

	userID, ok := claims[jwt.ClaimUserID].(string)
	if !ok || userID == "" {
		return user.Actor{}, auth.ErrInvalidToken
	}
	role, _ := claims[jwt.ClaimRole].(string)

	return user.Actor{UserID: userID, Role: user.Role(role)}, nil
}
