package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-backend-go/internal/testutil/fakes"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret    = "test-secret-key-for-jwt"
	testAccessExp = "1h"
	testPassword  = "password123"
)

func newTestAuthService(t *testing.T, users ...user.User) (auth.AuthService, jwt.Service) {
	t.Helper()
	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp)
	require.NoError(t, err)
	return NewAuthService(fakes.NewUsers(users...), jwtService), jwtService
}

func testUser(t *testing.T, id, email string, active bool) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return user.User{
		ID:              id,
		Email:           email,
		PasswordHash:    string(hash),
		FirstName:       "Alice",
		LastName:        "Martin",
		Role:            user.RoleUser,
		IsActive:        active,
		AnnualLeaveDays: user.DefaultAnnualLeaveDays,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, jwtService := newTestAuthService(t, testUser(t, "user-1", "alice@example.com", true))

		resp, err := svc.Login(ctx, auth.LoginRequest{Email: "alice@example.com", Password: testPassword})
		require.NoError(t, err)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotZero(t, resp.ExpiresAt)
		assert.Equal(t, "alice@example.com", resp.User.Email)

		token, err := jwtauth.VerifyToken(jwtService.JWTAuth(), resp.AccessToken)
		require.NoError(t, err)
		claims := token.PrivateClaims()
		assert.Equal(t, "user-1", claims[jwt.ClaimUserID])
		assert.Equal(t, "user", claims[jwt.ClaimRole])
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: testPassword})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newTestAuthService(t, testUser(t, "user-1", "alice@example.com", true))

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "alice@example.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		svc, _ := newTestAuthService(t, testUser(t, "user-1", "alice@example.com", false))

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "alice@example.com", Password: testPassword})
		assert.ErrorIs(t, err, auth.ErrAccountInactive)
	})

	t.Run("repository failure", func(t *testing.T) {
		jwtService, err := jwt.NewJWTService(testSecret, testAccessExp)
		require.NoError(t, err)
		users := fakes.NewUsers()
		users.Err = errors.New("connection refused")
		svc := NewAuthService(users, jwtService)

		_, err = svc.Login(ctx, auth.LoginRequest{Email: "alice@example.com", Password: testPassword})
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t,
		testUser(t, "user-1", "alice@example.com", true),
		testUser(t, "user-2", "gone@example.com", false),
	)

	me, err := svc.Me(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", me.ID)
	assert.Equal(t, 25, me.AnnualLeaveDays)

	_, err = svc.Me(ctx, "user-2")
	assert.ErrorIs(t, err, auth.ErrAccountInactive)

	_, err = svc.Me(ctx, "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
