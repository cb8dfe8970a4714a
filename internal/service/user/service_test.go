package user

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/testutil/fakes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func ptr[T any](v T) *T {
	return &v
}

func seedUsers() []user.User {
	return []user.User{
		{ID: "admin-1", Email: "admin@example.com", FirstName: "Ada", LastName: "Admin", Role: user.RoleAdmin, IsActive: true, AnnualLeaveDays: 25},
		{ID: "user-1", Email: "alice@example.com", FirstName: "Alice", LastName: "Martin", Role: user.RoleUser, IsActive: true, AnnualLeaveDays: 25},
		{ID: "user-2", Email: "bob@example.com", FirstName: "Bob", LastName: "Durand", Role: user.RoleUser, IsActive: true, AnnualLeaveDays: 25},
	}
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	repo := fakes.NewUsers(seedUsers()...)
	tx := &fakes.Transactor{}
	svc := NewUserService(repo, tx)

	t.Run("defaults", func(t *testing.T) {
		resp, err := svc.Create(ctx, user.CreateUserRequest{
			Email:     "carol@example.com",
			Password:  "password123",
			FirstName: "Carol",
			LastName:  "Petit",
		})
		require.NoError(t, err)
		assert.Equal(t, "user", resp.Role)
		assert.True(t, resp.IsActive)
		assert.Equal(t, user.DefaultAnnualLeaveDays, resp.AnnualLeaveDays)

		stored, err := repo.GetByEmail(ctx, "carol@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "password123", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
		assert.Equal(t, 1, tx.Calls)
	})

	t.Run("explicit fields", func(t *testing.T) {
		resp, err := svc.Create(ctx, user.CreateUserRequest{
			Email:           "dan@example.com",
			Password:        "password123",
			FirstName:       "Dan",
			LastName:        "Roux",
			Role:            "admin",
			IsActive:        ptr(false),
			AnnualLeaveDays: ptr(30),
		})
		require.NoError(t, err)
		assert.Equal(t, "admin", resp.Role)
		assert.False(t, resp.IsActive)
		assert.Equal(t, 30, resp.AnnualLeaveDays)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Create(ctx, user.CreateUserRequest{
			Email:     "alice@example.com",
			Password:  "password123",
			FirstName: "Alice",
			LastName:  "Again",
		})
		assert.ErrorIs(t, err, user.ErrUserEmailExists)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(fakes.NewUsers(seedUsers()...), &fakes.Transactor{})

	t.Run("partial update", func(t *testing.T) {
		resp, err := svc.Update(ctx, "admin-1", user.UpdateUserRequest{
			ID:              "user-1",
			LastName:        ptr("Bernard"),
			AnnualLeaveDays: ptr(28),
		})
		require.NoError(t, err)
		assert.Equal(t, "Alice", resp.FirstName)
		assert.Equal(t, "Bernard", resp.LastName)
		assert.Equal(t, 28, resp.AnnualLeaveDays)
		assert.Equal(t, "alice@example.com", resp.Email)
	})

	t.Run("self modification", func(t *testing.T) {
		_, err := svc.Update(ctx, "admin-1", user.UpdateUserRequest{ID: "admin-1", FirstName: ptr("Me")})
		assert.ErrorIs(t, err, user.ErrCannotModifySelf)
	})

	t.Run("email taken", func(t *testing.T) {
		_, err := svc.Update(ctx, "admin-1", user.UpdateUserRequest{ID: "user-1", Email: ptr("bob@example.com")})
		assert.ErrorIs(t, err, user.ErrUserEmailExists)
	})

	t.Run("same email is not a conflict", func(t *testing.T) {
		_, err := svc.Update(ctx, "admin-1", user.UpdateUserRequest{ID: "user-2", Email: ptr("bob@example.com")})
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Update(ctx, "admin-1", user.UpdateUserRequest{ID: "missing", FirstName: ptr("X")})
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	repo := fakes.NewUsers(seedUsers()...)
	repo.ReferencedBy(func(id string) bool { return id == "user-2" })
	svc := NewUserService(repo, &fakes.Transactor{})

	assert.ErrorIs(t, svc.Delete(ctx, "admin-1", "admin-1"), user.ErrCannotDeleteSelf)
	assert.ErrorIs(t, svc.Delete(ctx, "admin-1", "user-2"), user.ErrUserHasAbsences)
	assert.ErrorIs(t, svc.Delete(ctx, "admin-1", "missing"), user.ErrUserNotFound)

	require.NoError(t, svc.Delete(ctx, "admin-1", "user-1"))
	_, err := svc.GetByID(ctx, "user-1")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	svc := NewUserService(fakes.NewUsers(seedUsers()...), &fakes.Transactor{})

	all, err := svc.List(context.Background(), user.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Admin", all[0].LastName)
	assert.Equal(t, "Durand", all[1].LastName)

	paged, err := svc.List(context.Background(), user.ListFilter{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "Durand", paged[0].LastName)
}
