package identity

import (
	"context"
	"testing"

	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a normalized user with a hashed password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())

		var stored *identity.User
		repo.On("Create", mock.Anything, mock.AnythingOfType("*identity.User")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*identity.User)
				stored.ID = "64b7f0c2a1b2c3d4e5f60718"
			}).
			Return(nil)

		resp, err := svc.Register(ctx, RegisterRequest{
			Name:     "  Jane Doe ",
			Email:    " Jane@Example.COM ",
			Password: "secret123",
		})
		require.NoError(t, err)

		assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", resp.ID)
		assert.Equal(t, "Jane Doe", resp.Name)
		assert.Equal(t, "jane@example.com", resp.Email)
		assert.Equal(t, identity.RoleUser, resp.Role)
		assert.True(t, resp.IsActive)

		require.NotNil(t, stored)
		assert.NotEqual(t, "secret123", stored.PasswordHash)
		assert.True(t, stored.VerifyPassword("secret123"))
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		repo.On("Create", mock.Anything, mock.Anything).Return(identity.ErrEmailTaken)

		_, err := svc.Register(ctx, RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		assert.Equal(t, "User with this email already exists", err.Error())
	})

	t.Run("invalid payload reports every field", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())

		_, err := svc.Register(ctx, RegisterRequest{Email: "bad", Password: "123"})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrValidation)

		fields := map[string]string{}
		for _, v := range shared.ViolationsOf(err) {
			fields[v.Field] = v.Message
		}
		assert.Contains(t, fields, "name")
		assert.Equal(t, "Please provide a valid email", fields["email"])
		assert.Contains(t, fields, "password")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserService_List(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, zap.NewNop())

	users := make([]*identity.User, 10)
	for i := range users {
		users[i] = &identity.User{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	}
	repo.On("FindAll", mock.Anything, shared.PageRequest{Page: 2, Limit: 10}).Return(users, int64(25), nil)

	result, err := svc.List(context.Background(), shared.PageRequest{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, result.Items, 10)
	assert.Equal(t, shared.Pagination{Page: 2, Limit: 10, Total: 25, Pages: 3}, result.Pagination)
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	id := "64b7f0c2a1b2c3d4e5f60718"

	t.Run("merges fields and keeps the password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		user := newTestUser(id, "jane@example.com", "secret123")
		hash := user.PasswordHash

		repo.On("FindByID", mock.Anything, id).Return(user, nil)
		repo.On("Update", mock.Anything, user).Return(nil)

		resp, err := svc.Update(ctx, id, UpdateUserRequest{Name: strPtr("Janet"), Phone: strPtr("555-0100")})
		require.NoError(t, err)

		assert.Equal(t, "Janet", resp.Name)
		assert.Equal(t, "555-0100", resp.Phone)
		assert.Equal(t, "jane@example.com", resp.Email)
		assert.Equal(t, hash, user.PasswordHash)
		repo.AssertExpectations(t)
	})

	t.Run("invalid merge is rejected before persisting", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		user := newTestUser(id, "jane@example.com", "secret123")
		repo.On("FindByID", mock.Anything, id).Return(user, nil)

		_, err := svc.Update(ctx, id, UpdateUserRequest{Email: strPtr("not-an-email")})
		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.Equal(t, "jane@example.com", user.Email)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		repo.On("FindByID", mock.Anything, "missing").Return(nil, identity.ErrUserNotFound)

		_, err := svc.Update(ctx, "missing", UpdateUserRequest{Name: strPtr("x")})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUserService_SoftDelete(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, zap.NewNop())
	repo.On("Deactivate", mock.Anything, "a").Return(nil)
	repo.On("Deactivate", mock.Anything, "b").Return(identity.ErrUserNotFound)

	assert.NoError(t, svc.SoftDelete(context.Background(), "a"))
	assert.ErrorIs(t, svc.SoftDelete(context.Background(), "b"), shared.ErrNotFound)
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	id := "64b7f0c2a1b2c3d4e5f60718"

	t.Run("stores the new hash", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		user := newTestUser(id, "jane@example.com", "secret123")
		repo.On("FindByID", mock.Anything, id).Return(user, nil)
		repo.On("Update", mock.Anything, user).Return(nil)

		err := svc.ChangePassword(ctx, id, ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "newsecret"})
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("newsecret"))
		assert.False(t, user.VerifyPassword("secret123"))
	})

	t.Run("wrong current password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		user := newTestUser(id, "jane@example.com", "secret123")
		repo.On("FindByID", mock.Anything, id).Return(user, nil)

		err := svc.ChangePassword(ctx, id, ChangePasswordRequest{CurrentPassword: "wrong1", NewPassword: "newsecret"})
		assert.ErrorIs(t, err, shared.ErrInvalidPassword)
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
		assert.Equal(t, "Current password is incorrect", err.Error())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("short new password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		user := newTestUser(id, "jane@example.com", "secret123")
		repo.On("FindByID", mock.Anything, id).Return(user, nil)

		err := svc.ChangePassword(ctx, id, ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "123"})
		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.Equal(t, "newPassword", shared.ViolationsOf(err)[0].Field)
	})

	t.Run("missing fields", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())

		err := svc.ChangePassword(ctx, id, ChangePasswordRequest{})
		assert.ErrorIs(t, err, shared.ErrValidation)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}
