package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/auth"
	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService(repo identity.UserRepository) (*AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:    "test-secret-key-that-is-long-enough",
		ExpiresIn: 7 * 24 * time.Hour,
		Issuer:    "test",
	})
	return NewAuthService(repo, jwtService, zap.NewNop()), jwtService
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	user := newTestUser("64b7f0c2a1b2c3d4e5f60718", "jane@example.com", "secret123")

	t.Run("valid credentials issue a token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, jwtService := newTestAuthService(repo)
		repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(user, nil)

		result, err := svc.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "secret123"})
		require.NoError(t, err)

		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, "Test User", result.User.Name)
		assert.Equal(t, identity.RoleUser, result.User.Role)
		assert.NotEmpty(t, result.Token)

		claims, err := jwtService.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "jane@example.com", claims.Email)
		assert.Equal(t, "user", claims.Role)
		repo.AssertExpectations(t)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)
		repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(user, nil)
		repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, identity.ErrUserNotFound)

		_, wrongPassword := svc.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "nope123"})
		_, unknownEmail := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret123"})

		require.Error(t, wrongPassword)
		require.Error(t, unknownEmail)
		assert.ErrorIs(t, wrongPassword, shared.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmail, shared.ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
		assert.Equal(t, "Invalid email or password", wrongPassword.Error())
	})

	t.Run("missing fields are a validation error", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)

		_, err := svc.Login(ctx, LoginRequest{Email: "not-an-email"})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.Len(t, shared.ViolationsOf(err), 2)
		repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("repository failure is passed through", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)
		boom := errors.New("connection reset")
		repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, boom)

		_, err := svc.Login(ctx, LoginRequest{Email: "jane@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, boom)
	})
}
