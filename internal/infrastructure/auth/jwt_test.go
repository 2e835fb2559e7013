package auth

import (
	"testing"
	"time"

	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:    "test-secret-key-at-least-32-chars",
		ExpiresIn: 7 * 24 * time.Hour,
		Issuer:    "test-issuer",
	})
}

func newTestInput() TokenInput {
	return TokenInput{
		UserID: "64b7f0c2a1b2c3d4e5f60718",
		Email:  "alice@example.com",
		Role:   "user",
	}
}

func TestJWTService_GenerateToken(t *testing.T) {
	svc := newTestJWTService()

	t.Run("round trips claims", func(t *testing.T) {
		token, err := svc.GenerateToken(newTestInput())
		require.NoError(t, err)
		assert.NotEmpty(t, token.Value)
		assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), token.ExpiresAt, 5*time.Second)

		claims, err := svc.ValidateToken(token.Value)
		require.NoError(t, err)
		assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.UserID)
		assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.Subject)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Equal(t, "user", claims.Role)
		assert.Equal(t, "test-issuer", claims.Issuer)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("tokens have unique ids", func(t *testing.T) {
		a, err := svc.GenerateToken(newTestInput())
		require.NoError(t, err)
		b, err := svc.GenerateToken(newTestInput())
		require.NoError(t, err)

		ca, _ := svc.ValidateToken(a.Value)
		cb, _ := svc.ValidateToken(b.Value)
		assert.NotEqual(t, ca.ID, cb.ID)
	})

	t.Run("requires user id", func(t *testing.T) {
		_, err := svc.GenerateToken(TokenInput{Email: "x@example.com"})
		assert.ErrorIs(t, err, ErrMissingUserID)
	})
}

func TestJWTService_ValidateToken(t *testing.T) {
	svc := newTestJWTService()

	t.Run("expired token", func(t *testing.T) {
		expired := newTestJWTService()
		expired.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
		token, err := expired.GenerateToken(newTestInput())
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.Value)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "another-secret-key-of-32-characters", ExpiresIn: time.Hour, Issuer: "test-issuer"})
		token, err := other.GenerateToken(newTestInput())
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.Value)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "test-secret-key-at-least-32-chars", ExpiresIn: time.Hour, Issuer: "someone-else"})
		token, err := other.GenerateToken(newTestInput())
		require.NoError(t, err)

		_, err = svc.ValidateToken(token.Value)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects other signing methods", func(t *testing.T) {
		claims := &Claims{UserID: "abc", RegisteredClaims: jwt.RegisteredClaims{Issuer: "test-issuer"}}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
