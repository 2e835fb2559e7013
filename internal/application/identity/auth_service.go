package identity

import (
	"context"
	"errors"

	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/auth"
	"github.com/ecommerce/backend/internal/infrastructure/logger"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login checks the credentials of an active user and issues a token.
// An unknown email and a wrong password fail with the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "login")
	defer span.End()

	if err := shared.Validate(req); err != nil {
		return nil, err
	}
	log := logger.FromContextOr(ctx, s.logger)

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			log.Warn("Login failed", zap.String("reason", "unknown_email"))
			return nil, identity.ErrInvalidLogin
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		log.Warn("Login failed",
			zap.String("reason", "wrong_password"),
			zap.String("user_id", user.ID),
		)
		return nil, identity.ErrInvalidLogin
	}

	token, err := s.jwtService.GenerateToken(auth.TokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	log.Info("User logged in", zap.String("user_id", user.ID))
	return &LoginResult{
		User: LoginUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
	}, nil
}
