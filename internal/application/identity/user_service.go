package identity

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/logger"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// UserService handles user registration and profile operations
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register validates the payload, hashes the password and stores a new user
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "user", "register")
	defer span.End()

	user, err := identity.NewUser(identity.Profile{
		Name:    req.Name,
		Email:   req.Email,
		Role:    req.Role,
		Phone:   req.Phone,
		Address: req.Address,
	}, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.log(ctx).Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	resp := ToUserResponse(user)
	return &resp, nil
}

// List returns a page of active users, newest first
func (s *UserService) List(ctx context.Context, page shared.PageRequest) (shared.Paginated[UserResponse], error) {
	page = page.Normalize()
	users, total, err := s.userRepo.FindAll(ctx, page)
	if err != nil {
		return shared.Paginated[UserResponse]{}, err
	}
	return shared.NewPaginated(ToUserResponses(users), total, page), nil
}

// GetByID returns an active user
func (s *UserService) GetByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Update merges the partial profile into the user and persists it
func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.ApplyUpdate(req.toPatch()); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log(ctx).Info("User updated", zap.String("user_id", user.ID))
	resp := ToUserResponse(user)
	return &resp, nil
}

// SoftDelete deactivates an active user
func (s *UserService) SoftDelete(ctx context.Context, id string) error {
	if err := s.userRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.log(ctx).Info("User deactivated", zap.String("user_id", id))
	return nil
}

// ChangePassword verifies the current password and stores the new one
func (s *UserService) ChangePassword(ctx context.Context, id string, req ChangePasswordRequest) error {
	if err := shared.Validate(req); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		if shared.IsDomainError(err, shared.CodeInvalidPassword) {
			s.log(ctx).Warn("Password change rejected", zap.String("user_id", id))
		}
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.log(ctx).Info("Password changed", zap.String("user_id", id))
	return nil
}

func (s *UserService) log(ctx context.Context) *zap.Logger {
	return logger.FromContextOr(ctx, s.logger)
}
