package identity

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence.
// Every lookup except FindByIDUnscoped ignores soft-deleted users.
type UserRepository interface {
	// Create inserts a new user and assigns its ID.
	// Returns ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *User) error

	// Update persists profile and password changes of an active user,
	// guarded by the user's version
	Update(ctx context.Context, user *User) error

	// Deactivate soft-deletes an active user
	Deactivate(ctx context.Context, id string) error

	// FindByID finds an active user by ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByIDUnscoped finds a user by ID regardless of its active flag
	FindByIDUnscoped(ctx context.Context, id string) (*User, error)

	// FindByEmail finds an active user by normalized email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll returns active users, newest first, with the total count
	FindAll(ctx context.Context, page shared.PageRequest) ([]*User, int64, error)
}
