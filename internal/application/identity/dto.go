package identity

import (
	"time"

	"github.com/ecommerce/backend/internal/domain/identity"
)

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Name     string            `json:"name" example:"Jane Doe"`
	Email    string            `json:"email" example:"jane@example.com"`
	Password string            `json:"password" example:"secret123"`
	Role     identity.Role     `json:"role,omitempty" example:"user"`
	Phone    string            `json:"phone,omitempty"`
	Address  *identity.Address `json:"address,omitempty"`
}

// UpdateUserRequest is a partial profile update.
// Passwords are not part of it; a password key in the body is ignored.
type UpdateUserRequest struct {
	Name    *string           `json:"name,omitempty"`
	Email   *string           `json:"email,omitempty"`
	Role    *identity.Role    `json:"role,omitempty"`
	Phone   *string           `json:"phone,omitempty"`
	Address *identity.Address `json:"address,omitempty"`
}

func (r UpdateUserRequest) toPatch() identity.UserPatch {
	return identity.UserPatch{
		Name:    r.Name,
		Email:   r.Email,
		Role:    r.Role,
		Phone:   r.Phone,
		Address: r.Address,
	}
}

// ChangePasswordRequest is the payload for changing a password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password string `json:"password" validate:"required" example:"secret123"`
}

// UserResponse is a user as returned by the API. It never carries the password hash.
type UserResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      identity.Role     `json:"role"`
	Phone     string            `json:"phone,omitempty"`
	Address   *identity.Address `json:"address,omitempty"`
	IsActive  bool              `json:"isActive"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		Address:   u.Address,
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToUserResponses converts domain users to responses
func ToUserResponses(users []*identity.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = ToUserResponse(u)
	}
	return out
}

// LoginUser is the user summary embedded in a login result
type LoginUser struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Role  identity.Role `json:"role"`
}

// LoginResult is returned by a successful login
type LoginResult struct {
	User      LoginUser `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
