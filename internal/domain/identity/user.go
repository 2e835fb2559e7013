package identity

import (
	"strings"
	"unicode/utf8"

	"github.com/ecommerce/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the authorization role of a user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Password cost for bcrypt
const bcryptCost = 12

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 6

// MaxPasswordBytes is the longest input bcrypt will hash
const MaxPasswordBytes = 72

var (
	ErrUserNotFound    = shared.NotFound("User not found")
	ErrEmailTaken      = shared.Conflict("User with this email already exists")
	ErrInvalidLogin    = shared.NewDomainError(shared.CodeInvalidCredentials, "Invalid email or password")
	ErrCurrentPassword = shared.NewDomainError(shared.CodeInvalidPassword, "Current password is incorrect")
)

// Address is an optional postal address. All parts are required once present.
type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// Profile holds the user fields that clients may set
type Profile struct {
	Name    string   `json:"name" validate:"required,min=1,max=50"`
	Email   string   `json:"email" validate:"required,email"`
	Role    Role     `json:"role" validate:"required,oneof=user admin"`
	Phone   string   `json:"phone"`
	Address *Address `json:"address" validate:"omitempty"`
}

func (p *Profile) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Phone = strings.TrimSpace(p.Phone)
	if p.Role == "" {
		p.Role = RoleUser
	}
	if p.Address != nil {
		a := *p.Address
		a.Street = strings.TrimSpace(a.Street)
		a.City = strings.TrimSpace(a.City)
		a.State = strings.TrimSpace(a.State)
		a.ZipCode = strings.TrimSpace(a.ZipCode)
		a.Country = strings.TrimSpace(a.Country)
		p.Address = &a
	}
}

// User represents a user in the system
// It is the aggregate root for user-related operations
type User struct {
	shared.BaseAggregateRoot
	Profile
	PasswordHash string
}

// UserPatch is a partial profile update. Nil fields are left unchanged.
// It has no password field: passwords only change through ChangePassword.
type UserPatch struct {
	Name    *string
	Email   *string
	Role    *Role
	Phone   *string
	Address *Address
}

// NewUser validates the profile and password and returns a new active user
// with the password hashed
func NewUser(profile Profile, password string) (*User, error) {
	profile.normalize()

	var violations []shared.Violation
	if err := shared.Validate(profile); err != nil {
		v := shared.ViolationsOf(err)
		if v == nil {
			return nil, err
		}
		violations = append(violations, v...)
	}
	if v := passwordViolation(password); v != nil {
		violations = append(violations, *v)
	}
	if len(violations) > 0 {
		return nil, &shared.DomainError{
			Code:       shared.CodeValidation,
			Message:    "Validation error",
			Violations: violations,
		}
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Profile:           profile,
		PasswordHash:      passwordHash,
	}, nil
}

// ApplyUpdate merges patch into the profile and validates the result.
// The user is left untouched when validation fails.
func (u *User) ApplyUpdate(patch UserPatch) error {
	merged := u.Profile
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Email != nil {
		merged.Email = *patch.Email
	}
	if patch.Role != nil {
		merged.Role = *patch.Role
	}
	if patch.Phone != nil {
		merged.Phone = *patch.Phone
	}
	if patch.Address != nil {
		addr := *patch.Address
		merged.Address = &addr
	}
	merged.normalize()

	if err := shared.Validate(merged); err != nil {
		return err
	}

	u.Profile = merged
	u.Touch()
	return nil
}

// ChangePassword changes the user's password
func (u *User) ChangePassword(currentPassword, newPassword string) error {
	if !u.VerifyPassword(currentPassword) {
		return ErrCurrentPassword
	}
	return u.SetPassword(newPassword)
}

// SetPassword sets a new password without checking the old one
func (u *User) SetPassword(newPassword string) error {
	if v := passwordViolation(newPassword); v != nil {
		return shared.InvalidField("newPassword", v.Message)
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.Touch()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// NormalizeEmail applies the same normalization used when storing emails
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func passwordViolation(password string) *shared.Violation {
	if password == "" {
		return &shared.Violation{Field: "password", Message: "This field is required"}
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return &shared.Violation{Field: "password", Message: "Password must be at least 6 characters"}
	}
	if len(password) > MaxPasswordBytes {
		return &shared.Violation{Field: "password", Message: "Password must be at most 72 bytes"}
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
