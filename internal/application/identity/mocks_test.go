package identity

import (
	"context"

	"github.com/ecommerce/backend/internal/domain/identity"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDUnscoped(ctx context.Context, id string) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, page shared.PageRequest) ([]*identity.User, int64, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

var _ identity.UserRepository = (*MockUserRepository)(nil)

// newTestUser builds an active user with the given password and a fixed ID
func newTestUser(id, email, password string) *identity.User {
	user, err := identity.NewUser(identity.Profile{Name: "Test User", Email: email}, password)
	if err != nil {
		panic(err)
	}
	user.ID = id
	return user
}
