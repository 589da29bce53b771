package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"twoem/internal/model"
	"twoem/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	var u *model.User
	if args.Get(1) != nil {
		u = args.Get(1).(*model.User)
	}
	return args.String(0), u, args.Error(2)
}

func (m *MockAuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) EnsureAdmin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
