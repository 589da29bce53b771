package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"twoem/internal/model"
	"twoem/internal/service"
)

type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) Save(ctx context.Context, p model.Principal, in service.CredentialInput) (*model.Credential, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Credential), args.Error(1)
}

func (m *MockCredentialService) List(ctx context.Context, limit, offset int) (*service.CredentialListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CredentialListResult), args.Error(1)
}
