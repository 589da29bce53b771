package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"twoem/internal/model"
	"twoem/internal/repository"
)

type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) Create(ctx context.Context, c *model.Credential) (*model.Credential, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Credential), args.Error(1)
}

func (m *MockCredentialRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Credential], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Credential]), args.Error(1)
}
