package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"twoem/internal/model"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) List(ctx context.Context) ([]model.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Service), args.Error(1)
}

func (m *MockCatalogService) Seed(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
