package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"twoem/internal/model"
	"twoem/internal/repository"
)

type MockEulogyRepository struct {
	mock.Mock
}

func (m *MockEulogyRepository) Create(ctx context.Context, e *model.Eulogy) (*model.Eulogy, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Eulogy), args.Error(1)
}

func (m *MockEulogyRepository) FindByID(ctx context.Context, id string) (*model.Eulogy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Eulogy), args.Error(1)
}

func (m *MockEulogyRepository) List(ctx context.Context, now time.Time, pq repository.PageQuery) (*repository.PageResult[model.Eulogy], error) {
	args := m.Called(ctx, now, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Eulogy]), args.Error(1)
}

func (m *MockEulogyRepository) IncrementDownloads(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEulogyRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockEulogyRepository) DeleteExpired(ctx context.Context, now time.Time) ([]string, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockEulogyRepository) Count(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}
