package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"twoem/internal/model"
	"twoem/internal/service"
)

type MockEulogyService struct {
	mock.Mock
}

func (m *MockEulogyService) Upload(ctx context.Context, p model.Principal, in service.UploadEulogyInput) (*model.Eulogy, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Eulogy), args.Error(1)
}

func (m *MockEulogyService) List(ctx context.Context, limit, offset int) (*service.EulogyListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EulogyListResult), args.Error(1)
}

func (m *MockEulogyService) Download(ctx context.Context, id string) (io.ReadCloser, *model.Eulogy, error) {
	args := m.Called(ctx, id)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	var e *model.Eulogy
	if args.Get(1) != nil {
		e = args.Get(1).(*model.Eulogy)
	}
	return rc, e, args.Error(2)
}

func (m *MockEulogyService) Delete(ctx context.Context, p model.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

func (m *MockEulogyService) Sweep(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockEulogyService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
