package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"twoem/internal/model"
	"twoem/internal/service"
)

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, p model.Principal, in service.UploadFileInput) (*model.File, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, p model.Principal, publicOnly bool, limit, offset int) (*service.FileListResult, error) {
	args := m.Called(ctx, p, publicOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FileListResult), args.Error(1)
}

func (m *MockFileService) Download(ctx context.Context, p model.Principal, id string) (io.ReadCloser, *model.File, error) {
	args := m.Called(ctx, p, id)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	var f *model.File
	if args.Get(1) != nil {
		f = args.Get(1).(*model.File)
	}
	return rc, f, args.Error(2)
}

func (m *MockFileService) Delete(ctx context.Context, p model.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

func (m *MockFileService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
