package service

import (
	"context"
	"testing"

	"twoem/internal/model"
	"twoem/internal/repository"
	repoMocks "twoem/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCatalogService_Seed(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds defaults into empty table", func(t *testing.T) {
		mRepo := new(repoMocks.MockServiceRepository)
		svc := NewCatalogService(mRepo)

		mRepo.On("Count", ctx).Return(0, nil)
		mRepo.On("Create", ctx, mock.MatchedBy(func(s *model.Service) bool {
			return s.ID != "" && s.Name != "" && s.IsActive
		})).Return(&model.Service{}, nil).Times(len(defaultServices))

		assert.NoError(t, svc.Seed(ctx))
		mRepo.AssertExpectations(t)
	})

	t.Run("no-op when table already populated", func(t *testing.T) {
		mRepo := new(repoMocks.MockServiceRepository)
		svc := NewCatalogService(mRepo)

		mRepo.On("Count", ctx).Return(3, nil)

		assert.NoError(t, svc.Seed(ctx))
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCatalogService_List(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockServiceRepository)
	svc := NewCatalogService(mRepo)

	mRepo.On("ListActive", ctx).Return([]model.Service{
		{ID: "s1", Name: "eCitizen Services", IsActive: true},
	}, nil)

	items, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestContactService_Submit(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockContactRepository)
	svc := NewContactService(mRepo)

	mRepo.On("Create", ctx, mock.MatchedBy(func(c *model.Contact) bool {
		return c.ID != "" && c.Name == "Visitor" && c.Email == "v@example.com" && !c.IsRead
	})).Return(&model.Contact{ID: "c1"}, nil)

	got, err := svc.Submit(ctx, ContactInput{Name: "Visitor", Email: "v@example.com", Message: "hello"})
	assert.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
	mRepo.AssertExpectations(t)
}

func TestContactService_List(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockContactRepository)
	svc := NewContactService(mRepo)

	mRepo.On("List", ctx, repository.PageQuery{Limit: 50, Offset: 0}).
		Return(&repository.PageResult[model.Contact]{
			Items: []model.Contact{{ID: "c1"}},
			Total: 1,
		}, nil)

	// Defaults kick in for non-positive limit
	res, err := svc.List(ctx, 0, -1)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	mRepo.AssertExpectations(t)
}
