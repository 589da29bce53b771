package repository

import (
	"context"

	"twoem/internal/model"
)

// ServiceRepository defines data access for the services catalog.
type ServiceRepository interface {
	Create(ctx context.Context, s *model.Service) (*model.Service, error)
	ListActive(ctx context.Context) ([]model.Service, error)
	Count(ctx context.Context) (int, error)
}
