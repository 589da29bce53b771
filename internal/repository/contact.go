package repository

import (
	"context"

	"twoem/internal/model"
)

// ContactRepository defines data access for contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, c *model.Contact) (*model.Contact, error)

	// List returns submissions newest first.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Contact], error)
}
