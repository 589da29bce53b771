package repository

import (
	"context"

	"twoem/internal/model"
)

// CredentialRepository defines data access for sealed customer credentials.
type CredentialRepository interface {
	Create(ctx context.Context, c *model.Credential) (*model.Credential, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Credential], error)
}
