package repository

import (
	"context"
	"time"

	"twoem/internal/model"
)

// EulogyRepository defines data access for eulogy records.
type EulogyRepository interface {
	// Create inserts a new eulogy record and returns the stored row.
	Create(ctx context.Context, e *model.Eulogy) (*model.Eulogy, error)

	// FindByID returns a eulogy by its ID, expired or not. Expiry is a
	// derived predicate evaluated by the caller, never a stored flag.
	FindByID(ctx context.Context, id string) (*model.Eulogy, error)

	// List returns eulogies that are still valid at the given instant,
	// newest first, with a matching total count.
	List(ctx context.Context, now time.Time, pq PageQuery) (*PageResult[model.Eulogy], error)

	// IncrementDownloads bumps download_count by one in a single UPDATE.
	// Returns the new count.
	IncrementDownloads(ctx context.Context, id string) (int64, error)

	// Delete removes a eulogy row by ID. Reports whether a row was deleted.
	Delete(ctx context.Context, id string) (bool, error)

	// DeleteExpired removes every row whose expires_at is at or before
	// the given instant and returns the storage paths of the deleted
	// rows so their objects can be removed. Rows created after the
	// instant are untouchable by construction.
	DeleteExpired(ctx context.Context, now time.Time) ([]string, error)

	// Count returns the number of eulogies still valid at the given instant.
	Count(ctx context.Context, now time.Time) (int, error)
}
