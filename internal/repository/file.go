package repository

import (
	"context"

	"twoem/internal/model"
)

// FileFilter narrows a file listing to what the caller may see.
// When PublicOnly is set, only public files are returned regardless of
// the viewer. Otherwise an admin viewer sees everything, and a regular
// viewer sees public files plus their own.
type FileFilter struct {
	ViewerID    string
	ViewerAdmin bool
	PublicOnly  bool
}

// FileRepository defines data access for file records using SQL queries only.
// No business logic here — strictly persistence operations.
type FileRepository interface {
	// Create inserts a new file record and returns the stored row.
	Create(ctx context.Context, f *model.File) (*model.File, error)

	// FindByID returns a file by its ID.
	FindByID(ctx context.Context, id string) (*model.File, error)

	// List returns files visible under the filter, newest first, with a
	// total count for the same filter.
	List(ctx context.Context, filter FileFilter, pq PageQuery) (*PageResult[model.File], error)

	// IncrementDownloads bumps download_count by one in a single UPDATE
	// so concurrent retrievals never lose an increment. Returns the new
	// count.
	IncrementDownloads(ctx context.Context, id string) (int64, error)

	// Delete removes a file row by ID. Reports whether a row was deleted.
	Delete(ctx context.Context, id string) (bool, error)

	// Count returns the total number of file rows.
	Count(ctx context.Context) (int, error)
}
