package postgres

import (
	"context"
	"database/sql"
	"strconv"

	"twoem/internal/model"
	"twoem/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

const fileColumns = `id, owner_id, visibility, storage_path, filename, content_type, size, description, download_count, created_at`

func scanFile(row interface{ Scan(...any) error }) (*model.File, error) {
	var f model.File
	if err := row.Scan(
		&f.ID,
		&f.OwnerID,
		&f.Visibility,
		&f.StoragePath,
		&f.Filename,
		&f.ContentType,
		&f.Size,
		&f.Description,
		&f.DownloadCount,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a new file row and returns the stored record.
func (r *FilePostgres) Create(ctx context.Context, f *model.File) (*model.File, error) {
	const q = `
		INSERT INTO files (id, owner_id, visibility, storage_path, filename, content_type, size, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + fileColumns
	row := r.db.QueryRowContext(ctx, q,
		f.ID,
		f.OwnerID,
		f.Visibility,
		f.StoragePath,
		f.Filename,
		f.ContentType,
		f.Size,
		f.Description,
		f.CreatedAt,
	)
	return scanFile(row)
}

// FindByID fetches a single file by its ID.
func (r *FilePostgres) FindByID(ctx context.Context, id string) (*model.File, error) {
	const q = `SELECT ` + fileColumns + ` FROM files WHERE id = $1`
	return scanFile(r.db.QueryRowContext(ctx, q, id))
}

// List returns files visible under the filter using LIMIT/OFFSET pagination.
// Visibility is resolved in SQL so pagination and counts stay consistent.
func (r *FilePostgres) List(ctx context.Context, filter repository.FileFilter, pq repository.PageQuery) (*repository.PageResult[model.File], error) {
	where, args := fileWhere(filter)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := `SELECT ` + fileColumns + ` FROM files` + where +
		` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, pq.Limit, pq.Offset)

	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.File, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.File]{Items: items, Total: total}, nil
}

// IncrementDownloads bumps the counter in a single serializing UPDATE.
func (r *FilePostgres) IncrementDownloads(ctx context.Context, id string) (int64, error) {
	const q = `UPDATE files SET download_count = download_count + 1 WHERE id = $1 RETURNING download_count`
	var count int64
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a file by ID and reports whether a row existed.
func (r *FilePostgres) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM files WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the total number of file rows.
func (r *FilePostgres) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func fileWhere(filter repository.FileFilter) (string, []any) {
	switch {
	case filter.PublicOnly:
		return ` WHERE visibility = $1`, []any{model.VisibilityPublic}
	case filter.ViewerAdmin:
		return ``, nil
	default:
		return ` WHERE (visibility = $1 OR owner_id = $2)`, []any{model.VisibilityPublic, filter.ViewerID}
	}
}
