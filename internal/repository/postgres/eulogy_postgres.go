package postgres

import (
	"context"
	"database/sql"
	"time"

	"twoem/internal/model"
	"twoem/internal/repository"
)

// EulogyPostgres is a PostgreSQL implementation of repository.EulogyRepository.
type EulogyPostgres struct {
	db *sql.DB
}

// NewEulogyPostgres creates a new EulogyPostgres repository.
func NewEulogyPostgres(db *sql.DB) *EulogyPostgres {
	return &EulogyPostgres{db: db}
}

var _ repository.EulogyRepository = (*EulogyPostgres)(nil)

const eulogyColumns = `id, owner_id, title, deceased_name, description, storage_path, filename, size, download_count, created_at, expires_at`

func scanEulogy(row interface{ Scan(...any) error }) (*model.Eulogy, error) {
	var (
		e         model.Eulogy
		expiresAt time.Time
	)
	if err := row.Scan(
		&e.ID,
		&e.OwnerID,
		&e.Title,
		&e.DeceasedName,
		&e.Description,
		&e.StoragePath,
		&e.Filename,
		&e.Size,
		&e.DownloadCount,
		&e.CreatedAt,
		&expiresAt,
	); err != nil {
		return nil, err
	}
	e.Visibility = model.VisibilityPublic
	e.ContentType = "application/pdf"
	e.ExpiresAt = &expiresAt
	return &e, nil
}

// Create inserts a new eulogy row and returns the stored record.
func (r *EulogyPostgres) Create(ctx context.Context, e *model.Eulogy) (*model.Eulogy, error) {
	const q = `
		INSERT INTO eulogies (id, owner_id, title, deceased_name, description, storage_path, filename, size, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + eulogyColumns
	row := r.db.QueryRowContext(ctx, q,
		e.ID,
		e.OwnerID,
		e.Title,
		e.DeceasedName,
		e.Description,
		e.StoragePath,
		e.Filename,
		e.Size,
		e.CreatedAt,
		e.ExpiresAt,
	)
	return scanEulogy(row)
}

// FindByID fetches a single eulogy by its ID, whether expired or not.
func (r *EulogyPostgres) FindByID(ctx context.Context, id string) (*model.Eulogy, error) {
	const q = `SELECT ` + eulogyColumns + ` FROM eulogies WHERE id = $1`
	return scanEulogy(r.db.QueryRowContext(ctx, q, id))
}

// List returns eulogies still valid at the given instant, newest first.
func (r *EulogyPostgres) List(ctx context.Context, now time.Time, pq repository.PageQuery) (*repository.PageResult[model.Eulogy], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM eulogies WHERE expires_at > $1`, now).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + eulogyColumns + `
		FROM eulogies
		WHERE expires_at > $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, now, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Eulogy, 0)
	for rows.Next() {
		e, err := scanEulogy(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Eulogy]{Items: items, Total: total}, nil
}

// IncrementDownloads bumps the counter in a single serializing UPDATE.
func (r *EulogyPostgres) IncrementDownloads(ctx context.Context, id string) (int64, error) {
	const q = `UPDATE eulogies SET download_count = download_count + 1 WHERE id = $1 RETURNING download_count`
	var count int64
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a eulogy by ID and reports whether a row existed.
func (r *EulogyPostgres) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM eulogies WHERE id = $1`
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

// DeleteExpired removes every row expired at the given instant and
// returns the storage paths of the deleted rows. The bound is the
// caller's captured clock, so rows created mid-sweep with a future
// expires_at can never match.
func (r *EulogyPostgres) DeleteExpired(ctx context.Context, now time.Time) ([]string, error) {
	const q = `DELETE FROM eulogies WHERE expires_at <= $1 RETURNING storage_path`
	rows, err := r.db.QueryContext(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paths := make([]string, 0)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

// Count returns the number of eulogies still valid at the given instant.
func (r *EulogyPostgres) Count(ctx context.Context, now time.Time) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM eulogies WHERE expires_at > $1`, now).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
