package postgres

import (
	"context"
	"database/sql"

	"twoem/internal/model"
	"twoem/internal/repository"
)

// ServicePostgres is a PostgreSQL implementation of repository.ServiceRepository.
type ServicePostgres struct {
	db *sql.DB
}

// NewServicePostgres creates a new ServicePostgres repository.
func NewServicePostgres(db *sql.DB) *ServicePostgres {
	return &ServicePostgres{db: db}
}

var _ repository.ServiceRepository = (*ServicePostgres)(nil)

const serviceColumns = `id, name, category, description, image_url, is_active, created_at`

func scanService(row interface{ Scan(...any) error }) (*model.Service, error) {
	var s model.Service
	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Category,
		&s.Description,
		&s.ImageURL,
		&s.IsActive,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new catalog entry and returns the stored record.
func (r *ServicePostgres) Create(ctx context.Context, s *model.Service) (*model.Service, error) {
	const q = `
		INSERT INTO services (id, name, category, description, image_url, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + serviceColumns
	row := r.db.QueryRowContext(ctx, q,
		s.ID,
		s.Name,
		s.Category,
		s.Description,
		s.ImageURL,
		s.IsActive,
		s.CreatedAt,
	)
	return scanService(row)
}

// ListActive returns all active catalog entries.
func (r *ServicePostgres) ListActive(ctx context.Context) ([]model.Service, error) {
	const q = `SELECT ` + serviceColumns + ` FROM services WHERE is_active ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the total number of catalog rows, active or not.
func (r *ServicePostgres) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM services`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
