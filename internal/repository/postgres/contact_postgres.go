package postgres

import (
	"context"
	"database/sql"

	"twoem/internal/model"
	"twoem/internal/repository"
)

// ContactPostgres is a PostgreSQL implementation of repository.ContactRepository.
type ContactPostgres struct {
	db *sql.DB
}

// NewContactPostgres creates a new ContactPostgres repository.
func NewContactPostgres(db *sql.DB) *ContactPostgres {
	return &ContactPostgres{db: db}
}

var _ repository.ContactRepository = (*ContactPostgres)(nil)

const contactColumns = `id, name, email, message, submitted_at, is_read`

func scanContact(row interface{ Scan(...any) error }) (*model.Contact, error) {
	var c model.Contact
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Message,
		&c.SubmittedAt,
		&c.IsRead,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new contact submission and returns the stored record.
func (r *ContactPostgres) Create(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	const q = `
		INSERT INTO contacts (id, name, email, message, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + contactColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.Name,
		c.Email,
		c.Message,
		c.SubmittedAt,
	)
	return scanContact(row)
}

// List returns submissions newest first using LIMIT/OFFSET pagination.
func (r *ContactPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Contact], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + contactColumns + `
		FROM contacts
		ORDER BY submitted_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Contact]{Items: items, Total: total}, nil
}
