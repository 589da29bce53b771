package postgres

import (
	"context"
	"database/sql"

	"twoem/internal/model"
	"twoem/internal/repository"
)

// CredentialPostgres is a PostgreSQL implementation of repository.CredentialRepository.
type CredentialPostgres struct {
	db *sql.DB
}

// NewCredentialPostgres creates a new CredentialPostgres repository.
func NewCredentialPostgres(db *sql.DB) *CredentialPostgres {
	return &CredentialPostgres{db: db}
}

var _ repository.CredentialRepository = (*CredentialPostgres)(nil)

const credentialColumns = `id, first_name, email, sealed_email_password, sealed_itax_pin, sealed_itax_password, created_by, created_at`

func scanCredential(row interface{ Scan(...any) error }) (*model.Credential, error) {
	var c model.Credential
	if err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.Email,
		&c.SealedEmailPassword,
		&c.SealedItaxPIN,
		&c.SealedItaxPassword,
		&c.CreatedBy,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new sealed credential row and returns the stored record.
func (r *CredentialPostgres) Create(ctx context.Context, c *model.Credential) (*model.Credential, error) {
	const q = `
		INSERT INTO credentials (id, first_name, email, sealed_email_password, sealed_itax_pin, sealed_itax_password, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + credentialColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.FirstName,
		c.Email,
		c.SealedEmailPassword,
		c.SealedItaxPIN,
		c.SealedItaxPassword,
		c.CreatedBy,
		c.CreatedAt,
	)
	return scanCredential(row)
}

// List returns credential rows newest first using LIMIT/OFFSET pagination.
func (r *CredentialPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Credential], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM credentials`).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + credentialColumns + `
		FROM credentials
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Credential, 0)
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Credential]{Items: items, Total: total}, nil
}
