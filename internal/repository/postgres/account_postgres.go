package postgres

import (
	"context"
	"database/sql"

	"pollapi/internal/model"
	"pollapi/internal/repository"
)

// AccountPostgres is a PostgreSQL implementation of repository.AccountRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type AccountPostgres struct {
	db *sql.DB
}

// NewAccountPostgres creates a new AccountPostgres repository.
func NewAccountPostgres(db *sql.DB) *AccountPostgres {
	return &AccountPostgres{db: db}
}

var _ repository.AccountRepository = (*AccountPostgres)(nil)

// Create inserts a new account row and returns the stored record.
func (r *AccountPostgres) Create(ctx context.Context, acc *model.Account) (*model.Account, error) {
	const q = `
		INSERT INTO accounts (id, email, password_hash, first_name, last_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, password_hash, first_name, last_name, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		acc.ID,
		acc.Email,
		acc.PasswordHash,
		acc.FirstName,
		acc.LastName,
		acc.CreatedAt,
	)
	return scanAccount(row)
}

// FindByID fetches a single account by its ID.
func (r *AccountPostgres) FindByID(ctx context.Context, id string) (*model.Account, error) {
	const q = `
		SELECT id, email, password_hash, first_name, last_name, created_at
		FROM accounts
		WHERE id = $1
	`
	return scanAccount(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches a single account by its unique email.
func (r *AccountPostgres) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	const q = `
		SELECT id, email, password_hash, first_name, last_name, created_at
		FROM accounts
		WHERE email = $1
	`
	return scanAccount(r.db.QueryRowContext(ctx, q, email))
}

func scanAccount(row *sql.Row) (*model.Account, error) {
	var a model.Account
	if err := row.Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.FirstName,
		&a.LastName,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}
