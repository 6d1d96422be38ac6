package repository

import (
	"context"

	"pollapi/internal/model"
)

// AccountRepository defines data access for accounts using SQL queries only.
// No business logic here — strictly persistence operations.
type AccountRepository interface {
	// Create inserts a new account record and returns the stored row.
	Create(ctx context.Context, acc *model.Account) (*model.Account, error)

	// FindByID returns an account by its ID.
	FindByID(ctx context.Context, id string) (*model.Account, error)

	// FindByEmail returns an account by its unique email.
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
}
