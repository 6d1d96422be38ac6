package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"pollapi/internal/model"
)

func TestAccountPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAccountPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	acc := &model.Account{
		ID:           "test-uuid",
		Email:        "jdoe@example.com",
		PasswordHash: "$2a$10$hash",
		FirstName:    "John",
		LastName:     "Doe",
		CreatedAt:    now,
	}

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "first_name", "last_name", "created_at"}).
		AddRow(acc.ID, acc.Email, acc.PasswordHash, acc.FirstName, acc.LastName, acc.CreatedAt)

	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs(acc.ID, acc.Email, acc.PasswordHash, acc.FirstName, acc.LastName, acc.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, acc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, acc.Email, result.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAccountPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "first_name", "last_name", "created_at"}).
			AddRow("test-id", "jdoe@example.com", "hash", "John", "Doe", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email = ?").
			WithArgs("jdoe@example.com").
			WillReturnRows(rows)

		acc, err := repo.FindByEmail(ctx, "jdoe@example.com")

		assert.NoError(t, err)
		assert.NotNil(t, acc)
		assert.Equal(t, "test-id", acc.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email = ?").
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		acc, err := repo.FindByEmail(ctx, "missing@example.com")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, acc)
	})
}

func TestAccountPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAccountPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "first_name", "last_name", "created_at"}).
		AddRow("test-id", "jdoe@example.com", "hash", "John", "Doe", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE id = ?").
		WithArgs("test-id").
		WillReturnRows(rows)

	acc, err := repo.FindByID(ctx, "test-id")

	assert.NoError(t, err)
	assert.Equal(t, "jdoe@example.com", acc.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
