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

func TestGroupPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewGroupPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	g := &model.Group{
		ID:          "group-uuid",
		WorkspaceID: "ws-uuid",
		Name:        "backend",
		Description: "backend engineers",
		CreatedAt:   now,
	}

	rows := sqlmock.NewRows([]string{"id", "workspace_id", "name", "description", "created_at"}).
		AddRow(g.ID, g.WorkspaceID, g.Name, g.Description, g.CreatedAt)

	mock.ExpectQuery("INSERT INTO groups").
		WithArgs(g.ID, g.WorkspaceID, g.Name, g.Description, g.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, g)

	assert.NoError(t, err)
	assert.Equal(t, "backend", result.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewGroupPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "workspace_id", "name", "description", "created_at"}).
			AddRow("group-uuid", "ws-uuid", "backend", "", time.Now())

		mock.ExpectQuery("SELECT id, workspace_id, name, description, created_at FROM groups").
			WithArgs("group-uuid").
			WillReturnRows(rows)

		g, err := repo.FindByID(ctx, "group-uuid")

		assert.NoError(t, err)
		assert.Equal(t, "ws-uuid", g.WorkspaceID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, workspace_id, name, description, created_at FROM groups").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupPostgres_ListAccountGroupIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewGroupPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id"}).
		AddRow("group-1").
		AddRow("group-2")

	mock.ExpectQuery("SELECT g.id FROM groups g").
		WithArgs("ws-uuid", "acc-uuid").
		WillReturnRows(rows)

	ids, err := repo.ListAccountGroupIDs(ctx, "ws-uuid", "acc-uuid")

	assert.NoError(t, err)
	assert.Equal(t, []string{"group-1", "group-2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupPostgres_AddMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewGroupPostgres(db)
	ctx := context.Background()

	// ON CONFLICT DO NOTHING: re-adding reports zero rows affected, no error.
	mock.ExpectExec("INSERT INTO group_members").
		WithArgs("group-uuid", "acc-uuid").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.AddMember(ctx, "group-uuid", "acc-uuid")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
