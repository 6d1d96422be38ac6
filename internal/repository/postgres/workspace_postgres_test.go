package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"pollapi/internal/model"
	"pollapi/internal/repository"
)

func TestWorkspacePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewWorkspacePostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	ws := &model.Workspace{
		ID:          "ws-id",
		Name:        "Workspace 01",
		Description: "example",
		OwnerID:     "acc-id",
		CreatedAt:   now,
	}

	rows := sqlmock.NewRows([]string{"id", "name", "description", "owner_id", "created_at"}).
		AddRow(ws.ID, ws.Name, ws.Description, ws.OwnerID, ws.CreatedAt)

	mock.ExpectQuery("INSERT INTO workspaces").
		WithArgs(ws.ID, ws.Name, ws.Description, ws.OwnerID, ws.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, ws)

	assert.NoError(t, err)
	assert.Equal(t, ws.Name, result.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspacePostgres_ListForAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewWorkspacePostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WithArgs("acc-id").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "name", "description", "owner_id", "created_at"}).
		AddRow("ws-id", "Workspace 01", "", "acc-id", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM workspaces w").
		WithArgs("acc-id", 10, 0).
		WillReturnRows(rows)

	res, err := repo.ListForAccount(ctx, "acc-id", repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
}

func TestWorkspacePostgres_IsMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewWorkspacePostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ws-id", "acc-id").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.IsMember(ctx, "ws-id", "acc-id")

	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestWorkspacePostgres_RemoveMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewWorkspacePostgres(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM workspace_members").
		WithArgs("ws-id", "acc-id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM policies").
		WithArgs("ws-id", "acc-id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.RemoveMember(ctx, "ws-id", "acc-id")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspacePostgres_FindPolicy(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewWorkspacePostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "workspace_id", "holder_type", "holder_id", "permissions"}).
			AddRow("pol-id", "ws-id", "account", "acc-id", int64(7))

		mock.ExpectQuery("SELECT (.+) FROM policies").
			WithArgs("ws-id", "account", "acc-id").
			WillReturnRows(rows)

		p, err := repo.FindPolicy(ctx, "ws-id", "account", "acc-id")

		assert.NoError(t, err)
		assert.Equal(t, uint64(7), p.Permissions)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM policies").
			WithArgs("ws-id", "account", "missing").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.FindPolicy(ctx, "ws-id", "account", "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, p)
	})
}

func TestWorkspacePostgres_UpsertPolicy(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewWorkspacePostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "workspace_id", "holder_type", "holder_id", "permissions"}).
		AddRow("pol-id", "ws-id", "group", "grp-id", int64(3))

	mock.ExpectQuery("INSERT INTO policies").
		WithArgs("pol-id", "ws-id", "group", "grp-id", int64(3)).
		WillReturnRows(rows)

	p, err := repo.UpsertPolicy(ctx, &model.Policy{
		ID:          "pol-id",
		WorkspaceID: "ws-id",
		HolderType:  "group",
		HolderID:    "grp-id",
		Permissions: 3,
	})

	assert.NoError(t, err)
	assert.Equal(t, uint64(3), p.Permissions)
	assert.NoError(t, mock.ExpectationsWereMet())
}
