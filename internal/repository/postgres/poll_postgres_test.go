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

func TestPollPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPollPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	poll := &model.Poll{
		ID:          "poll-id",
		WorkspaceID: "ws-id",
		Name:        "Poll 01",
		Description: "example",
		CreatedAt:   now,
		Questions: []model.Question{
			{
				ID:     "q-1",
				Prompt: "Favorite color?",
				Options: []model.Option{
					{ID: "o-1", Label: "Red"},
					{ID: "o-2", Label: "Blue", Position: 1},
				},
			},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO polls").
		WithArgs(poll.ID, poll.WorkspaceID, poll.Name, poll.Description, poll.Published, poll.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "name", "description", "published", "created_at"}).
			AddRow(poll.ID, poll.WorkspaceID, poll.Name, poll.Description, false, poll.CreatedAt))
	mock.ExpectExec("INSERT INTO questions").
		WithArgs("q-1", "poll-id", "Favorite color?", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO options").
		WithArgs("o-1", "q-1", "Red", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO options").
		WithArgs("o-2", "q-1", "Blue", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.Create(ctx, poll)

	assert.NoError(t, err)
	assert.Len(t, result.Questions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPollPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPollPostgres(db)
	ctx := context.Background()

	t.Run("found with tree", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM polls WHERE id = ?").
			WithArgs("poll-id").
			WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "name", "description", "published", "created_at"}).
				AddRow("poll-id", "ws-id", "Poll 01", "", true, time.Now()))

		mock.ExpectQuery("SELECT (.+) FROM questions").
			WithArgs("poll-id").
			WillReturnRows(sqlmock.NewRows([]string{"id", "poll_id", "prompt", "position"}).
				AddRow("q-1", "poll-id", "Favorite color?", 0))

		mock.ExpectQuery("SELECT (.+) FROM options o").
			WithArgs("poll-id").
			WillReturnRows(sqlmock.NewRows([]string{"id", "question_id", "label", "position"}).
				AddRow("o-1", "q-1", "Red", 0).
				AddRow("o-2", "q-1", "Blue", 1))

		poll, err := repo.FindByID(ctx, "poll-id")

		assert.NoError(t, err)
		assert.Len(t, poll.Questions, 1)
		assert.Len(t, poll.Questions[0].Options, 2)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM polls WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		poll, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, poll)
	})
}

func TestPollPostgres_ListByWorkspace(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPollPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM polls").
		WithArgs("ws-id", true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery("SELECT (.+) FROM polls").
		WithArgs("ws-id", true, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "name", "description", "published", "created_at"}).
			AddRow("poll-id", "ws-id", "Poll 01", "", true, time.Now()))

	res, err := repo.ListByWorkspace(ctx, "ws-id", true, repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
}

func TestPollPostgres_SetPublished(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPollPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE polls SET published").
			WithArgs("poll-id", true).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetPublished(ctx, "poll-id", true))
	})

	t.Run("missing poll", func(t *testing.T) {
		mock.ExpectExec("UPDATE polls SET published").
			WithArgs("missing", true).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetPublished(ctx, "missing", true), sql.ErrNoRows)
	})
}
