package postgres

import (
	"context"
	"database/sql"

	"pollapi/internal/model"
	"pollapi/internal/repository"
)

// PollPostgres is a PostgreSQL implementation of repository.PollRepository.
// The question/option tree is written and read alongside the poll row.
type PollPostgres struct {
	db *sql.DB
}

// NewPollPostgres creates a new PollPostgres repository.
func NewPollPostgres(db *sql.DB) *PollPostgres {
	return &PollPostgres{db: db}
}

var _ repository.PollRepository = (*PollPostgres)(nil)

// Create inserts the poll with its questions and options in one transaction.
func (r *PollPostgres) Create(ctx context.Context, p *model.Poll) (*model.Poll, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const qPoll = `
		INSERT INTO polls (id, workspace_id, name, description, published, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, workspace_id, name, description, published, created_at
	`
	var out model.Poll
	err = tx.QueryRowContext(ctx, qPoll,
		p.ID,
		p.WorkspaceID,
		p.Name,
		p.Description,
		p.Published,
		p.CreatedAt,
	).Scan(&out.ID, &out.WorkspaceID, &out.Name, &out.Description, &out.Published, &out.CreatedAt)
	if err != nil {
		return nil, err
	}

	const qQuestion = `
		INSERT INTO questions (id, poll_id, prompt, position)
		VALUES ($1, $2, $3, $4)
	`
	const qOption = `
		INSERT INTO options (id, question_id, label, position)
		VALUES ($1, $2, $3, $4)
	`
	for _, question := range p.Questions {
		if _, err := tx.ExecContext(ctx, qQuestion, question.ID, out.ID, question.Prompt, question.Position); err != nil {
			return nil, err
		}
		for _, opt := range question.Options {
			if _, err := tx.ExecContext(ctx, qOption, opt.ID, question.ID, opt.Label, opt.Position); err != nil {
				return nil, err
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	out.Questions = p.Questions
	return &out, nil
}

// FindByID returns the poll with questions and options populated.
func (r *PollPostgres) FindByID(ctx context.Context, id string) (*model.Poll, error) {
	const qPoll = `
		SELECT id, workspace_id, name, description, published, created_at
		FROM polls
		WHERE id = $1
	`
	var p model.Poll
	err := r.db.QueryRowContext(ctx, qPoll, id).
		Scan(&p.ID, &p.WorkspaceID, &p.Name, &p.Description, &p.Published, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	const qQuestions = `
		SELECT id, poll_id, prompt, position
		FROM questions
		WHERE poll_id = $1
		ORDER BY position ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, qQuestions, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]model.Question, 0)
	for rows.Next() {
		var question model.Question
		if err := rows.Scan(&question.ID, &question.PollID, &question.Prompt, &question.Position); err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const qOptions = `
		SELECT o.id, o.question_id, o.label, o.position
		FROM options o
		JOIN questions q ON q.id = o.question_id
		WHERE q.poll_id = $1
		ORDER BY o.position ASC, o.id ASC
	`
	optRows, err := r.db.QueryContext(ctx, qOptions, id)
	if err != nil {
		return nil, err
	}
	defer optRows.Close()

	byQuestion := make(map[string][]model.Option)
	for optRows.Next() {
		var opt model.Option
		if err := optRows.Scan(&opt.ID, &opt.QuestionID, &opt.Label, &opt.Position); err != nil {
			return nil, err
		}
		byQuestion[opt.QuestionID] = append(byQuestion[opt.QuestionID], opt)
	}
	if err := optRows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		questions[i].Options = byQuestion[questions[i].ID]
	}
	p.Questions = questions
	return &p, nil
}

// ListByWorkspace returns polls using LIMIT/OFFSET pagination and a total count.
// The question tree is not loaded for listings.
func (r *PollPostgres) ListByWorkspace(ctx context.Context, workspaceID string, publishedOnly bool, pq repository.PageQuery) (*repository.PageResult[model.Poll], error) {
	const qCount = `
		SELECT COUNT(*) FROM polls
		WHERE workspace_id = $1 AND (NOT $2 OR published)
	`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, workspaceID, publishedOnly).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, workspace_id, name, description, published, created_at
		FROM polls
		WHERE workspace_id = $1 AND (NOT $2 OR published)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, qList, workspaceID, publishedOnly, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Poll, 0)
	for rows.Next() {
		var p model.Poll
		if err := rows.Scan(&p.ID, &p.WorkspaceID, &p.Name, &p.Description, &p.Published, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Poll]{Items: items, Total: total}, nil
}

// Update persists name and description changes and returns the stored record.
func (r *PollPostgres) Update(ctx context.Context, p *model.Poll) (*model.Poll, error) {
	const q = `
		UPDATE polls
		SET name = $2, description = $3
		WHERE id = $1
		RETURNING id, workspace_id, name, description, published, created_at
	`
	var out model.Poll
	err := r.db.QueryRowContext(ctx, q, p.ID, p.Name, p.Description).
		Scan(&out.ID, &out.WorkspaceID, &out.Name, &out.Description, &out.Published, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetPublished flips the published flag.
func (r *PollPostgres) SetPublished(ctx context.Context, id string, published bool) error {
	const q = `UPDATE polls SET published = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, published)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a poll by ID. It does not return an error if the row does not exist.
func (r *PollPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM polls WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
