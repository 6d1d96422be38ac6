package postgres

import (
	"context"
	"database/sql"

	"pollapi/internal/model"
	"pollapi/internal/repository"
)

// VotePostgres is a PostgreSQL implementation of repository.VoteRepository.
type VotePostgres struct {
	db *sql.DB
}

// NewVotePostgres creates a new VotePostgres repository.
func NewVotePostgres(db *sql.DB) *VotePostgres {
	return &VotePostgres{db: db}
}

var _ repository.VoteRepository = (*VotePostgres)(nil)

// CreateBallot inserts all votes of a ballot in one transaction. The unique
// (question_id, account_id) constraint rejects double voting atomically.
func (r *VotePostgres) CreateBallot(ctx context.Context, votes []model.Vote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO votes (id, poll_id, question_id, option_id, account_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, v := range votes {
		if _, err := tx.ExecContext(ctx, q, v.ID, v.PollID, v.QuestionID, v.OptionID, v.AccountID, v.CreatedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// HasVoted reports whether the account already has votes in the poll.
func (r *VotePostgres) HasVoted(ctx context.Context, pollID, accountID string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM votes WHERE poll_id = $1 AND account_id = $2
		)
	`
	var ok bool
	if err := r.db.QueryRowContext(ctx, q, pollID, accountID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// CountByOption returns per-option tallies for the poll.
func (r *VotePostgres) CountByOption(ctx context.Context, pollID string) ([]model.OptionCount, error) {
	const q = `
		SELECT question_id, option_id, COUNT(*)
		FROM votes
		WHERE poll_id = $1
		GROUP BY question_id, option_id
		ORDER BY question_id ASC, option_id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.OptionCount, 0)
	for rows.Next() {
		var c model.OptionCount
		if err := rows.Scan(&c.QuestionID, &c.OptionID, &c.Count); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// CountBallots returns the number of distinct accounts that voted in the poll.
func (r *VotePostgres) CountBallots(ctx context.Context, pollID string) (int, error) {
	const q = `SELECT COUNT(DISTINCT account_id) FROM votes WHERE poll_id = $1`
	var n int
	if err := r.db.QueryRowContext(ctx, q, pollID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
