package repository

import (
	"context"

	"pollapi/internal/model"
)

// VoteRepository defines data access for ballots and tallies.
type VoteRepository interface {
	// CreateBallot inserts all votes of one ballot in a single transaction.
	// The unique (question_id, account_id) constraint makes double voting fail
	// atomically.
	CreateBallot(ctx context.Context, votes []model.Vote) error

	// HasVoted reports whether the account already has votes in the poll.
	HasVoted(ctx context.Context, pollID, accountID string) (bool, error)

	// CountByOption returns per-option tallies for the poll.
	CountByOption(ctx context.Context, pollID string) ([]model.OptionCount, error)

	// CountBallots returns the number of distinct accounts that voted.
	CountBallots(ctx context.Context, pollID string) (int, error)
}
