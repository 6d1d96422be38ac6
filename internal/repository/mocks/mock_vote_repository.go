package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pollapi/internal/model"
)

type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) CreateBallot(ctx context.Context, votes []model.Vote) error {
	args := m.Called(ctx, votes)
	return args.Error(0)
}

func (m *MockVoteRepository) HasVoted(ctx context.Context, pollID, accountID string) (bool, error) {
	args := m.Called(ctx, pollID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoteRepository) CountByOption(ctx context.Context, pollID string) ([]model.OptionCount, error) {
	args := m.Called(ctx, pollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OptionCount), args.Error(1)
}

func (m *MockVoteRepository) CountBallots(ctx context.Context, pollID string) (int, error) {
	args := m.Called(ctx, pollID)
	return args.Int(0), args.Error(1)
}
