package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pollapi/internal/service"
)

type MockVoteService struct {
	mock.Mock
}

func (m *MockVoteService) CastBallot(ctx context.Context, accountID, pollID string, in service.BallotInput) error {
	args := m.Called(ctx, accountID, pollID, in)
	return args.Error(0)
}

func (m *MockVoteService) Results(ctx context.Context, accountID, pollID string) (*service.PollResults, error) {
	args := m.Called(ctx, accountID, pollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PollResults), args.Error(1)
}

func (m *MockVoteService) ExportResults(ctx context.Context, accountID, pollID string) (*service.ResultsExport, error) {
	args := m.Called(ctx, accountID, pollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResultsExport), args.Error(1)
}
