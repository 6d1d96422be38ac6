package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pollapi/internal/model"
	"pollapi/internal/service"
)

type MockPollService struct {
	mock.Mock
}

func (m *MockPollService) List(ctx context.Context, accountID, workspaceID string, limit, offset int) (*service.PollListResult, error) {
	args := m.Called(ctx, accountID, workspaceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PollListResult), args.Error(1)
}

func (m *MockPollService) Create(ctx context.Context, accountID, workspaceID string, in service.PollInput) (*model.Poll, error) {
	args := m.Called(ctx, accountID, workspaceID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Poll), args.Error(1)
}

func (m *MockPollService) Get(ctx context.Context, accountID, pollID string) (*model.Poll, error) {
	args := m.Called(ctx, accountID, pollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Poll), args.Error(1)
}

func (m *MockPollService) Update(ctx context.Context, accountID, pollID string, in service.PollUpdateInput) (*model.Poll, error) {
	args := m.Called(ctx, accountID, pollID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Poll), args.Error(1)
}

func (m *MockPollService) Publish(ctx context.Context, accountID, pollID string) (*model.Poll, error) {
	args := m.Called(ctx, accountID, pollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Poll), args.Error(1)
}

func (m *MockPollService) Unpublish(ctx context.Context, accountID, pollID string) (*model.Poll, error) {
	args := m.Called(ctx, accountID, pollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Poll), args.Error(1)
}

func (m *MockPollService) Delete(ctx context.Context, accountID, pollID string) error {
	args := m.Called(ctx, accountID, pollID)
	return args.Error(0)
}
