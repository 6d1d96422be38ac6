package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pollapi/internal/model"
	"pollapi/internal/service"
)

type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) List(ctx context.Context, accountID, workspaceID string) ([]model.Group, error) {
	args := m.Called(ctx, accountID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Group), args.Error(1)
}

func (m *MockGroupService) Create(ctx context.Context, accountID, workspaceID string, in service.GroupInput) (*model.Group, error) {
	args := m.Called(ctx, accountID, workspaceID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockGroupService) Get(ctx context.Context, accountID, groupID string) (*model.Group, error) {
	args := m.Called(ctx, accountID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockGroupService) Update(ctx context.Context, accountID, groupID string, in service.GroupInput) (*model.Group, error) {
	args := m.Called(ctx, accountID, groupID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

func (m *MockGroupService) Delete(ctx context.Context, accountID, groupID string) error {
	args := m.Called(ctx, accountID, groupID)
	return args.Error(0)
}

func (m *MockGroupService) ListMembers(ctx context.Context, accountID, groupID string) ([]model.Member, error) {
	args := m.Called(ctx, accountID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Member), args.Error(1)
}

func (m *MockGroupService) AddMembers(ctx context.Context, accountID, groupID string, memberIDs []string) ([]model.Member, error) {
	args := m.Called(ctx, accountID, groupID, memberIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Member), args.Error(1)
}

func (m *MockGroupService) RemoveMember(ctx context.Context, accountID, groupID, memberID string) error {
	args := m.Called(ctx, accountID, groupID, memberID)
	return args.Error(0)
}
