package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pollapi/internal/model"
	"pollapi/internal/service"
)

type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) List(ctx context.Context, accountID string, limit, offset int) (*service.WorkspaceListResult, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceListResult), args.Error(1)
}

func (m *MockWorkspaceService) Create(ctx context.Context, accountID string, in service.WorkspaceInput) (*model.Workspace, error) {
	args := m.Called(ctx, accountID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) Get(ctx context.Context, accountID, workspaceID string, include []string) (*service.WorkspaceDetail, error) {
	args := m.Called(ctx, accountID, workspaceID, include)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceDetail), args.Error(1)
}

func (m *MockWorkspaceService) Update(ctx context.Context, accountID, workspaceID string, in service.WorkspaceInput) (*model.Workspace, error) {
	args := m.Called(ctx, accountID, workspaceID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) Delete(ctx context.Context, accountID, workspaceID string) error {
	args := m.Called(ctx, accountID, workspaceID)
	return args.Error(0)
}

func (m *MockWorkspaceService) ListMembers(ctx context.Context, accountID, workspaceID string) ([]model.Member, error) {
	args := m.Called(ctx, accountID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Member), args.Error(1)
}

func (m *MockWorkspaceService) AddMembers(ctx context.Context, accountID, workspaceID string, memberIDs []string) ([]model.Member, error) {
	args := m.Called(ctx, accountID, workspaceID, memberIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Member), args.Error(1)
}

func (m *MockWorkspaceService) RemoveMember(ctx context.Context, accountID, workspaceID, memberID string) error {
	args := m.Called(ctx, accountID, workspaceID, memberID)
	return args.Error(0)
}

func (m *MockWorkspaceService) ListPolicies(ctx context.Context, accountID, workspaceID string) ([]service.PolicyView, error) {
	args := m.Called(ctx, accountID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.PolicyView), args.Error(1)
}

func (m *MockWorkspaceService) GetPolicy(ctx context.Context, accountID, workspaceID, holderID string) (*service.PolicyView, error) {
	args := m.Called(ctx, accountID, workspaceID, holderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PolicyView), args.Error(1)
}

func (m *MockWorkspaceService) SetPolicy(ctx context.Context, accountID, workspaceID string, in service.SetPolicyInput) (*service.PolicyView, error) {
	args := m.Called(ctx, accountID, workspaceID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PolicyView), args.Error(1)
}
