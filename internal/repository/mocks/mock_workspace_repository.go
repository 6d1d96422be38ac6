package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pollapi/internal/model"
	"pollapi/internal/repository"
)

type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, ws *model.Workspace) (*model.Workspace, error) {
	args := m.Called(ctx, ws)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) FindByID(ctx context.Context, id string) (*model.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListForAccount(ctx context.Context, accountID string, pq repository.PageQuery) (*repository.PageResult[model.Workspace], error) {
	args := m.Called(ctx, accountID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Workspace]), args.Error(1)
}

func (m *MockWorkspaceRepository) Update(ctx context.Context, ws *model.Workspace) (*model.Workspace, error) {
	args := m.Called(ctx, ws)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) AddMember(ctx context.Context, workspaceID, accountID string) error {
	args := m.Called(ctx, workspaceID, accountID)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) RemoveMember(ctx context.Context, workspaceID, accountID string) error {
	args := m.Called(ctx, workspaceID, accountID)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) IsMember(ctx context.Context, workspaceID, accountID string) (bool, error) {
	args := m.Called(ctx, workspaceID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceRepository) ListMembers(ctx context.Context, workspaceID string) ([]model.Member, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Member), args.Error(1)
}

func (m *MockWorkspaceRepository) ListPolicies(ctx context.Context, workspaceID string) ([]model.Policy, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Policy), args.Error(1)
}

func (m *MockWorkspaceRepository) FindPolicy(ctx context.Context, workspaceID, holderType, holderID string) (*model.Policy, error) {
	args := m.Called(ctx, workspaceID, holderType, holderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Policy), args.Error(1)
}

func (m *MockWorkspaceRepository) UpsertPolicy(ctx context.Context, p *model.Policy) (*model.Policy, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Policy), args.Error(1)
}
