package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pollapi/internal/model"
	repoMocks "pollapi/internal/repository/mocks"
)

func TestGroupService_Create(t *testing.T) {
	ctx := context.Background()
	workspace := &model.Workspace{ID: "ws-1", OwnerID: "owner-1"}

	t.Run("happy path", func(t *testing.T) {
		mGr := new(repoMocks.MockGroupRepository)
		mWs := new(repoMocks.MockWorkspaceRepository)
		mWs.On("FindByID", ctx, "ws-1").Return(workspace, nil)
		mGr.On("Create", ctx, mock.MatchedBy(func(g *model.Group) bool {
			return g.WorkspaceID == "ws-1" && g.Name == "backend" && g.ID != ""
		})).Return(&model.Group{ID: "g-1", Name: "backend"}, nil)

		svc := NewGroupService(mGr, mWs)
		g, err := svc.Create(ctx, "owner-1", "ws-1", GroupInput{Name: "backend"})

		assert.NoError(t, err)
		assert.Equal(t, "g-1", g.ID)
		mGr.AssertExpectations(t)
	})

	t.Run("plain member cannot create groups", func(t *testing.T) {
		mGr := new(repoMocks.MockGroupRepository)
		mWs := new(repoMocks.MockWorkspaceRepository)
		mWs.On("FindByID", ctx, "ws-1").Return(workspace, nil)
		mWs.On("IsMember", ctx, "ws-1", "member-1").Return(true, nil)
		mWs.On("FindPolicy", ctx, "ws-1", model.PolicyHolderAccount, "member-1").Return(nil, sql.ErrNoRows)
		mGr.On("ListAccountGroupIDs", ctx, "ws-1", "member-1").Return([]string{}, nil)

		svc := NewGroupService(mGr, mWs)
		_, err := svc.Create(ctx, "member-1", "ws-1", GroupInput{Name: "backend"})

		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestGroupService_AddMembers(t *testing.T) {
	ctx := context.Background()
	workspace := &model.Workspace{ID: "ws-1", OwnerID: "owner-1"}
	group := &model.Group{ID: "g-1", WorkspaceID: "ws-1", Name: "backend"}

	t.Run("adds a workspace member", func(t *testing.T) {
		mGr := new(repoMocks.MockGroupRepository)
		mWs := new(repoMocks.MockWorkspaceRepository)
		mGr.On("FindByID", ctx, "g-1").Return(group, nil)
		mWs.On("FindByID", ctx, "ws-1").Return(workspace, nil)
		mWs.On("IsMember", ctx, "ws-1", "acc-2").Return(true, nil)
		mGr.On("AddMember", ctx, "g-1", "acc-2").Return(nil)
		mGr.On("ListMembers", ctx, "g-1").Return([]model.Member{{AccountID: "acc-2"}}, nil)

		svc := NewGroupService(mGr, mWs)
		members, err := svc.AddMembers(ctx, "owner-1", "g-1", []string{"acc-2"})

		assert.NoError(t, err)
		assert.Len(t, members, 1)
		mGr.AssertExpectations(t)
	})

	t.Run("rejects accounts outside the workspace", func(t *testing.T) {
		mGr := new(repoMocks.MockGroupRepository)
		mWs := new(repoMocks.MockWorkspaceRepository)
		mGr.On("FindByID", ctx, "g-1").Return(group, nil)
		mWs.On("FindByID", ctx, "ws-1").Return(workspace, nil)
		mWs.On("IsMember", ctx, "ws-1", "stranger").Return(false, nil)

		svc := NewGroupService(mGr, mWs)
		_, err := svc.AddMembers(ctx, "owner-1", "g-1", []string{"stranger"})

		assert.ErrorIs(t, err, ErrNotMember)
		mGr.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGroupService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("missing group", func(t *testing.T) {
		mGr := new(repoMocks.MockGroupRepository)
		mGr.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		svc := NewGroupService(mGr, new(repoMocks.MockWorkspaceRepository))
		_, err := svc.Get(ctx, "owner-1", "missing")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}
