package service

import (
	"context"
	"database/sql"
	"errors"

	"pollapi/internal/model"
	"pollapi/internal/permission"
	"pollapi/internal/repository"
)

// permissionResolver computes the effective permission set an account holds in
// a workspace: the owner gets everything; members get their account policy,
// the policies of groups they belong to, and the member baseline; non-members
// get nothing.
type permissionResolver struct {
	workspaces repository.WorkspaceRepository
	groups     repository.GroupRepository
}

func (r permissionResolver) resolve(ctx context.Context, ws *model.Workspace, accountID string) (permission.Set, error) {
	if ws.OwnerID == accountID {
		return permission.All, nil
	}

	member, err := r.workspaces.IsMember(ctx, ws.ID, accountID)
	if err != nil {
		return 0, err
	}
	if !member {
		return 0, nil
	}

	held := permission.MemberDefault

	p, err := r.workspaces.FindPolicy(ctx, ws.ID, model.PolicyHolderAccount, accountID)
	switch {
	case err == nil:
		held |= permission.Set(p.Permissions)
	case errors.Is(err, sql.ErrNoRows):
		// no account-level policy, group policies may still apply
	default:
		return 0, err
	}

	groupIDs, err := r.groups.ListAccountGroupIDs(ctx, ws.ID, accountID)
	if err != nil {
		return 0, err
	}
	for _, gid := range groupIDs {
		gp, err := r.workspaces.FindPolicy(ctx, ws.ID, model.PolicyHolderGroup, gid)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return 0, err
		}
		held |= permission.Set(gp.Permissions)
	}

	return held, nil
}

// require loads the workspace and checks the caller holds the required
// permissions. Returns ErrNotFound for missing workspaces and ErrForbidden
// for holders without the required set.
func (r permissionResolver) require(ctx context.Context, workspaceID, accountID string, required permission.Set) (*model.Workspace, permission.Set, error) {
	ws, err := r.workspaces.FindByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}
	held, err := r.resolve(ctx, ws, accountID)
	if err != nil {
		return nil, 0, err
	}
	if !held.Has(required) {
		return nil, 0, ErrForbidden
	}
	return ws, held, nil
}
