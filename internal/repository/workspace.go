package repository

import (
	"context"

	"pollapi/internal/model"
)

// WorkspaceRepository defines data access for workspaces, their member roster,
// and the permission policies attached to them.
type WorkspaceRepository interface {
	// Create inserts a new workspace record and returns the stored row.
	Create(ctx context.Context, ws *model.Workspace) (*model.Workspace, error)

	// FindByID returns a workspace by its ID.
	FindByID(ctx context.Context, id string) (*model.Workspace, error)

	// ListForAccount returns workspaces the account is a member of, newest first.
	ListForAccount(ctx context.Context, accountID string, pq PageQuery) (*PageResult[model.Workspace], error)

	// Update persists name and description changes.
	Update(ctx context.Context, ws *model.Workspace) (*model.Workspace, error)

	// Delete removes a workspace by ID. Memberships, groups, policies, and
	// polls go with it via cascading constraints.
	Delete(ctx context.Context, id string) error

	// AddMember inserts a membership row. Adding an existing member is a no-op.
	AddMember(ctx context.Context, workspaceID, accountID string) error

	// RemoveMember deletes a membership row and the account's policy in that
	// workspace.
	RemoveMember(ctx context.Context, workspaceID, accountID string) error

	// IsMember reports whether the account belongs to the workspace.
	IsMember(ctx context.Context, workspaceID, accountID string) (bool, error)

	// ListMembers returns the workspace roster joined with account details.
	ListMembers(ctx context.Context, workspaceID string) ([]model.Member, error)

	// ListPolicies returns every policy attached to the workspace.
	ListPolicies(ctx context.Context, workspaceID string) ([]model.Policy, error)

	// FindPolicy returns the policy for one holder, or sql.ErrNoRows.
	FindPolicy(ctx context.Context, workspaceID, holderType, holderID string) (*model.Policy, error)

	// UpsertPolicy inserts or replaces the permissions of a holder's policy.
	UpsertPolicy(ctx context.Context, p *model.Policy) (*model.Policy, error)
}
