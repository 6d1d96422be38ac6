package repository

import (
	"context"

	"pollapi/internal/model"
)

// GroupRepository defines data access for groups and group membership.
type GroupRepository interface {
	// Create inserts a new group record and returns the stored row.
	Create(ctx context.Context, g *model.Group) (*model.Group, error)

	// FindByID returns a group by its ID.
	FindByID(ctx context.Context, id string) (*model.Group, error)

	// ListByWorkspace returns all groups in a workspace ordered by name.
	ListByWorkspace(ctx context.Context, workspaceID string) ([]model.Group, error)

	// Update persists name and description changes.
	Update(ctx context.Context, g *model.Group) (*model.Group, error)

	// Delete removes a group by ID.
	Delete(ctx context.Context, id string) error

	// AddMember inserts a group membership row. Adding an existing member is a
	// no-op.
	AddMember(ctx context.Context, groupID, accountID string) error

	// RemoveMember deletes a group membership row.
	RemoveMember(ctx context.Context, groupID, accountID string) error

	// ListMembers returns the group roster joined with account details.
	ListMembers(ctx context.Context, groupID string) ([]model.Member, error)

	// ListAccountGroupIDs returns the IDs of the workspace's groups the account
	// belongs to. Used to resolve group-held policies.
	ListAccountGroupIDs(ctx context.Context, workspaceID, accountID string) ([]string, error)
}
