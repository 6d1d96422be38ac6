package postgres

import (
	"context"
	"database/sql"

	"pollapi/internal/model"
	"pollapi/internal/repository"
)

// GroupPostgres is a PostgreSQL implementation of repository.GroupRepository.
type GroupPostgres struct {
	db *sql.DB
}

// NewGroupPostgres creates a new GroupPostgres repository.
func NewGroupPostgres(db *sql.DB) *GroupPostgres {
	return &GroupPostgres{db: db}
}

var _ repository.GroupRepository = (*GroupPostgres)(nil)

// Create inserts a new group row and returns the stored record.
func (r *GroupPostgres) Create(ctx context.Context, g *model.Group) (*model.Group, error) {
	const q = `
		INSERT INTO groups (id, workspace_id, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, workspace_id, name, description, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		g.ID,
		g.WorkspaceID,
		g.Name,
		g.Description,
		g.CreatedAt,
	)
	return scanGroup(row)
}

// FindByID fetches a single group by its ID.
func (r *GroupPostgres) FindByID(ctx context.Context, id string) (*model.Group, error) {
	const q = `
		SELECT id, workspace_id, name, description, created_at
		FROM groups
		WHERE id = $1
	`
	return scanGroup(r.db.QueryRowContext(ctx, q, id))
}

// ListByWorkspace returns all groups in a workspace ordered by name.
func (r *GroupPostgres) ListByWorkspace(ctx context.Context, workspaceID string) ([]model.Group, error) {
	const q = `
		SELECT id, workspace_id, name, description, created_at
		FROM groups
		WHERE workspace_id = $1
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, q, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Group, 0)
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.WorkspaceID, &g.Name, &g.Description, &g.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists name and description changes and returns the stored record.
func (r *GroupPostgres) Update(ctx context.Context, g *model.Group) (*model.Group, error) {
	const q = `
		UPDATE groups
		SET name = $2, description = $3
		WHERE id = $1
		RETURNING id, workspace_id, name, description, created_at
	`
	return scanGroup(r.db.QueryRowContext(ctx, q, g.ID, g.Name, g.Description))
}

// Delete removes a group by ID. It does not return an error if the row does not exist.
func (r *GroupPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM groups WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// AddMember inserts a group membership row; re-adding an existing member is a no-op.
func (r *GroupPostgres) AddMember(ctx context.Context, groupID, accountID string) error {
	const q = `
		INSERT INTO group_members (group_id, account_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, q, groupID, accountID)
	return err
}

// RemoveMember deletes a group membership row.
func (r *GroupPostgres) RemoveMember(ctx context.Context, groupID, accountID string) error {
	const q = `DELETE FROM group_members WHERE group_id = $1 AND account_id = $2`
	_, err := r.db.ExecContext(ctx, q, groupID, accountID)
	return err
}

// ListMembers returns the group roster joined with account details.
func (r *GroupPostgres) ListMembers(ctx context.Context, groupID string) ([]model.Member, error) {
	const q = `
		SELECT a.id, a.email, a.first_name, a.last_name, m.added_at
		FROM group_members m
		JOIN accounts a ON a.id = m.account_id
		WHERE m.group_id = $1
		ORDER BY m.added_at ASC, a.id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMembers(rows)
}

// ListAccountGroupIDs returns IDs of the workspace's groups the account belongs to.
func (r *GroupPostgres) ListAccountGroupIDs(ctx context.Context, workspaceID, accountID string) ([]string, error) {
	const q = `
		SELECT g.id
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE g.workspace_id = $1 AND m.account_id = $2
	`
	rows, err := r.db.QueryContext(ctx, q, workspaceID, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func scanGroup(row *sql.Row) (*model.Group, error) {
	var g model.Group
	if err := row.Scan(
		&g.ID,
		&g.WorkspaceID,
		&g.Name,
		&g.Description,
		&g.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &g, nil
}
