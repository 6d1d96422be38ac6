package postgres

import (
	"context"
	"database/sql"

	"pollapi/internal/model"
	"pollapi/internal/repository"
)

// WorkspacePostgres is a PostgreSQL implementation of repository.WorkspaceRepository.
type WorkspacePostgres struct {
	db *sql.DB
}

// NewWorkspacePostgres creates a new WorkspacePostgres repository.
func NewWorkspacePostgres(db *sql.DB) *WorkspacePostgres {
	return &WorkspacePostgres{db: db}
}

var _ repository.WorkspaceRepository = (*WorkspacePostgres)(nil)

// Create inserts a new workspace row and returns the stored record.
func (r *WorkspacePostgres) Create(ctx context.Context, ws *model.Workspace) (*model.Workspace, error) {
	const q = `
		INSERT INTO workspaces (id, name, description, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, owner_id, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		ws.ID,
		ws.Name,
		ws.Description,
		ws.OwnerID,
		ws.CreatedAt,
	)
	return scanWorkspace(row)
}

// FindByID fetches a single workspace by its ID.
func (r *WorkspacePostgres) FindByID(ctx context.Context, id string) (*model.Workspace, error) {
	const q = `
		SELECT id, name, description, owner_id, created_at
		FROM workspaces
		WHERE id = $1
	`
	return scanWorkspace(r.db.QueryRowContext(ctx, q, id))
}

// ListForAccount returns workspaces where the account is a member, with a total count.
func (r *WorkspacePostgres) ListForAccount(ctx context.Context, accountID string, pq repository.PageQuery) (*repository.PageResult[model.Workspace], error) {
	const qCount = `
		SELECT COUNT(*)
		FROM workspaces w
		JOIN workspace_members m ON m.workspace_id = w.id
		WHERE m.account_id = $1
	`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, accountID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT w.id, w.name, w.description, w.owner_id, w.created_at
		FROM workspaces w
		JOIN workspace_members m ON m.workspace_id = w.id
		WHERE m.account_id = $1
		ORDER BY w.created_at DESC, w.id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, accountID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Workspace, 0)
	for rows.Next() {
		var w model.Workspace
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &w.OwnerID, &w.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Workspace]{Items: items, Total: total}, nil
}

// Update persists name and description changes and returns the stored record.
func (r *WorkspacePostgres) Update(ctx context.Context, ws *model.Workspace) (*model.Workspace, error) {
	const q = `
		UPDATE workspaces
		SET name = $2, description = $3
		WHERE id = $1
		RETURNING id, name, description, owner_id, created_at
	`
	return scanWorkspace(r.db.QueryRowContext(ctx, q, ws.ID, ws.Name, ws.Description))
}

// Delete removes a workspace by ID. It does not return an error if the row does not exist.
func (r *WorkspacePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM workspaces WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// AddMember inserts a membership row; re-adding an existing member is a no-op.
func (r *WorkspacePostgres) AddMember(ctx context.Context, workspaceID, accountID string) error {
	const q = `
		INSERT INTO workspace_members (workspace_id, account_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, q, workspaceID, accountID)
	return err
}

// RemoveMember deletes the membership row and the account's own policy in the workspace.
func (r *WorkspacePostgres) RemoveMember(ctx context.Context, workspaceID, accountID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const qMember = `DELETE FROM workspace_members WHERE workspace_id = $1 AND account_id = $2`
	if _, err := tx.ExecContext(ctx, qMember, workspaceID, accountID); err != nil {
		return err
	}
	const qPolicy = `DELETE FROM policies WHERE workspace_id = $1 AND holder_type = 'account' AND holder_id = $2`
	if _, err := tx.ExecContext(ctx, qPolicy, workspaceID, accountID); err != nil {
		return err
	}
	return tx.Commit()
}

// IsMember reports whether the account belongs to the workspace.
func (r *WorkspacePostgres) IsMember(ctx context.Context, workspaceID, accountID string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM workspace_members WHERE workspace_id = $1 AND account_id = $2
		)
	`
	var ok bool
	if err := r.db.QueryRowContext(ctx, q, workspaceID, accountID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// ListMembers returns the roster joined with account details.
func (r *WorkspacePostgres) ListMembers(ctx context.Context, workspaceID string) ([]model.Member, error) {
	const q = `
		SELECT a.id, a.email, a.first_name, a.last_name, m.added_at
		FROM workspace_members m
		JOIN accounts a ON a.id = m.account_id
		WHERE m.workspace_id = $1
		ORDER BY m.added_at ASC, a.id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMembers(rows)
}

// ListPolicies returns every policy attached to the workspace.
func (r *WorkspacePostgres) ListPolicies(ctx context.Context, workspaceID string) ([]model.Policy, error) {
	const q = `
		SELECT id, workspace_id, holder_type, holder_id, permissions
		FROM policies
		WHERE workspace_id = $1
		ORDER BY holder_type ASC, holder_id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Policy, 0)
	for rows.Next() {
		var p model.Policy
		var perms int64
		if err := rows.Scan(&p.ID, &p.WorkspaceID, &p.HolderType, &p.HolderID, &perms); err != nil {
			return nil, err
		}
		p.Permissions = uint64(perms)
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindPolicy returns the policy held by one account or group, or sql.ErrNoRows.
func (r *WorkspacePostgres) FindPolicy(ctx context.Context, workspaceID, holderType, holderID string) (*model.Policy, error) {
	const q = `
		SELECT id, workspace_id, holder_type, holder_id, permissions
		FROM policies
		WHERE workspace_id = $1 AND holder_type = $2 AND holder_id = $3
	`
	var p model.Policy
	var perms int64
	err := r.db.QueryRowContext(ctx, q, workspaceID, holderType, holderID).
		Scan(&p.ID, &p.WorkspaceID, &p.HolderType, &p.HolderID, &perms)
	if err != nil {
		return nil, err
	}
	p.Permissions = uint64(perms)
	return &p, nil
}

// UpsertPolicy inserts the policy or replaces the permissions of an existing one.
func (r *WorkspacePostgres) UpsertPolicy(ctx context.Context, p *model.Policy) (*model.Policy, error) {
	const q = `
		INSERT INTO policies (id, workspace_id, holder_type, holder_id, permissions)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (workspace_id, holder_type, holder_id)
		DO UPDATE SET permissions = EXCLUDED.permissions
		RETURNING id, workspace_id, holder_type, holder_id, permissions
	`
	var out model.Policy
	var perms int64
	err := r.db.QueryRowContext(ctx, q, p.ID, p.WorkspaceID, p.HolderType, p.HolderID, int64(p.Permissions)).
		Scan(&out.ID, &out.WorkspaceID, &out.HolderType, &out.HolderID, &perms)
	if err != nil {
		return nil, err
	}
	out.Permissions = uint64(perms)
	return &out, nil
}

func scanWorkspace(row *sql.Row) (*model.Workspace, error) {
	var w model.Workspace
	if err := row.Scan(
		&w.ID,
		&w.Name,
		&w.Description,
		&w.OwnerID,
		&w.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &w, nil
}

func scanMembers(rows *sql.Rows) ([]model.Member, error) {
	items := make([]model.Member, 0)
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.AccountID, &m.Email, &m.FirstName, &m.LastName, &m.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
