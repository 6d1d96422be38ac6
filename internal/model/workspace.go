package model

import "time"

// Workspace is the top-level organizational unit. Every group, poll, and
// policy belongs to exactly one workspace. The owner implicitly holds every
// workspace permission.
type Workspace struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Member is an account's membership view inside a workspace or group.
type Member struct {
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	AddedAt   time.Time `json:"added_at"`
}

// PolicyHolderAccount and PolicyHolderGroup are the two holder kinds a policy
// can be attached to.
const (
	PolicyHolderAccount = "account"
	PolicyHolderGroup   = "group"
)

// Policy grants a set of permissions to a holder (account or group) within a
// workspace. Permissions is a bitmask; the permission package maps bits to
// action names.
type Policy struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	HolderType  string `json:"holder_type"`
	HolderID    string `json:"holder_id"`
	Permissions uint64 `json:"-"`
}

// Group is a named set of accounts inside a workspace. Policies can be
// attached to a group to grant permissions to all of its members at once.
type Group struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
