package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pollapi/internal/model"
	"pollapi/internal/permission"
	"pollapi/internal/repository"
)

// WorkspaceInput carries the mutable workspace fields.
type WorkspaceInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// WorkspaceListResult is the service-level DTO for paginated workspaces.
type WorkspaceListResult struct {
	Items []model.Workspace `json:"data"`
	Total int               `json:"total"`
}

// WorkspaceDetail is a workspace plus the optional resources requested via
// include. Absent resources are omitted from the JSON body.
type WorkspaceDetail struct {
	model.Workspace
	Groups   []model.Group  `json:"groups,omitempty"`
	Members  []model.Member `json:"members,omitempty"`
	Policies []PolicyView   `json:"policies,omitempty"`
}

// PolicyView presents a policy with its permissions as action names.
type PolicyView struct {
	HolderType  string   `json:"holder_type"`
	HolderID    string   `json:"holder_id"`
	Permissions []string `json:"permissions"`
}

// SetPolicyInput replaces the permission set of one holder.
type SetPolicyInput struct {
	HolderType  string   `json:"holder_type"`
	HolderID    string   `json:"holder_id"`
	Permissions []string `json:"permissions"`
}

// WorkspaceService defines the use cases for workspaces, their members, and
// their permission policies.
type WorkspaceService interface {
	// List returns workspaces the account belongs to.
	List(ctx context.Context, accountID string, limit, offset int) (*WorkspaceListResult, error)

	// Create makes a new workspace with the creator as owner and sole member.
	Create(ctx context.Context, accountID string, in WorkspaceInput) (*model.Workspace, error)

	// Get returns one workspace. include may name "groups", "members",
	// "policies", or "all"; resources the caller may not read are omitted
	// silently.
	Get(ctx context.Context, accountID, workspaceID string, include []string) (*WorkspaceDetail, error)

	// Update changes name and description.
	Update(ctx context.Context, accountID, workspaceID string, in WorkspaceInput) (*model.Workspace, error)

	// Delete removes the workspace and everything in it.
	Delete(ctx context.Context, accountID, workspaceID string) error

	// ListMembers returns the workspace roster.
	ListMembers(ctx context.Context, accountID, workspaceID string) ([]model.Member, error)

	// AddMembers adds existing accounts to the workspace and returns the
	// updated roster.
	AddMembers(ctx context.Context, accountID, workspaceID string, memberIDs []string) ([]model.Member, error)

	// RemoveMember removes one account from the workspace. The owner cannot
	// be removed.
	RemoveMember(ctx context.Context, accountID, workspaceID, memberID string) error

	// ListPolicies returns every policy in the workspace.
	ListPolicies(ctx context.Context, accountID, workspaceID string) ([]PolicyView, error)

	// GetPolicy returns the effective permissions of holderID, or of the
	// caller when holderID is empty.
	GetPolicy(ctx context.Context, accountID, workspaceID, holderID string) (*PolicyView, error)

	// SetPolicy replaces a holder's permission set.
	SetPolicy(ctx context.Context, accountID, workspaceID string, in SetPolicyInput) (*PolicyView, error)
}

type workspaceService struct {
	perms    permissionResolver
	repo     repository.WorkspaceRepository
	groups   repository.GroupRepository
	accounts repository.AccountRepository
}

// NewWorkspaceService constructs a new WorkspaceService.
func NewWorkspaceService(repo repository.WorkspaceRepository, groups repository.GroupRepository, accounts repository.AccountRepository) WorkspaceService {
	return &workspaceService{
		perms:    permissionResolver{workspaces: repo, groups: groups},
		repo:     repo,
		groups:   groups,
		accounts: accounts,
	}
}

func validateName(name string) error {
	if l := len(strings.TrimSpace(name)); l < 3 || l > 50 {
		return fmt.Errorf("%w: name must be 3-50 characters", ErrValidation)
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > 300 {
		return fmt.Errorf("%w: description must be at most 300 characters", ErrValidation)
	}
	return nil
}

func (s *workspaceService) List(ctx context.Context, accountID string, limit, offset int) (*WorkspaceListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.ListForAccount(ctx, accountID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &WorkspaceListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *workspaceService) Create(ctx context.Context, accountID string, in WorkspaceInput) (*model.Workspace, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}

	ws := &model.Workspace{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		OwnerID:     accountID,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, ws)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	if err := s.repo.AddMember(ctx, stored.ID, accountID); err != nil {
		return nil, fmt.Errorf("add owner membership: %w", err)
	}
	// The owner's permissions are implicit, but a full policy row keeps the
	// policy listing complete.
	_, err = s.repo.UpsertPolicy(ctx, &model.Policy{
		ID:          uuid.New().String(),
		WorkspaceID: stored.ID,
		HolderType:  model.PolicyHolderAccount,
		HolderID:    accountID,
		Permissions: uint64(permission.All),
	})
	if err != nil {
		return nil, fmt.Errorf("create owner policy: %w", err)
	}
	return stored, nil
}

func (s *workspaceService) Get(ctx context.Context, accountID, workspaceID string, include []string) (*WorkspaceDetail, error) {
	ws, held, err := s.perms.require(ctx, workspaceID, accountID, permission.GetWorkspace)
	if err != nil {
		return nil, err
	}

	detail := &WorkspaceDetail{Workspace: *ws}

	wantGroups, wantMembers, wantPolicies := false, false, false
	for _, inc := range include {
		switch inc {
		case "groups":
			wantGroups = true
		case "members":
			wantMembers = true
		case "policies":
			wantPolicies = true
		case "all":
			wantGroups, wantMembers, wantPolicies = true, true, true
		}
	}

	// Includes the caller is not allowed to read are dropped, not failed.
	if wantGroups && held.Has(permission.GetGroups) {
		if detail.Groups, err = s.groups.ListByWorkspace(ctx, ws.ID); err != nil {
			return nil, err
		}
	}
	if wantMembers && held.Has(permission.GetWorkspaceMembers) {
		if detail.Members, err = s.repo.ListMembers(ctx, ws.ID); err != nil {
			return nil, err
		}
	}
	if wantPolicies && held.Has(permission.GetWorkspacePolicies) {
		policies, err := s.repo.ListPolicies(ctx, ws.ID)
		if err != nil {
			return nil, err
		}
		detail.Policies = policyViews(policies)
	}
	return detail, nil
}

func (s *workspaceService) Update(ctx context.Context, accountID, workspaceID string, in WorkspaceInput) (*model.Workspace, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	ws, _, err := s.perms.require(ctx, workspaceID, accountID, permission.UpdateWorkspace)
	if err != nil {
		return nil, err
	}
	ws.Name = strings.TrimSpace(in.Name)
	ws.Description = in.Description
	stored, err := s.repo.Update(ctx, ws)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return stored, nil
}

func (s *workspaceService) Delete(ctx context.Context, accountID, workspaceID string) error {
	if _, _, err := s.perms.require(ctx, workspaceID, accountID, permission.DeleteWorkspace); err != nil {
		return err
	}
	return s.repo.Delete(ctx, workspaceID)
}

func (s *workspaceService) ListMembers(ctx context.Context, accountID, workspaceID string) ([]model.Member, error) {
	if _, _, err := s.perms.require(ctx, workspaceID, accountID, permission.GetWorkspaceMembers); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, workspaceID)
}

func (s *workspaceService) AddMembers(ctx context.Context, accountID, workspaceID string, memberIDs []string) ([]model.Member, error) {
	if len(memberIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one account id is required", ErrValidation)
	}
	if _, _, err := s.perms.require(ctx, workspaceID, accountID, permission.AddWorkspaceMembers); err != nil {
		return nil, err
	}
	for _, id := range memberIDs {
		// Only existing accounts can be added.
		if _, err := s.accounts.FindByID(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: account %s", ErrNotFound, id)
			}
			return nil, err
		}
		if err := s.repo.AddMember(ctx, workspaceID, id); err != nil {
			return nil, err
		}
	}
	return s.repo.ListMembers(ctx, workspaceID)
}

func (s *workspaceService) RemoveMember(ctx context.Context, accountID, workspaceID, memberID string) error {
	ws, _, err := s.perms.require(ctx, workspaceID, accountID, permission.RemoveWorkspaceMember)
	if err != nil {
		return err
	}
	if memberID == ws.OwnerID {
		return ErrOwnerImmutable
	}
	return s.repo.RemoveMember(ctx, workspaceID, memberID)
}

func (s *workspaceService) ListPolicies(ctx context.Context, accountID, workspaceID string) ([]PolicyView, error) {
	if _, _, err := s.perms.require(ctx, workspaceID, accountID, permission.GetWorkspacePolicies); err != nil {
		return nil, err
	}
	policies, err := s.repo.ListPolicies(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return policyViews(policies), nil
}

func (s *workspaceService) GetPolicy(ctx context.Context, accountID, workspaceID, holderID string) (*PolicyView, error) {
	// Anyone may read their own effective permissions; reading another
	// holder's requires the policy permission.
	required := permission.GetWorkspacePolicy
	if holderID == "" || holderID == accountID {
		holderID = accountID
		required = permission.GetWorkspace
	}
	ws, _, err := s.perms.require(ctx, workspaceID, accountID, required)
	if err != nil {
		return nil, err
	}
	held, err := s.perms.resolve(ctx, ws, holderID)
	if err != nil {
		return nil, err
	}
	return &PolicyView{
		HolderType:  model.PolicyHolderAccount,
		HolderID:    holderID,
		Permissions: held.Names(),
	}, nil
}

func (s *workspaceService) SetPolicy(ctx context.Context, accountID, workspaceID string, in SetPolicyInput) (*PolicyView, error) {
	if in.HolderType != model.PolicyHolderAccount && in.HolderType != model.PolicyHolderGroup {
		return nil, fmt.Errorf("%w: holder_type must be account or group", ErrValidation)
	}
	if in.HolderID == "" {
		return nil, fmt.Errorf("%w: holder_id is required", ErrValidation)
	}
	perms, err := permission.FromNames(in.Permissions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	ws, _, err := s.perms.require(ctx, workspaceID, accountID, permission.SetWorkspacePolicy)
	if err != nil {
		return nil, err
	}
	if in.HolderType == model.PolicyHolderAccount && in.HolderID == ws.OwnerID {
		return nil, ErrOwnerImmutable
	}

	// Only holders that belong to this workspace can carry a policy.
	switch in.HolderType {
	case model.PolicyHolderAccount:
		member, err := s.repo.IsMember(ctx, workspaceID, in.HolderID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, fmt.Errorf("%w: account %s", ErrNotMember, in.HolderID)
		}
	case model.PolicyHolderGroup:
		g, err := s.groups.FindByID(ctx, in.HolderID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: group %s", ErrNotFound, in.HolderID)
			}
			return nil, err
		}
		if g.WorkspaceID != workspaceID {
			return nil, fmt.Errorf("%w: group %s", ErrNotFound, in.HolderID)
		}
	}

	stored, err := s.repo.UpsertPolicy(ctx, &model.Policy{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		HolderType:  in.HolderType,
		HolderID:    in.HolderID,
		Permissions: uint64(perms),
	})
	if err != nil {
		return nil, err
	}
	return &PolicyView{
		HolderType:  stored.HolderType,
		HolderID:    stored.HolderID,
		Permissions: permission.Set(stored.Permissions).Names(),
	}, nil
}

func policyViews(policies []model.Policy) []PolicyView {
	views := make([]PolicyView, 0, len(policies))
	for _, p := range policies {
		views = append(views, PolicyView{
			HolderType:  p.HolderType,
			HolderID:    p.HolderID,
			Permissions: permission.Set(p.Permissions).Names(),
		})
	}
	return views
}
