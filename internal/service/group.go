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

// GroupInput carries the mutable group fields.
type GroupInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GroupService defines the use cases for groups and group membership.
type GroupService interface {
	// List returns all groups in a workspace.
	List(ctx context.Context, accountID, workspaceID string) ([]model.Group, error)

	// Create makes a new group in the workspace.
	Create(ctx context.Context, accountID, workspaceID string, in GroupInput) (*model.Group, error)

	// Get returns one group.
	Get(ctx context.Context, accountID, groupID string) (*model.Group, error)

	// Update changes name and description.
	Update(ctx context.Context, accountID, groupID string, in GroupInput) (*model.Group, error)

	// Delete removes a group and its memberships. Policies held by the group
	// go with it.
	Delete(ctx context.Context, accountID, groupID string) error

	// ListMembers returns the group roster.
	ListMembers(ctx context.Context, accountID, groupID string) ([]model.Member, error)

	// AddMembers adds workspace members to the group and returns the updated
	// roster.
	AddMembers(ctx context.Context, accountID, groupID string, memberIDs []string) ([]model.Member, error)

	// RemoveMember removes one account from the group.
	RemoveMember(ctx context.Context, accountID, groupID, memberID string) error
}

type groupService struct {
	perms      permissionResolver
	repo       repository.GroupRepository
	workspaces repository.WorkspaceRepository
}

// NewGroupService constructs a new GroupService.
func NewGroupService(repo repository.GroupRepository, workspaces repository.WorkspaceRepository) GroupService {
	return &groupService{
		perms:      permissionResolver{workspaces: workspaces, groups: repo},
		repo:       repo,
		workspaces: workspaces,
	}
}

// find loads the group and authorizes the caller against its workspace.
func (s *groupService) find(ctx context.Context, accountID, groupID string, required permission.Set) (*model.Group, error) {
	if groupID == "" {
		return nil, ErrIDRequired
	}
	g, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, _, err := s.perms.require(ctx, g.WorkspaceID, accountID, required); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *groupService) List(ctx context.Context, accountID, workspaceID string) ([]model.Group, error) {
	if _, _, err := s.perms.require(ctx, workspaceID, accountID, permission.GetGroups); err != nil {
		return nil, err
	}
	return s.repo.ListByWorkspace(ctx, workspaceID)
}

func (s *groupService) Create(ctx context.Context, accountID, workspaceID string, in GroupInput) (*model.Group, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	if _, _, err := s.perms.require(ctx, workspaceID, accountID, permission.CreateGroup); err != nil {
		return nil, err
	}
	g := &model.Group{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, g)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return stored, nil
}

func (s *groupService) Get(ctx context.Context, accountID, groupID string) (*model.Group, error) {
	return s.find(ctx, accountID, groupID, permission.GetGroup)
}

func (s *groupService) Update(ctx context.Context, accountID, groupID string, in GroupInput) (*model.Group, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	g, err := s.find(ctx, accountID, groupID, permission.UpdateGroup)
	if err != nil {
		return nil, err
	}
	g.Name = strings.TrimSpace(in.Name)
	g.Description = in.Description
	stored, err := s.repo.Update(ctx, g)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return stored, nil
}

func (s *groupService) Delete(ctx context.Context, accountID, groupID string) error {
	if _, err := s.find(ctx, accountID, groupID, permission.DeleteGroup); err != nil {
		return err
	}
	return s.repo.Delete(ctx, groupID)
}

func (s *groupService) ListMembers(ctx context.Context, accountID, groupID string) ([]model.Member, error) {
	if _, err := s.find(ctx, accountID, groupID, permission.GetGroupMembers); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, groupID)
}

func (s *groupService) AddMembers(ctx context.Context, accountID, groupID string, memberIDs []string) ([]model.Member, error) {
	if len(memberIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one account id is required", ErrValidation)
	}
	g, err := s.find(ctx, accountID, groupID, permission.AddGroupMembers)
	if err != nil {
		return nil, err
	}
	for _, id := range memberIDs {
		// Group members must already belong to the workspace.
		member, err := s.workspaces.IsMember(ctx, g.WorkspaceID, id)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, fmt.Errorf("%w: account %s", ErrNotMember, id)
		}
		if err := s.repo.AddMember(ctx, groupID, id); err != nil {
			return nil, err
		}
	}
	return s.repo.ListMembers(ctx, groupID)
}

func (s *groupService) RemoveMember(ctx context.Context, accountID, groupID, memberID string) error {
	if _, err := s.find(ctx, accountID, groupID, permission.RemoveGroupMembers); err != nil {
		return err
	}
	return s.repo.RemoveMember(ctx, groupID, memberID)
}
