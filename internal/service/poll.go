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
	"pollapi/internal/storage"
)

// QuestionInput is one question with its answer options, in presentation
// order.
type QuestionInput struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// PollInput carries the fields accepted when creating a poll.
type PollInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions"`
}

// PollUpdateInput carries the fields accepted when updating a poll. The
// question tree is immutable after creation so existing ballots stay valid.
type PollUpdateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PollListResult is the service-level DTO for paginated polls.
type PollListResult struct {
	Items []model.Poll `json:"data"`
	Total int          `json:"total"`
}

// PollService defines the use cases for polls.
type PollService interface {
	// List returns polls in a workspace. Callers without the update
	// permission see published polls only.
	List(ctx context.Context, accountID, workspaceID string, limit, offset int) (*PollListResult, error)

	// Create makes a new draft poll with its questions and options.
	Create(ctx context.Context, accountID, workspaceID string, in PollInput) (*model.Poll, error)

	// Get returns one poll with its question tree. Drafts are visible only to
	// callers with the update permission.
	Get(ctx context.Context, accountID, pollID string) (*model.Poll, error)

	// Update changes name and description.
	Update(ctx context.Context, accountID, pollID string, in PollUpdateInput) (*model.Poll, error)

	// Publish opens the poll for voting.
	Publish(ctx context.Context, accountID, pollID string) (*model.Poll, error)

	// Unpublish closes the poll again. Existing votes are kept.
	Unpublish(ctx context.Context, accountID, pollID string) (*model.Poll, error)

	// Delete removes the poll, its votes, and any exported results file.
	Delete(ctx context.Context, accountID, pollID string) error
}

type pollService struct {
	perms permissionResolver
	repo  repository.PollRepository
	store storage.Storage
}

// NewPollService constructs a new PollService.
func NewPollService(repo repository.PollRepository, workspaces repository.WorkspaceRepository, groups repository.GroupRepository, store storage.Storage) PollService {
	return &pollService{
		perms: permissionResolver{workspaces: workspaces, groups: groups},
		repo:  repo,
		store: store,
	}
}

// resultsKey is where a poll's exported results live in object storage.
func resultsKey(pollID string) string {
	return "results/" + pollID + ".csv"
}

// find loads the poll and authorizes the caller against its workspace.
func (s *pollService) find(ctx context.Context, accountID, pollID string, required permission.Set) (*model.Poll, permission.Set, error) {
	if pollID == "" {
		return nil, 0, ErrIDRequired
	}
	p, err := s.repo.FindByID(ctx, pollID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}
	_, held, err := s.perms.require(ctx, p.WorkspaceID, accountID, required)
	if err != nil {
		return nil, 0, err
	}
	return p, held, nil
}

func (s *pollService) List(ctx context.Context, accountID, workspaceID string, limit, offset int) (*PollListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	_, held, err := s.perms.require(ctx, workspaceID, accountID, permission.GetPolls)
	if err != nil {
		return nil, err
	}
	publishedOnly := !held.Has(permission.UpdatePoll)
	res, err := s.repo.ListByWorkspace(ctx, workspaceID, publishedOnly, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &PollListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *pollService) Create(ctx context.Context, accountID, workspaceID string, in PollInput) (*model.Poll, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	if len(in.Questions) == 0 {
		return nil, fmt.Errorf("%w: a poll needs at least one question", ErrValidation)
	}
	for i, q := range in.Questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return nil, fmt.Errorf("%w: question %d has an empty prompt", ErrValidation, i+1)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("%w: question %d needs at least two options", ErrValidation, i+1)
		}
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return nil, fmt.Errorf("%w: question %d has an empty option", ErrValidation, i+1)
			}
		}
	}
	if _, _, err := s.perms.require(ctx, workspaceID, accountID, permission.CreatePoll); err != nil {
		return nil, err
	}

	p := &model.Poll{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Published:   false,
		CreatedAt:   time.Now().UTC(),
	}
	for qi, q := range in.Questions {
		question := model.Question{
			ID:       uuid.New().String(),
			PollID:   p.ID,
			Prompt:   strings.TrimSpace(q.Prompt),
			Position: qi,
		}
		for oi, label := range q.Options {
			question.Options = append(question.Options, model.Option{
				ID:         uuid.New().String(),
				QuestionID: question.ID,
				Label:      strings.TrimSpace(label),
				Position:   oi,
			})
		}
		p.Questions = append(p.Questions, question)
	}
	return s.repo.Create(ctx, p)
}

func (s *pollService) Get(ctx context.Context, accountID, pollID string) (*model.Poll, error) {
	p, held, err := s.find(ctx, accountID, pollID, permission.GetPolls)
	if err != nil {
		return nil, err
	}
	// A draft is invisible to plain voters.
	if !p.Published && !held.Has(permission.UpdatePoll) {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *pollService) Update(ctx context.Context, accountID, pollID string, in PollUpdateInput) (*model.Poll, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	p, _, err := s.find(ctx, accountID, pollID, permission.UpdatePoll)
	if err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	return s.repo.Update(ctx, p)
}

func (s *pollService) setPublished(ctx context.Context, accountID, pollID string, published bool) (*model.Poll, error) {
	p, _, err := s.find(ctx, accountID, pollID, permission.UpdatePoll)
	if err != nil {
		return nil, err
	}
	if p.Published != published {
		if err := s.repo.SetPublished(ctx, pollID, published); err != nil {
			return nil, err
		}
		p.Published = published
	}
	return p, nil
}

func (s *pollService) Publish(ctx context.Context, accountID, pollID string) (*model.Poll, error) {
	return s.setPublished(ctx, accountID, pollID, true)
}

func (s *pollService) Unpublish(ctx context.Context, accountID, pollID string) (*model.Poll, error) {
	return s.setPublished(ctx, accountID, pollID, false)
}

func (s *pollService) Delete(ctx context.Context, accountID, pollID string) error {
	if _, _, err := s.find(ctx, accountID, pollID, permission.DeletePoll); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, pollID); err != nil {
		return err
	}
	// The exported results file may or may not exist; a failed cleanup should
	// not fail the delete.
	_ = s.store.Delete(ctx, resultsKey(pollID))
	return nil
}
