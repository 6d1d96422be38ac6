package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"pollapi/internal/model"
	"pollapi/internal/permission"
	"pollapi/internal/repository"
	"pollapi/internal/storage"
)

// exportURLTTL bounds how long a presigned results download stays valid.
const exportURLTTL = 15 * time.Minute

// BallotInput maps question IDs to the chosen option ID. A ballot must answer
// every question in the poll exactly once.
type BallotInput struct {
	Answers map[string]string `json:"answers"`
}

// OptionResult is the tally of one answer option.
type OptionResult struct {
	OptionID string `json:"option_id"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
}

// QuestionResult groups option tallies under their question.
type QuestionResult struct {
	QuestionID string         `json:"question_id"`
	Prompt     string         `json:"prompt"`
	Options    []OptionResult `json:"options"`
}

// PollResults is the full tally of a poll.
type PollResults struct {
	PollID    string           `json:"poll_id"`
	Name      string           `json:"name"`
	Ballots   int              `json:"ballots"`
	Questions []QuestionResult `json:"questions"`
}

// ResultsExport points at a downloadable CSV rendition of the results.
type ResultsExport struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VoteService defines the use cases for casting ballots and reading tallies.
type VoteService interface {
	// CastBallot records one account's answers to a published poll. Each
	// account votes at most once per poll.
	CastBallot(ctx context.Context, accountID, pollID string, in BallotInput) error

	// Results returns per-option tallies for every question in the poll.
	Results(ctx context.Context, accountID, pollID string) (*PollResults, error)

	// ExportResults writes the tallies as CSV to object storage and returns a
	// presigned download URL.
	ExportResults(ctx context.Context, accountID, pollID string) (*ResultsExport, error)
}

type voteService struct {
	perms permissionResolver
	repo  repository.VoteRepository
	polls repository.PollRepository
	store storage.Storage
}

// NewVoteService constructs a new VoteService.
func NewVoteService(repo repository.VoteRepository, polls repository.PollRepository, workspaces repository.WorkspaceRepository, groups repository.GroupRepository, store storage.Storage) VoteService {
	return &voteService{
		perms: permissionResolver{workspaces: workspaces, groups: groups},
		repo:  repo,
		polls: polls,
		store: store,
	}
}

func (s *voteService) findPoll(ctx context.Context, accountID, pollID string, required permission.Set) (*model.Poll, error) {
	if pollID == "" {
		return nil, ErrIDRequired
	}
	p, err := s.polls.FindByID(ctx, pollID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	_, held, err := s.perms.require(ctx, p.WorkspaceID, accountID, required)
	if err != nil {
		return nil, err
	}
	// A draft is invisible to plain voters, on the ballot and results paths
	// just like on reads.
	if !p.Published && !held.Has(permission.UpdatePoll) {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *voteService) CastBallot(ctx context.Context, accountID, pollID string, in BallotInput) error {
	p, err := s.findPoll(ctx, accountID, pollID, permission.GetPolls)
	if err != nil {
		return err
	}
	if !p.Published {
		return ErrPollNotPublished
	}

	voted, err := s.repo.HasVoted(ctx, pollID, accountID)
	if err != nil {
		return err
	}
	if voted {
		return ErrAlreadyVoted
	}

	// Every question must be answered with one of its own options, and
	// nothing beyond the poll's questions is accepted.
	if len(in.Answers) != len(p.Questions) {
		return fmt.Errorf("%w: ballot must answer all %d questions", ErrValidation, len(p.Questions))
	}
	now := time.Now().UTC()
	votes := make([]model.Vote, 0, len(p.Questions))
	for _, q := range p.Questions {
		optionID, ok := in.Answers[q.ID]
		if !ok {
			return fmt.Errorf("%w: question %s is unanswered", ErrValidation, q.ID)
		}
		if !questionHasOption(q, optionID) {
			return fmt.Errorf("%w: option %s does not belong to question %s", ErrValidation, optionID, q.ID)
		}
		votes = append(votes, model.Vote{
			ID:         uuid.New().String(),
			PollID:     pollID,
			QuestionID: q.ID,
			OptionID:   optionID,
			AccountID:  accountID,
			CreatedAt:  now,
		})
	}

	if err := s.repo.CreateBallot(ctx, votes); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyVoted
		}
		return err
	}
	return nil
}

func (s *voteService) Results(ctx context.Context, accountID, pollID string) (*PollResults, error) {
	p, err := s.findPoll(ctx, accountID, pollID, permission.GetPollResults)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.CountByOption(ctx, pollID)
	if err != nil {
		return nil, err
	}
	ballots, err := s.repo.CountBallots(ctx, pollID)
	if err != nil {
		return nil, err
	}

	byOption := make(map[string]int, len(counts))
	for _, c := range counts {
		byOption[c.OptionID] = c.Count
	}

	// Options with zero votes still show up in the tally.
	results := &PollResults{PollID: p.ID, Name: p.Name, Ballots: ballots}
	for _, q := range p.Questions {
		qr := QuestionResult{QuestionID: q.ID, Prompt: q.Prompt}
		for _, opt := range q.Options {
			qr.Options = append(qr.Options, OptionResult{
				OptionID: opt.ID,
				Label:    opt.Label,
				Count:    byOption[opt.ID],
			})
		}
		results.Questions = append(results.Questions, qr)
	}
	return results, nil
}

func (s *voteService) ExportResults(ctx context.Context, accountID, pollID string) (*ResultsExport, error) {
	results, err := s.Results(ctx, accountID, pollID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"question", "option", "count"})
	for _, q := range results.Questions {
		for _, opt := range q.Options {
			_ = w.Write([]string{q.Prompt, opt.Label, strconv.Itoa(opt.Count)})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode results csv: %w", err)
	}

	key := resultsKey(pollID)
	_, err = s.store.Put(ctx, key, &buf, storage.PutObjectOptions{
		Size:        int64(buf.Len()),
		ContentType: "text/csv",
		Metadata:    map[string]string{"poll_id": pollID},
	})
	if err != nil {
		return nil, fmt.Errorf("upload results csv: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, exportURLTTL)
	if err != nil {
		return nil, fmt.Errorf("presign results csv: %w", err)
	}
	return &ResultsExport{URL: url, ExpiresAt: time.Now().UTC().Add(exportURLTTL)}, nil
}

func questionHasOption(q model.Question, optionID string) bool {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}
