package service

import (
	"context"
	"database/sql"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pollapi/internal/model"
	repoMocks "pollapi/internal/repository/mocks"
	"pollapi/internal/storage"
	storeMocks "pollapi/internal/storage/mocks"
)

func publishedPoll() *model.Poll {
	return &model.Poll{
		ID:          "poll-1",
		WorkspaceID: "ws-1",
		Name:        "lunch poll",
		Published:   true,
		Questions: []model.Question{
			{
				ID:     "q-1",
				Prompt: "Where to eat?",
				Options: []model.Option{
					{ID: "opt-1", Label: "Pizza"},
					{ID: "opt-2", Label: "Sushi"},
				},
			},
			{
				ID:     "q-2",
				Prompt: "When?",
				Options: []model.Option{
					{ID: "opt-3", Label: "Noon"},
					{ID: "opt-4", Label: "One"},
				},
			},
		},
	}
}

func TestVoteService_CastBallot(t *testing.T) {
	ctx := context.Background()
	workspace := &model.Workspace{ID: "ws-1", OwnerID: "owner-1"}

	tests := []struct {
		name       string
		poll       *model.Poll
		answers    map[string]string
		setupMocks func(mVotes *repoMocks.MockVoteRepository)
		wantErr    error
	}{
		{
			name:    "happy path",
			poll:    publishedPoll(),
			answers: map[string]string{"q-1": "opt-1", "q-2": "opt-4"},
			setupMocks: func(mVotes *repoMocks.MockVoteRepository) {
				mVotes.On("HasVoted", ctx, "poll-1", "owner-1").Return(false, nil)
				mVotes.On("CreateBallot", ctx, mock.MatchedBy(func(votes []model.Vote) bool {
					return len(votes) == 2 &&
						votes[0].OptionID == "opt-1" &&
						votes[1].OptionID == "opt-4" &&
						votes[0].AccountID == "owner-1"
				})).Return(nil)
			},
		},
		{
			name: "draft poll rejects ballots",
			poll: func() *model.Poll {
				p := publishedPoll()
				p.Published = false
				return p
			}(),
			answers:    map[string]string{"q-1": "opt-1", "q-2": "opt-4"},
			setupMocks: func(mVotes *repoMocks.MockVoteRepository) {},
			wantErr:    ErrPollNotPublished,
		},
		{
			name:    "double voting",
			poll:    publishedPoll(),
			answers: map[string]string{"q-1": "opt-1", "q-2": "opt-4"},
			setupMocks: func(mVotes *repoMocks.MockVoteRepository) {
				mVotes.On("HasVoted", ctx, "poll-1", "owner-1").Return(true, nil)
			},
			wantErr: ErrAlreadyVoted,
		},
		{
			name:    "incomplete ballot",
			poll:    publishedPoll(),
			answers: map[string]string{"q-1": "opt-1"},
			setupMocks: func(mVotes *repoMocks.MockVoteRepository) {
				mVotes.On("HasVoted", ctx, "poll-1", "owner-1").Return(false, nil)
			},
			wantErr: ErrValidation,
		},
		{
			name:    "option from another question",
			poll:    publishedPoll(),
			answers: map[string]string{"q-1": "opt-3", "q-2": "opt-4"},
			setupMocks: func(mVotes *repoMocks.MockVoteRepository) {
				mVotes.On("HasVoted", ctx, "poll-1", "owner-1").Return(false, nil)
			},
			wantErr: ErrValidation,
		},
		{
			name:    "answer for an unknown question",
			poll:    publishedPoll(),
			answers: map[string]string{"q-1": "opt-1", "q-bogus": "opt-4"},
			setupMocks: func(mVotes *repoMocks.MockVoteRepository) {
				mVotes.On("HasVoted", ctx, "poll-1", "owner-1").Return(false, nil)
			},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mVotes := new(repoMocks.MockVoteRepository)
			mPolls := new(repoMocks.MockPollRepository)
			mWs := new(repoMocks.MockWorkspaceRepository)
			mGr := new(repoMocks.MockGroupRepository)
			mPolls.On("FindByID", ctx, "poll-1").Return(tt.poll, nil)
			mWs.On("FindByID", ctx, "ws-1").Return(workspace, nil)
			tt.setupMocks(mVotes)

			svc := NewVoteService(mVotes, mPolls, mWs, mGr, new(storeMocks.MockStorage))
			err := svc.CastBallot(ctx, "owner-1", "poll-1", BallotInput{Answers: tt.answers})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			mVotes.AssertExpectations(t)
		})
	}
}

func TestVoteService_Results(t *testing.T) {
	ctx := context.Background()
	workspace := &model.Workspace{ID: "ws-1", OwnerID: "owner-1"}

	mVotes := new(repoMocks.MockVoteRepository)
	mPolls := new(repoMocks.MockPollRepository)
	mWs := new(repoMocks.MockWorkspaceRepository)
	mPolls.On("FindByID", ctx, "poll-1").Return(publishedPoll(), nil)
	mWs.On("FindByID", ctx, "ws-1").Return(workspace, nil)
	mVotes.On("CountByOption", ctx, "poll-1").Return([]model.OptionCount{
		{QuestionID: "q-1", OptionID: "opt-1", Count: 3},
		{QuestionID: "q-2", OptionID: "opt-4", Count: 3},
	}, nil)
	mVotes.On("CountBallots", ctx, "poll-1").Return(3, nil)

	svc := NewVoteService(mVotes, mPolls, mWs, new(repoMocks.MockGroupRepository), new(storeMocks.MockStorage))
	results, err := svc.Results(ctx, "owner-1", "poll-1")

	assert.NoError(t, err)
	assert.Equal(t, 3, results.Ballots)
	assert.Len(t, results.Questions, 2)
	// zero-vote options still appear in the tally
	assert.Equal(t, 3, results.Questions[0].Options[0].Count)
	assert.Equal(t, 0, results.Questions[0].Options[1].Count)
	mVotes.AssertExpectations(t)
}

func TestVoteService_DraftHiddenFromPlainMember(t *testing.T) {
	ctx := context.Background()
	workspace := &model.Workspace{ID: "ws-1", OwnerID: "owner-1"}
	draft := publishedPoll()
	draft.Published = false

	newMocks := func() (*repoMocks.MockVoteRepository, VoteService) {
		mVotes := new(repoMocks.MockVoteRepository)
		mPolls := new(repoMocks.MockPollRepository)
		mWs := new(repoMocks.MockWorkspaceRepository)
		mGr := new(repoMocks.MockGroupRepository)
		mPolls.On("FindByID", ctx, "poll-1").Return(draft, nil)
		mWs.On("FindByID", ctx, "ws-1").Return(workspace, nil)
		mWs.On("IsMember", ctx, "ws-1", "member-1").Return(true, nil)
		mWs.On("FindPolicy", ctx, "ws-1", model.PolicyHolderAccount, "member-1").Return(nil, sql.ErrNoRows)
		mGr.On("ListAccountGroupIDs", ctx, "ws-1", "member-1").Return([]string{}, nil)
		return mVotes, NewVoteService(mVotes, mPolls, mWs, mGr, new(storeMocks.MockStorage))
	}

	t.Run("results report not found", func(t *testing.T) {
		mVotes, svc := newMocks()
		_, err := svc.Results(ctx, "member-1", "poll-1")

		assert.ErrorIs(t, err, ErrNotFound)
		mVotes.AssertNotCalled(t, "CountByOption", mock.Anything, mock.Anything)
		mVotes.AssertNotCalled(t, "CountBallots", mock.Anything, mock.Anything)
	})

	t.Run("ballot reports not found, not unpublished", func(t *testing.T) {
		mVotes, svc := newMocks()
		err := svc.CastBallot(ctx, "member-1", "poll-1", BallotInput{
			Answers: map[string]string{"q-1": "opt-1", "q-2": "opt-4"},
		})

		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrPollNotPublished)
		mVotes.AssertNotCalled(t, "CreateBallot", mock.Anything, mock.Anything)
	})
}

func TestVoteService_ExportResults(t *testing.T) {
	ctx := context.Background()
	workspace := &model.Workspace{ID: "ws-1", OwnerID: "owner-1"}

	mVotes := new(repoMocks.MockVoteRepository)
	mPolls := new(repoMocks.MockPollRepository)
	mWs := new(repoMocks.MockWorkspaceRepository)
	mStore := new(storeMocks.MockStorage)
	mPolls.On("FindByID", ctx, "poll-1").Return(publishedPoll(), nil)
	mWs.On("FindByID", ctx, "ws-1").Return(workspace, nil)
	mVotes.On("CountByOption", ctx, "poll-1").Return([]model.OptionCount{
		{QuestionID: "q-1", OptionID: "opt-1", Count: 2},
	}, nil)
	mVotes.On("CountBallots", ctx, "poll-1").Return(2, nil)

	var uploaded []byte
	mStore.On("Put", ctx, "results/poll-1.csv", mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
		return opt.ContentType == "text/csv" && opt.Size > 0
	})).Run(func(args mock.Arguments) {
		uploaded, _ = io.ReadAll(args.Get(2).(io.Reader))
	}).Return(storage.ObjectInfo{Key: "results/poll-1.csv"}, nil)
	mStore.On("PresignGet", ctx, "results/poll-1.csv", exportURLTTL).
		Return("https://minio.example/results/poll-1.csv?sig=abc", nil)

	svc := NewVoteService(mVotes, mPolls, mWs, new(repoMocks.MockGroupRepository), mStore)
	export, err := svc.ExportResults(ctx, "owner-1", "poll-1")

	assert.NoError(t, err)
	assert.Contains(t, export.URL, "results/poll-1.csv")
	assert.Contains(t, string(uploaded), "question,option,count")
	assert.Contains(t, string(uploaded), "Where to eat?,Pizza,2")
	mStore.AssertExpectations(t)
}
