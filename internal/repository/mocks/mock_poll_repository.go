package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pollapi/internal/model"
	"pollapi/internal/repository"
)

type MockPollRepository struct {
	mock.Mock
}

func (m *MockPollRepository) Create(ctx context.Context, p *model.Poll) (*model.Poll, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Poll), args.Error(1)
}

func (m *MockPollRepository) FindByID(ctx context.Context, id string) (*model.Poll, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Poll), args.Error(1)
}

func (m *MockPollRepository) ListByWorkspace(ctx context.Context, workspaceID string, publishedOnly bool, pq repository.PageQuery) (*repository.PageResult[model.Poll], error) {
	args := m.Called(ctx, workspaceID, publishedOnly, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Poll]), args.Error(1)
}

func (m *MockPollRepository) Update(ctx context.Context, p *model.Poll) (*model.Poll, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Poll), args.Error(1)
}

func (m *MockPollRepository) SetPublished(ctx context.Context, id string, published bool) error {
	args := m.Called(ctx, id, published)
	return args.Error(0)
}

func (m *MockPollRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
