package repository

import (
	"context"

	"pollapi/internal/model"
)

// PollRepository defines data access for polls and their question/option tree.
type PollRepository interface {
	// Create inserts the poll with its questions and options in one
	// transaction and returns the stored tree.
	Create(ctx context.Context, p *model.Poll) (*model.Poll, error)

	// FindByID returns a poll with questions and options populated.
	FindByID(ctx context.Context, id string) (*model.Poll, error)

	// ListByWorkspace returns polls in a workspace, newest first, without the
	// question tree. When publishedOnly is set, drafts are filtered out.
	ListByWorkspace(ctx context.Context, workspaceID string, publishedOnly bool, pq PageQuery) (*PageResult[model.Poll], error)

	// Update persists name and description changes.
	Update(ctx context.Context, p *model.Poll) (*model.Poll, error)

	// SetPublished flips the published flag.
	SetPublished(ctx context.Context, id string, published bool) error

	// Delete removes a poll by ID. Questions, options, and votes cascade.
	Delete(ctx context.Context, id string) error
}
