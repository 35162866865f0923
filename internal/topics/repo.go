package topics

import (
	"context"

	"hireup-backend/internal/shared/apperr"
)

var (
	ErrNotFound      = apperr.NotFound("topic_not_found", "Topic not found")
	ErrAlreadyExists = apperr.Conflict("topic_already_exists", "Topic already exists")
)

// Repo persists topics keyed by their unique name.
type Repo interface {
	Create(ctx context.Context, topic Topic) error
	GetByName(ctx context.Context, name string) (Topic, error)
	ListNames(ctx context.Context) ([]string, error)
	DeleteByName(ctx context.Context, name string) error
}
