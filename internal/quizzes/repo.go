package quizzes

import (
	"context"

	"hireup-backend/internal/shared/apperr"
)

var (
	ErrNotFound      = apperr.NotFound("quiz_not_found", "Quiz not found")
	ErrAlreadyExists = apperr.Conflict("quiz_exists", "Quiz already exists")
)

type Repo interface {
	Create(ctx context.Context, quiz Quiz) error
	GetByJob(ctx context.Context, jobID string) (Quiz, error)
	DeleteByJob(ctx context.Context, jobID string) error
}
