package jobs

import (
	"context"

	"hireup-backend/internal/shared/apperr"
)

var (
	ErrNotFound   = apperr.NotFound("job_not_found", "Job not found")
	ErrNotOwned   = apperr.Forbidden("job_not_owned", "Job is not owned by this company")
	ErrNoDeadline = apperr.Invalid("invalid_deadline", "Invalid date")
)

type Repo interface {
	Create(ctx context.Context, job Job) error
	GetByID(ctx context.Context, jobID string) (Job, error)
	ListAvailable(ctx context.Context, limit, page int) ([]Job, error)
	ListByCompany(ctx context.Context, companyID string, limit, page int) ([]Job, error)
	CountAvailable(ctx context.Context) (int, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	Delete(ctx context.Context, jobID string) error
}
