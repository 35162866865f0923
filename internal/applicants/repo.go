package applicants

import (
	"context"

	"hireup-backend/internal/shared/apperr"
)

var ErrNotFound = apperr.NotFound("account_not_found", "Account not found")

type Repo interface {
	Create(ctx context.Context, applicant Applicant) error
	GetByID(ctx context.Context, applicantID string) (Applicant, error)
	GetByEmail(ctx context.Context, email string) (Applicant, error)
	UpdateSkills(ctx context.Context, applicantID string, skills []string) error
	UpdateResumeText(ctx context.Context, applicantID, resumeText string) error
}
