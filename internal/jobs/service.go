package jobs

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"hireup-backend/internal/shared/apperr"
)

var ErrMissingTitle = apperr.Invalid("validation_error", "job title is required")

// CompanyDirectory resolves the company profile behind a session email.
type CompanyDirectory interface {
	GetIDByEmail(ctx context.Context, email string) (string, error)
}

// Service manages job postings on behalf of companies.
type Service struct {
	Repo      Repo
	Companies CompanyDirectory
}

func NewService(repo Repo, companies CompanyDirectory) *Service {
	return &Service{Repo: repo, Companies: companies}
}

// CreateInput carries everything a company supplies when posting a job.
type CreateInput struct {
	Title               string
	Description         string
	RequiredSkills      []string
	Salary              string
	ApplicationDeadline time.Time
	QuizDeadline        time.Time
	InterviewDeadline   time.Time
	QuizRequired        bool
	Published           bool
	Questions           []InterviewQuestion
}

// Create posts a job owned by the company behind companyEmail.
func (s *Service) Create(ctx context.Context, companyEmail string, in CreateInput) (Job, error) {
	companyID, err := s.Companies.GetIDByEmail(ctx, companyEmail)
	if err != nil {
		return Job{}, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return Job{}, ErrMissingTitle
	}
	if in.ApplicationDeadline.IsZero() {
		return Job{}, ErrNoDeadline
	}

	job := Job{
		ID:                  uuid.NewString(),
		CompanyID:           companyID,
		Title:               strings.TrimSpace(in.Title),
		Description:         in.Description,
		RequiredSkills:      in.RequiredSkills,
		Salary:              in.Salary,
		ApplicationDeadline: in.ApplicationDeadline,
		QuizDeadline:        in.QuizDeadline,
		InterviewDeadline:   in.InterviewDeadline,
		QuizRequired:        in.QuizRequired,
		Published:           in.Published,
		Questions:           in.Questions,
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Get returns a job by ID.
func (s *Service) Get(ctx context.Context, jobID string) (Job, error) {
	return s.Repo.GetByID(ctx, jobID)
}

// ListAvailable returns published jobs whose application window is still open.
func (s *Service) ListAvailable(ctx context.Context, limit, page int) ([]Job, int, error) {
	limit = normalizeLimit(limit)
	list, err := s.Repo.ListAvailable(ctx, limit, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountAvailable(ctx)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByCompany returns the company's own postings, drafts included.
func (s *Service) ListByCompany(ctx context.Context, companyEmail string, limit, page int) ([]Job, int, error) {
	companyID, err := s.Companies.GetIDByEmail(ctx, companyEmail)
	if err != nil {
		return nil, 0, err
	}
	limit = normalizeLimit(limit)
	list, err := s.Repo.ListByCompany(ctx, companyID, limit, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Delete removes a posting after verifying the caller owns it.
func (s *Service) Delete(ctx context.Context, companyEmail, jobID string) error {
	companyID, err := s.Companies.GetIDByEmail(ctx, companyEmail)
	if err != nil {
		return err
	}
	job, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.CompanyID != companyID {
		return ErrNotOwned
	}
	return s.Repo.Delete(ctx, jobID)
}

// RequireOwned loads a job and verifies it belongs to the given company.
func (s *Service) RequireOwned(ctx context.Context, companyEmail, jobID string) (Job, error) {
	companyID, err := s.Companies.GetIDByEmail(ctx, companyEmail)
	if err != nil {
		return Job{}, err
	}
	job, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return Job{}, err
	}
	if job.CompanyID != companyID {
		return Job{}, ErrNotOwned
	}
	return job, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
