package applicants

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"hireup-backend/internal/extract"
	"hireup-backend/internal/shared/apperr"
)

var ErrInvalidResume = apperr.Invalid("invalid_resume", "resume file could not be read")

// Service owns applicant profiles and the email to applicant ID mapping
// other components resolve ownership through.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates the applicant profile behind a new account.
func (s *Service) Register(ctx context.Context, accountID, email, name string) (Applicant, error) {
	applicant := Applicant{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Email:     email,
		Name:      name,
		Skills:    []string{},
	}
	if err := s.Repo.Create(ctx, applicant); err != nil {
		return Applicant{}, err
	}
	return applicant, nil
}

// GetIDByEmail resolves the applicant ID for an account email.
func (s *Service) GetIDByEmail(ctx context.Context, email string) (string, error) {
	applicant, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return applicant.ID, nil
}

// GetByEmail returns the full profile for an account email.
func (s *Service) GetByEmail(ctx context.Context, email string) (Applicant, error) {
	return s.Repo.GetByEmail(ctx, email)
}

// UpdateSkills replaces the applicant's skill list.
func (s *Service) UpdateSkills(ctx context.Context, email string, skills []string) error {
	applicant, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	cleaned := make([]string, 0, len(skills))
	for _, skill := range skills {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return s.Repo.UpdateSkills(ctx, applicant.ID, cleaned)
}

// UploadResume extracts text from an uploaded CV and stores it on the profile.
func (s *Service) UploadResume(ctx context.Context, email string, data []byte, mimeType, fileName string) error {
	applicant, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	text, err := extract.Text(ctx, data, mimeType, fileName)
	if err != nil {
		return ErrInvalidResume
	}
	return s.Repo.UpdateResumeText(ctx, applicant.ID, text)
}
