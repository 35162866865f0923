package companies

import (
	"context"

	"github.com/google/uuid"
)

// Service owns company profiles and the email to company ID mapping used by
// job and quiz ownership checks.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates the company profile behind a new account.
func (s *Service) Register(ctx context.Context, accountID, email, name string) (Company, error) {
	company := Company{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Email:     email,
		Name:      name,
	}
	if err := s.Repo.Create(ctx, company); err != nil {
		return Company{}, err
	}
	return company, nil
}

// GetIDByEmail resolves the company ID for an account email.
func (s *Service) GetIDByEmail(ctx context.Context, email string) (string, error) {
	company, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return company.ID, nil
}

// GetByID returns the company profile.
func (s *Service) GetByID(ctx context.Context, companyID string) (Company, error) {
	return s.Repo.GetByID(ctx, companyID)
}
