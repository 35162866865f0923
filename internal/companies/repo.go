package companies

import (
	"context"

	"hireup-backend/internal/shared/apperr"
)

var ErrNotFound = apperr.NotFound("account_not_found", "Account not found")

type Repo interface {
	Create(ctx context.Context, company Company) error
	GetByID(ctx context.Context, companyID string) (Company, error)
	GetByEmail(ctx context.Context, email string) (Company, error)
}
