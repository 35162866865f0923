package accounts

import (
	"context"

	"hireup-backend/internal/shared/apperr"
)

var (
	ErrNotFound      = apperr.NotFound("account_not_found", "Account not found")
	ErrEmailExists   = apperr.Conflict("email_exists", "Email already exist")
	ErrWrongPassword = apperr.Invalid("wrong_password", "Wrong password")
	ErrInvalidRole   = apperr.Invalid("invalid_role", "Invalid role")
)

type Repo interface {
	Create(ctx context.Context, account Account) error
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, accountID string) (Account, error)
}
