package accounts

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hireup-backend/internal/shared/apperr"
	"hireup-backend/internal/shared/auth"
	"hireup-backend/internal/shared/server/middleware"
)

var ErrInvalidEmail = apperr.Invalid("invalid_email", "Invalid Email")

// ProfileCreator creates the role-specific profile alongside a new account.
type ProfileCreator interface {
	CreateApplicant(ctx context.Context, accountID, email, name string) error
	CreateCompany(ctx context.Context, accountID, email, name string) error
}

// Service handles registration and login. Password hashing is bcrypt;
// sessions are stateless JWTs carrying {email, role}.
type Service struct {
	Repo     Repo
	Profiles ProfileCreator
}

func NewService(repo Repo, profiles ProfileCreator) *Service {
	return &Service{Repo: repo, Profiles: profiles}
}

// Register creates an account plus its role profile and returns a session token.
func (s *Service) Register(ctx context.Context, email, password, role, name string) (Account, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return Account{}, "", ErrInvalidEmail
	}
	switch role {
	case middleware.RoleApplicant, middleware.RoleCompany, middleware.RoleAdmin:
	default:
		return Account{}, "", ErrInvalidRole
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return Account{}, "", ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return Account{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, "", err
	}

	account := Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.Repo.Create(ctx, account); err != nil {
		return Account{}, "", err
	}

	switch role {
	case middleware.RoleApplicant:
		if err := s.Profiles.CreateApplicant(ctx, account.ID, email, name); err != nil {
			return Account{}, "", err
		}
	case middleware.RoleCompany:
		if err := s.Profiles.CreateCompany(ctx, account.ID, email, name); err != nil {
			return Account{}, "", err
		}
	}

	token, err := s.issueToken(account)
	if err != nil {
		return Account{}, "", err
	}
	return account, token, nil
}

// Login verifies credentials and returns a session token.
func (s *Service) Login(ctx context.Context, email, password string) (Account, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	account, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return Account{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return Account{}, "", ErrWrongPassword
	}
	token, err := s.issueToken(account)
	if err != nil {
		return Account{}, "", err
	}
	return account, token, nil
}

// LoginExternal issues a session for an identity verified by an external
// provider (Google sign-in). The account is created on first login.
func (s *Service) LoginExternal(ctx context.Context, email, name string) (Account, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	account, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		account = Account{
			ID:    uuid.NewString(),
			Email: email,
			// External identities carry no local password.
			PasswordHash: "-",
			Role:         middleware.RoleApplicant,
		}
		if err := s.Repo.Create(ctx, account); err != nil {
			return Account{}, "", err
		}
		if err := s.Profiles.CreateApplicant(ctx, account.ID, email, name); err != nil {
			return Account{}, "", err
		}
	} else if err != nil {
		return Account{}, "", err
	}

	token, err := s.issueToken(account)
	if err != nil {
		return Account{}, "", err
	}
	return account, token, nil
}

func (s *Service) issueToken(account Account) (string, error) {
	return auth.SignJWT(auth.Claims{
		Sub:   account.ID,
		Email: account.Email,
		Role:  account.Role,
	})
}
