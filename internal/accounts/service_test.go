package accounts

import (
	"context"
	"errors"
	"testing"

	"hireup-backend/internal/shared/server/middleware"
)

type recordingProfiles struct {
	applicants []string
	companies  []string
}

func (r *recordingProfiles) CreateApplicant(ctx context.Context, accountID, email, name string) error {
	r.applicants = append(r.applicants, email)
	return nil
}

func (r *recordingProfiles) CreateCompany(ctx context.Context, accountID, email, name string) error {
	r.companies = append(r.companies, email)
	return nil
}

func TestRegisterCreatesProfileByRole(t *testing.T) {
	profiles := &recordingProfiles{}
	svc := NewService(NewMemoryRepo(), profiles)
	ctx := context.Background()

	account, token, err := svc.Register(ctx, "Alice@Example.com", "s3cret", middleware.RoleApplicant, "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.Email != "alice@example.com" {
		t.Fatalf("email = %q, want lowercased", account.Email)
	}
	if token == "" {
		t.Fatal("expected session token")
	}
	if len(profiles.applicants) != 1 || profiles.applicants[0] != "alice@example.com" {
		t.Fatalf("applicant profiles = %v", profiles.applicants)
	}

	if _, _, err := svc.Register(ctx, "acme@example.com", "s3cret", middleware.RoleCompany, "Acme"); err != nil {
		t.Fatalf("register company: %v", err)
	}
	if len(profiles.companies) != 1 {
		t.Fatalf("company profiles = %v", profiles.companies)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo(), &recordingProfiles{})
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "alice@example.com", "s3cret", middleware.RoleApplicant, "Alice"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := svc.Register(ctx, "alice@example.com", "other", middleware.RoleApplicant, "Alice"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("err = %v, want ErrEmailExists", err)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := NewService(NewMemoryRepo(), &recordingProfiles{})

	if _, _, err := svc.Register(context.Background(), "alice@example.com", "s3cret", "wizard", "Alice"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}
}

func TestLogin(t *testing.T) {
	svc := NewService(NewMemoryRepo(), &recordingProfiles{})
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "alice@example.com", "s3cret", middleware.RoleApplicant, "Alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, token, err := svc.Login(ctx, "alice@example.com", "s3cret"); err != nil || token == "" {
		t.Fatalf("login: token=%q err=%v", token, err)
	}
	if _, _, err := svc.Login(ctx, "alice@example.com", "nope"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("err = %v, want ErrWrongPassword", err)
	}
	if _, _, err := svc.Login(ctx, "ghost@example.com", "s3cret"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLoginExternalCreatesApplicantOnFirstUse(t *testing.T) {
	profiles := &recordingProfiles{}
	svc := NewService(NewMemoryRepo(), profiles)
	ctx := context.Background()

	account, token, err := svc.LoginExternal(ctx, "alice@example.com", "Alice")
	if err != nil || token == "" {
		t.Fatalf("first external login: token=%q err=%v", token, err)
	}
	if account.Role != middleware.RoleApplicant {
		t.Fatalf("role = %q, want applicant", account.Role)
	}

	again, _, err := svc.LoginExternal(ctx, "alice@example.com", "Alice")
	if err != nil {
		t.Fatalf("second external login: %v", err)
	}
	if again.ID != account.ID {
		t.Fatalf("expected same account, got %q and %q", account.ID, again.ID)
	}
	if len(profiles.applicants) != 1 {
		t.Fatalf("profile should be created once, got %v", profiles.applicants)
	}
}
