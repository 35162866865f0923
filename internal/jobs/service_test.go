package jobs

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubCompanies struct {
	ids map[string]string
}

func (s *stubCompanies) GetIDByEmail(ctx context.Context, email string) (string, error) {
	id, ok := s.ids[email]
	if !ok {
		return "", errors.New("account not found")
	}
	return id, nil
}

func newTestService() *Service {
	return NewService(NewMemoryRepo(), &stubCompanies{ids: map[string]string{
		"acme@example.com":  "company-acme",
		"other@example.com": "company-other",
	}})
}

func validInput() CreateInput {
	return CreateInput{
		Title:               "Backend Engineer",
		ApplicationDeadline: time.Now().Add(72 * time.Hour),
		QuizRequired:        true,
		Published:           true,
	}
}

func TestCreateAssignsOwnership(t *testing.T) {
	svc := newTestService()

	job, err := svc.Create(context.Background(), "acme@example.com", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.CompanyID != "company-acme" {
		t.Fatalf("company id = %q, want company-acme", job.CompanyID)
	}
	if job.ID == "" {
		t.Fatal("expected generated job id")
	}
}

func TestCreateRejectsMissingDeadline(t *testing.T) {
	svc := newTestService()

	in := validInput()
	in.ApplicationDeadline = time.Time{}
	if _, err := svc.Create(context.Background(), "acme@example.com", in); !errors.Is(err, ErrNoDeadline) {
		t.Fatalf("err = %v, want ErrNoDeadline", err)
	}
}

func TestDeleteRejectsForeignJob(t *testing.T) {
	svc := newTestService()

	job, err := svc.Create(context.Background(), "acme@example.com", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), "other@example.com", job.ID); !errors.Is(err, ErrNotOwned) {
		t.Fatalf("err = %v, want ErrNotOwned", err)
	}
	if err := svc.Delete(context.Background(), "acme@example.com", job.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), job.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound after delete", err)
	}
}

func TestListAvailableSkipsDraftsAndExpired(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	open := validInput()
	if _, err := svc.Create(ctx, "acme@example.com", open); err != nil {
		t.Fatalf("create open: %v", err)
	}

	draft := validInput()
	draft.Published = false
	if _, err := svc.Create(ctx, "acme@example.com", draft); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	expired := validInput()
	expired.ApplicationDeadline = time.Now().Add(-time.Hour)
	if _, err := svc.Create(ctx, "acme@example.com", expired); err != nil {
		t.Fatalf("create expired: %v", err)
	}

	list, total, err := svc.ListAvailable(ctx, 20, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || total != 1 {
		t.Fatalf("got %d jobs (total %d), want 1", len(list), total)
	}
}
