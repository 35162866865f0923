package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hireup-backend/internal/applications"
	"hireup-backend/internal/jobs"
	"hireup-backend/internal/quizzes"
)

type stubDirectory struct {
	ids map[string]string
}

func (s *stubDirectory) GetIDByEmail(ctx context.Context, email string) (string, error) {
	id, ok := s.ids[email]
	if !ok {
		return "", errors.New("account not found")
	}
	return id, nil
}

type stubJobStore struct {
	jobs map[string]jobs.Job
}

func (s *stubJobStore) GetByID(ctx context.Context, jobID string) (jobs.Job, error) {
	job, ok := s.jobs[jobID]
	if !ok {
		return jobs.Job{}, jobs.ErrNotFound
	}
	return job, nil
}

type stubQuizStore struct{}

func (stubQuizStore) GetByJob(ctx context.Context, jobID string) (quizzes.Quiz, error) {
	return quizzes.Quiz{}, quizzes.ErrNotFound
}

type env struct {
	svc      *Service
	apps     *applications.Service
	recorded *[]string
}

func newEnv(t *testing.T, handler http.HandlerFunc) (*env, func()) {
	t.Helper()
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		handler(w, r)
	}))

	jobStore := &stubJobStore{jobs: map[string]jobs.Job{
		"job-1": {
			ID:        "job-1",
			CompanyID: "company-1",
			Questions: []jobs.InterviewQuestion{{Question: "Tell me about Go", Answer: "channels"}},
		},
		"job-bare": {ID: "job-bare", CompanyID: "company-1"},
	}}
	apps := applications.NewService(
		applications.NewMemoryRepo(),
		jobStore,
		stubQuizStore{},
		&stubDirectory{ids: map[string]string{"alice@example.com": "applicant-alice"}},
		&stubDirectory{ids: map[string]string{"acme@example.com": "company-1"}},
	)
	svc := NewService(NewClient(server.URL, 5*time.Second), apps, jobStore)
	return &env{svc: svc, apps: apps, recorded: &paths}, server.Close
}

func okJSON(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{"ip_address": "10.0.0.5", "port": 9001})
}

func (e *env) apply(t *testing.T, jobID string) applications.Application {
	t.Helper()
	app, err := e.apps.Create(context.Background(), "alice@example.com", jobID)
	if err != nil {
		t.Fatalf("create application: %v", err)
	}
	return app
}

func TestInterviewStreamCompletesApplication(t *testing.T) {
	e, done := newEnv(t, okJSON)
	defer done()
	ctx := context.Background()

	app := e.apply(t, "job-1")
	raw, err := e.svc.StartInterviewStream(ctx, "alice@example.com", app.ID)
	if err != nil {
		t.Fatalf("start interview stream: %v", err)
	}
	var resp struct {
		IPAddress string `json:"ip_address"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || resp.IPAddress == "" {
		t.Fatalf("unexpected response %s (err %v)", raw, err)
	}

	stored, err := e.apps.GetByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != applications.StageFinalResult {
		t.Fatalf("status = %q, want %q", stored.Status, applications.StageFinalResult)
	}
}

func TestInterviewStreamFailureKeepsStage(t *testing.T) {
	e, done := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer done()
	ctx := context.Background()

	app := e.apply(t, "job-1")
	if _, err := e.svc.StartInterviewStream(ctx, "alice@example.com", app.ID); err == nil {
		t.Fatal("expected error from failing analysis service")
	}

	stored, err := e.apps.GetByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != applications.StageOnlineInterview {
		t.Fatalf("status = %q, want unchanged %q", stored.Status, applications.StageOnlineInterview)
	}
}

func TestInterviewStreamRequiresQuestions(t *testing.T) {
	e, done := newEnv(t, okJSON)
	defer done()

	app := e.apply(t, "job-bare")
	if _, err := e.svc.StartInterviewStream(context.Background(), "alice@example.com", app.ID); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
	if len(*e.recorded) != 0 {
		t.Fatalf("analysis service should not be called, got %v", *e.recorded)
	}
}

func TestStreamRejectsWrongStage(t *testing.T) {
	e, done := newEnv(t, okJSON)
	defer done()

	// job-1 has no quiz plan here, so the application sits in the
	// interview stage and quiz operations must be rejected.
	app := e.apply(t, "job-1")
	if _, err := e.svc.StartQuizStream(context.Background(), "alice@example.com", app.ID); !errors.Is(err, applications.ErrIncorrectStep) {
		t.Fatalf("err = %v, want ErrIncorrectStep", err)
	}
}

func TestEmptyResponseIsInternalError(t *testing.T) {
	e, done := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	defer done()

	app := e.apply(t, "job-1")
	if _, err := e.svc.StartInterviewStream(context.Background(), "alice@example.com", app.ID); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestCalibrationRetriesTransientFailure(t *testing.T) {
	var calls int32
	e, done := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		okJSON(w, r)
	})
	defer done()

	app := e.apply(t, "job-1")
	if _, err := e.svc.InterviewCalibration(context.Background(), "alice@example.com", app.ID, CalibrationInput{}); err != nil {
		t.Fatalf("calibration should succeed on retry: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("calls = %d, want 2", got)
	}
}

func TestUnknownCalibrationCorner(t *testing.T) {
	e, done := newEnv(t, okJSON)
	defer done()

	app := e.apply(t, "job-1")
	if _, err := e.svc.QuizCalibration(context.Background(), "alice@example.com", app.ID, "sideways", CalibrationInput{}); !errors.Is(err, ErrUnknownCalibration) {
		t.Fatalf("err = %v, want ErrUnknownCalibration", err)
	}
}
