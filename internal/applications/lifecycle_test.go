package applications

import (
	"context"
	"errors"
	"testing"
	"time"

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

type stubQuizStore struct {
	byJob map[string]quizzes.Quiz
}

func (s *stubQuizStore) GetByJob(ctx context.Context, jobID string) (quizzes.Quiz, error) {
	quiz, ok := s.byJob[jobID]
	if !ok {
		return quizzes.Quiz{}, quizzes.ErrNotFound
	}
	return quiz, nil
}

type fixture struct {
	svc   *Service
	clock *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &now

	jobStore := &stubJobStore{jobs: map[string]jobs.Job{
		"job-quiz": {
			ID:                  "job-quiz",
			CompanyID:           "company-1",
			QuizRequired:        true,
			ApplicationDeadline: now.Add(24 * time.Hour),
			QuizDeadline:        now.Add(48 * time.Hour),
			Questions:           []jobs.InterviewQuestion{{Question: "Tell me about Go", Answer: "channels"}},
		},
		"job-noquiz": {
			ID:        "job-noquiz",
			CompanyID: "company-1",
		},
	}}
	quizStore := &stubQuizStore{byJob: map[string]quizzes.Quiz{
		"job-quiz": {
			ID:    "quiz-1",
			JobID: "job-quiz",
			Questions: []quizzes.Question{
				{Text: "q1", CorrectAnswer: "A", Score: 2},
				{Text: "q2", CorrectAnswer: "B"},
			},
			PassRatio:       0.5,
			DurationMinutes: 10,
		},
	}}
	applicants := &stubDirectory{ids: map[string]string{
		"alice@example.com": "applicant-alice",
		"bob@example.com":   "applicant-bob",
	}}
	companies := &stubDirectory{ids: map[string]string{
		"acme@example.com": "company-1",
	}}

	svc := NewService(NewMemoryRepo(), jobStore, quizStore, applicants, companies)
	svc.now = func() time.Time { return *clock }
	return &fixture{svc: svc, clock: clock}
}

func (f *fixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func TestCreateInitialStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	withQuiz, err := f.svc.Create(ctx, "alice@example.com", "job-quiz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if withQuiz.Status != StageOnlineQuiz {
		t.Fatalf("status = %q, want %q", withQuiz.Status, StageOnlineQuiz)
	}
	if len(withQuiz.Steps) != 4 {
		t.Fatalf("steps = %v, want 4 stages", withQuiz.Steps)
	}

	noQuiz, err := f.svc.Create(ctx, "alice@example.com", "job-noquiz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if noQuiz.Status != StageOnlineInterview {
		t.Fatalf("status = %q, want %q", noQuiz.Status, StageOnlineInterview)
	}
	if len(noQuiz.Steps) != 3 {
		t.Fatalf("steps = %v, want 3 stages", noQuiz.Steps)
	}
}

func TestCreateRejectsDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, "alice@example.com", "job-quiz"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := f.svc.Create(ctx, "alice@example.com", "job-quiz"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestStartQuizDeadlines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, "alice@example.com", "job-quiz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	session, err := f.svc.StartQuiz(ctx, "alice@example.com", app.ID)
	if err != nil {
		t.Fatalf("start quiz: %v", err)
	}

	wantVisible := f.clock.Add(10 * time.Minute)
	if !session.Deadline.Equal(wantVisible) {
		t.Fatalf("visible deadline = %v, want %v", session.Deadline, wantVisible)
	}
	if len(session.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(session.Questions))
	}

	stored, err := f.svc.GetByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	wantStored := wantVisible.Add(quizGraceDelay)
	if stored.QuizDeadline == nil || !stored.QuizDeadline.Equal(wantStored) {
		t.Fatalf("stored deadline = %v, want %v", stored.QuizDeadline, wantStored)
	}
}

func TestStartQuizGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, "alice@example.com", "job-quiz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.StartQuiz(ctx, "alice@example.com", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing app: err = %v, want ErrNotFound", err)
	}
	if _, err := f.svc.StartQuiz(ctx, "bob@example.com", app.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("foreign applicant: err = %v, want ErrNotOwner", err)
	}

	noQuiz, err := f.svc.Create(ctx, "alice@example.com", "job-noquiz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.StartQuiz(ctx, "alice@example.com", noQuiz.ID); !errors.Is(err, ErrIncorrectStep) {
		t.Fatalf("no quiz stage: err = %v, want ErrIncorrectStep", err)
	}

	if _, err := f.svc.StartQuiz(ctx, "alice@example.com", app.ID); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if _, err := f.svc.StartQuiz(ctx, "alice@example.com", app.ID); !errors.Is(err, ErrQuizAlreadyStarted) {
		t.Fatalf("second start: err = %v, want ErrQuizAlreadyStarted", err)
	}
}

func TestStartQuizAfterJobDeadline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, "alice@example.com", "job-quiz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	f.advance(25 * time.Hour)
	if _, err := f.svc.StartQuiz(ctx, "alice@example.com", app.ID); !errors.Is(err, ErrQuizExpired) {
		t.Fatalf("err = %v, want ErrQuizExpired", err)
	}
}

func TestSubmitQuizOutcomes(t *testing.T) {
	cases := []struct {
		name       string
		answers    []string
		wantScore  int
		wantStatus string
	}{
		{name: "all correct", answers: []string{"A", "B"}, wantScore: 3, wantStatus: StageOnlineInterview},
		{name: "half score passes", answers: []string{"A", "X"}, wantScore: 2, wantStatus: StageOnlineInterview},
		{name: "all wrong fails", answers: []string{"X", "X"}, wantScore: 0, wantStatus: StageFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			app, err := f.svc.Create(ctx, "alice@example.com", "job-quiz")
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if _, err := f.svc.StartQuiz(ctx, "alice@example.com", app.ID); err != nil {
				t.Fatalf("start: %v", err)
			}

			result, err := f.svc.SubmitQuiz(ctx, "alice@example.com", app.ID, tc.answers)
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
			if result.Score != tc.wantScore || result.TotalScore != 3 {
				t.Fatalf("score = %d/%d, want %d/3", result.Score, result.TotalScore, tc.wantScore)
			}
			if result.Status != tc.wantStatus {
				t.Fatalf("status = %q, want %q", result.Status, tc.wantStatus)
			}

			stored, err := f.svc.GetByID(ctx, app.ID)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if stored.Status != tc.wantStatus {
				t.Fatalf("stored status = %q, want %q", stored.Status, tc.wantStatus)
			}
			if stored.QuizScore == nil || *stored.QuizScore != float64(tc.wantScore) {
				t.Fatalf("stored score = %v, want %d", stored.QuizScore, tc.wantScore)
			}
		})
	}
}

func TestSubmitQuizRequiresStart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, "alice@example.com", "job-quiz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.SubmitQuiz(ctx, "alice@example.com", app.ID, []string{"A", "B"}); !errors.Is(err, ErrQuizNotStarted) {
		t.Fatalf("err = %v, want ErrQuizNotStarted", err)
	}
}

func TestSubmitQuizWithinGraceWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, "alice@example.com", "job-quiz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.StartQuiz(ctx, "alice@example.com", app.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	// 11 minutes is past the visible 10 minute window but inside the
	// stored deadline with its padding.
	f.advance(11 * time.Minute)
	if _, err := f.svc.SubmitQuiz(ctx, "alice@example.com", app.ID, []string{"A", "B"}); err != nil {
		t.Fatalf("submit inside grace: %v", err)
	}
}

func TestSubmitQuizExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, "alice@example.com", "job-quiz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.StartQuiz(ctx, "alice@example.com", app.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	f.advance(13 * time.Minute)
	if _, err := f.svc.SubmitQuiz(ctx, "alice@example.com", app.ID, []string{"A", "B"}); !errors.Is(err, ErrQuizExpired) {
		t.Fatalf("err = %v, want ErrQuizExpired", err)
	}
}

func TestStatusAlwaysInSteps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, "alice@example.com", "job-quiz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.StartQuiz(ctx, "alice@example.com", app.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.svc.SubmitQuiz(ctx, "alice@example.com", app.ID, []string{"A", "B"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.svc.CompleteInterview(ctx, app.ID); err != nil {
		t.Fatalf("complete interview: %v", err)
	}

	stored, err := f.svc.GetByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	found := false
	for _, step := range stored.Steps {
		if step == stored.Status {
			found = true
		}
	}
	if !found {
		t.Fatalf("status %q not in steps %v", stored.Status, stored.Steps)
	}
}

func TestListFinishedByJobOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, "alice@example.com", "job-noquiz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := f.svc.Create(ctx, "bob@example.com", "job-noquiz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	low, high := 0.2, 0.9
	if _, err := f.svc.RecordInterviewQuestion(ctx, first.ID, &InterviewQuestionInput{Similarity: &low}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := f.svc.RecordInterviewQuestion(ctx, second.ID, &InterviewQuestionInput{Similarity: &high}); err != nil {
		t.Fatalf("record: %v", err)
	}
	for _, id := range []string{first.ID, second.ID} {
		if err := f.svc.CompleteInterview(ctx, id); err != nil {
			t.Fatalf("complete: %v", err)
		}
	}

	finished, err := f.svc.ListFinishedByJob(ctx, "acme@example.com", "job-noquiz")
	if err != nil {
		t.Fatalf("list finished: %v", err)
	}
	if len(finished) != 2 {
		t.Fatalf("got %d applications, want 2", len(finished))
	}
	if finished[0].ID != second.ID {
		t.Fatalf("best similarity should come first, got %q", finished[0].ID)
	}
}
