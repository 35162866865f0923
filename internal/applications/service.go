package applications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hireup-backend/internal/jobs"
	"hireup-backend/internal/quizzes"
	"hireup-backend/internal/shared/metrics"
)

// quizGraceDelay pads the persisted quiz deadline to absorb network and
// upload latency on the final submission. Clients are told the deadline
// without the padding.
const quizGraceDelay = 2 * time.Minute

// JobStore is the slice of the job directory the lifecycle needs.
type JobStore interface {
	GetByID(ctx context.Context, jobID string) (jobs.Job, error)
}

// QuizStore loads the screening quiz attached to a job.
type QuizStore interface {
	GetByJob(ctx context.Context, jobID string) (quizzes.Quiz, error)
}

// Directory resolves a profile ID from a session email.
type Directory interface {
	GetIDByEmail(ctx context.Context, email string) (string, error)
}

// Service drives applications through their stage plan.
type Service struct {
	Repo       Repo
	Jobs       JobStore
	Quizzes    QuizStore
	Applicants Directory
	Companies  Directory

	// now is swappable in tests.
	now func() time.Time
}

func NewService(repo Repo, jobStore JobStore, quizStore QuizStore, applicants, companies Directory) *Service {
	return &Service{
		Repo:       repo,
		Jobs:       jobStore,
		Quizzes:    quizStore,
		Applicants: applicants,
		Companies:  companies,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create opens an application for the applicant behind applicantEmail. The
// stage plan is frozen from the job at apply time and the status starts at
// the first stage after the application form.
func (s *Service) Create(ctx context.Context, applicantEmail, jobID string) (Application, error) {
	applicantID, err := s.Applicants.GetIDByEmail(ctx, applicantEmail)
	if err != nil {
		return Application{}, err
	}
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return Application{}, err
	}
	exists, err := s.Repo.Exists(ctx, applicantID, jobID)
	if err != nil {
		return Application{}, err
	}
	if exists {
		return Application{}, ErrAlreadyExists
	}

	steps := StepsFor(job.QuizRequired)
	app := Application{
		ID:          uuid.NewString(),
		ApplicantID: applicantID,
		JobID:       jobID,
		Steps:       steps,
		Status:      steps[1],
		// Initialized empty so interview recording can distinguish a
		// normally created application from a malformed one.
		InterviewQuestions: []InterviewQuestionData{},
	}
	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}
	metrics.IncApplicationsCreated()
	return app, nil
}

// Get returns an application after verifying the applicant owns it.
func (s *Service) Get(ctx context.Context, applicantEmail, applicationID string) (Application, error) {
	applicantID, err := s.Applicants.GetIDByEmail(ctx, applicantEmail)
	if err != nil {
		return Application{}, err
	}
	app, err := s.Repo.GetByID(ctx, applicationID)
	if err != nil {
		return Application{}, err
	}
	if app.ApplicantID != applicantID {
		return Application{}, ErrNotOwner
	}
	return app, nil
}

// GetByID returns an application without an ownership check. Callers that
// authenticate some other way (internal services) use this.
func (s *Service) GetByID(ctx context.Context, applicationID string) (Application, error) {
	return s.Repo.GetByID(ctx, applicationID)
}

// ListMine returns the applicant's applications, newest first.
func (s *Service) ListMine(ctx context.Context, applicantEmail string, limit, page int) ([]Application, error) {
	applicantID, err := s.Applicants.GetIDByEmail(ctx, applicantEmail)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListByApplicant(ctx, applicantID, limit, page)
}

// HasApplied reports whether the applicant already applied to the job.
func (s *Service) HasApplied(ctx context.Context, applicantEmail, jobID string) (bool, error) {
	applicantID, err := s.Applicants.GetIDByEmail(ctx, applicantEmail)
	if err != nil {
		return false, err
	}
	return s.Repo.Exists(ctx, applicantID, jobID)
}

// ListByJob returns all applications for a job the company owns.
func (s *Service) ListByJob(ctx context.Context, companyEmail, jobID string) ([]Application, error) {
	if err := s.requireJobOwner(ctx, companyEmail, jobID); err != nil {
		return nil, err
	}
	return s.Repo.ListByJob(ctx, jobID)
}

// ListFinishedByJob returns applications that reached the final stage,
// best interview similarity first.
func (s *Service) ListFinishedByJob(ctx context.Context, companyEmail, jobID string) ([]Application, error) {
	if err := s.requireJobOwner(ctx, companyEmail, jobID); err != nil {
		return nil, err
	}
	return s.Repo.ListByJobAndStatus(ctx, jobID, StageFinalResult)
}

// CountByJob returns how many applications a job received.
func (s *Service) CountByJob(ctx context.Context, companyEmail, jobID string) (int, error) {
	if err := s.requireJobOwner(ctx, companyEmail, jobID); err != nil {
		return 0, err
	}
	return s.Repo.CountByJob(ctx, jobID)
}

// QuizQuestionView is a quiz question as shown to the applicant, with the
// correct answer and scoring stripped.
type QuizQuestionView struct {
	Text    string   `json:"text"`
	Answers []string `json:"answers"`
}

// QuizSession is what the applicant gets back when the quiz starts.
type QuizSession struct {
	ApplicationID   string             `json:"applicationId"`
	Questions       []QuizQuestionView `json:"questions"`
	Deadline        time.Time          `json:"quizDeadline"`
	DurationMinutes int                `json:"quizDurationInMinutes"`
}

// StartQuiz opens the quiz window for an application. Guards run in a
// fixed order so each failure mode keeps its own error. The deadline
// stored on the application includes the grace padding; the one returned
// to the applicant does not.
func (s *Service) StartQuiz(ctx context.Context, applicantEmail, applicationID string) (QuizSession, error) {
	app, err := s.Repo.GetByID(ctx, applicationID)
	if err != nil {
		return QuizSession{}, err
	}
	if app.QuizDeadline != nil {
		return QuizSession{}, ErrQuizAlreadyStarted
	}
	if app.Status != StageOnlineQuiz {
		return QuizSession{}, ErrIncorrectStep
	}
	job, err := s.Jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return QuizSession{}, err
	}
	if !job.QuizRequired {
		return QuizSession{}, ErrQuizNotRequired
	}
	now := s.now()
	if now.After(job.ApplicationDeadline) {
		return QuizSession{}, ErrQuizExpired
	}
	quiz, err := s.Quizzes.GetByJob(ctx, app.JobID)
	if err != nil {
		return QuizSession{}, err
	}
	applicantID, err := s.Applicants.GetIDByEmail(ctx, applicantEmail)
	if err != nil {
		return QuizSession{}, err
	}
	if app.ApplicantID != applicantID {
		return QuizSession{}, ErrNotOwner
	}

	duration := time.Duration(quiz.DurationMinutes) * time.Minute
	claimed, err := s.Repo.ClaimQuizStart(ctx, applicationID, now.Add(duration+quizGraceDelay))
	if err != nil {
		return QuizSession{}, err
	}
	if !claimed {
		return QuizSession{}, ErrQuizAlreadyStarted
	}
	metrics.IncQuizStarted()

	views := make([]QuizQuestionView, 0, len(quiz.Questions))
	for _, question := range quiz.Questions {
		views = append(views, QuizQuestionView{Text: question.Text, Answers: question.Answers})
	}
	return QuizSession{
		ApplicationID:   applicationID,
		Questions:       views,
		Deadline:        now.Add(duration),
		DurationMinutes: quiz.DurationMinutes,
	}, nil
}

// QuizResult is the outcome of a quiz submission.
type QuizResult struct {
	Score      int    `json:"score"`
	TotalScore int    `json:"totalScore"`
	Passed     bool   `json:"passed"`
	Status     string `json:"status"`
}

// SubmitQuiz grades the answers and moves the application to the interview
// stage or to Failed. The transition happens regardless of the outcome, so
// a submission is always final.
func (s *Service) SubmitQuiz(ctx context.Context, applicantEmail, applicationID string, answers []string) (QuizResult, error) {
	app, err := s.Get(ctx, applicantEmail, applicationID)
	if err != nil {
		return QuizResult{}, err
	}
	job, err := s.Jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return QuizResult{}, err
	}
	if !job.QuizRequired {
		return QuizResult{}, ErrQuizNotRequired
	}
	quiz, err := s.Quizzes.GetByJob(ctx, app.JobID)
	if err != nil {
		return QuizResult{}, err
	}
	if app.QuizDeadline == nil {
		return QuizResult{}, ErrQuizNotStarted
	}
	if s.now().After(*app.QuizDeadline) {
		return QuizResult{}, ErrQuizExpired
	}

	score, totalScore, passed := quiz.Grade(answers)
	status := StageFailed
	if passed {
		status = StageOnlineInterview
	}
	if err := s.Repo.SetQuizResult(ctx, applicationID, float64(score), status); err != nil {
		return QuizResult{}, err
	}
	metrics.IncQuizSubmitted()
	if passed {
		metrics.IncQuizPassed()
	}
	return QuizResult{Score: score, TotalScore: totalScore, Passed: passed, Status: status}, nil
}

// CompleteInterview moves an application out of the interview stage into
// the final result.
func (s *Service) CompleteInterview(ctx context.Context, applicationID string) error {
	if err := s.Repo.UpdateStatus(ctx, applicationID, StageFinalResult); err != nil {
		return err
	}
	metrics.IncInterviewCompleted()
	return nil
}

func (s *Service) requireJobOwner(ctx context.Context, companyEmail, jobID string) error {
	companyID, err := s.Companies.GetIDByEmail(ctx, companyEmail)
	if err != nil {
		return err
	}
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.CompanyID != companyID {
		return jobs.ErrNotOwned
	}
	return nil
}
