package quizzes

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"hireup-backend/internal/jobs"
	"hireup-backend/internal/shared/apperr"
)

var (
	ErrQuizNotRequired = apperr.Conflict("quiz_not_required", "Job does not require a quiz")
	ErrNoQuestions     = apperr.Invalid("no_questions", "No questions")
)

// JobGate loads a job and verifies company ownership in one call.
type JobGate interface {
	RequireOwned(ctx context.Context, companyEmail, jobID string) (jobs.Job, error)
}

// Service manages the screening quizzes companies attach to jobs.
type Service struct {
	Repo Repo
	Jobs JobGate
}

func NewService(repo Repo, jobGate JobGate) *Service {
	return &Service{Repo: repo, Jobs: jobGate}
}

// AddQuiz attaches a quiz to a job. The job must exist, be owned by the
// caller, require a quiz, and not have one already.
func (s *Service) AddQuiz(ctx context.Context, companyEmail, jobID string, questions []Question, passRatio float64, durationMinutes int) (Quiz, error) {
	job, err := s.Jobs.RequireOwned(ctx, companyEmail, jobID)
	if err != nil {
		return Quiz{}, err
	}
	if !job.QuizRequired {
		return Quiz{}, ErrQuizNotRequired
	}
	if len(questions) == 0 {
		return Quiz{}, ErrNoQuestions
	}
	if _, err := s.Repo.GetByJob(ctx, jobID); err == nil {
		return Quiz{}, ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return Quiz{}, err
	}

	if passRatio <= 0 || passRatio > 1 {
		passRatio = DefaultPassRatio
	}
	if durationMinutes <= 0 {
		durationMinutes = DefaultDurationMinutes
	}

	quiz := Quiz{
		ID:              uuid.NewString(),
		JobID:           jobID,
		Questions:       questions,
		PassRatio:       passRatio,
		DurationMinutes: durationMinutes,
	}
	if err := s.Repo.Create(ctx, quiz); err != nil {
		return Quiz{}, err
	}
	return quiz, nil
}

// GetByJob returns the quiz attached to a job.
func (s *Service) GetByJob(ctx context.Context, jobID string) (Quiz, error) {
	return s.Repo.GetByJob(ctx, jobID)
}

// Remove deletes a job's quiz after verifying ownership.
func (s *Service) Remove(ctx context.Context, companyEmail, jobID string) error {
	if _, err := s.Jobs.RequireOwned(ctx, companyEmail, jobID); err != nil {
		return err
	}
	return s.Repo.DeleteByJob(ctx, jobID)
}
