package applications

import (
	"context"
	"time"

	"hireup-backend/internal/shared/apperr"
)

var (
	ErrNotFound                = apperr.NotFound("application_not_found", "Application not found")
	ErrAlreadyExists           = apperr.Conflict("application_exists", "Application already exists")
	ErrNotOwner                = apperr.Forbidden("not_owner", "Applicant is not the owner of the application")
	ErrIncorrectStep           = apperr.Conflict("incorrect_step", "Incorrect step")
	ErrQuizNotRequired         = apperr.Conflict("quiz_not_required", "Quiz not required")
	ErrQuizAlreadyStarted      = apperr.Conflict("quiz_already_started", "Quiz already started")
	ErrQuizNotStarted          = apperr.Conflict("quiz_not_started", "Quiz not started")
	ErrQuizExpired             = apperr.Conflict("quiz_expired", "Quiz expired")
	ErrQuestionDataUnavailable = apperr.NotFound("question_data_unavailable", "interview question data is not available")
)

type Repo interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, applicationID string) (Application, error)
	Exists(ctx context.Context, applicantID, jobID string) (bool, error)
	ListByApplicant(ctx context.Context, applicantID string, limit, page int) ([]Application, error)
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
	// ListByJobAndStatus sorts by average similarity, best first.
	ListByJobAndStatus(ctx context.Context, jobID, status string) ([]Application, error)
	CountByJob(ctx context.Context, jobID string) (int, error)
	UpdateStatus(ctx context.Context, applicationID, status string) error
	// ClaimQuizStart sets the quiz deadline only when none is set yet and
	// reports whether this caller won the claim.
	ClaimQuizStart(ctx context.Context, applicationID string, deadline time.Time) (bool, error)
	SetQuizResult(ctx context.Context, applicationID string, score float64, status string) error
	SetQuizCheating(ctx context.Context, applicationID string, cheating QuizCheating) error
	// AppendInterviewQuestion atomically appends one question record and
	// folds its similarity into the running aggregates.
	AppendInterviewQuestion(ctx context.Context, applicationID string, question InterviewQuestionData) (Aggregates, error)
}
