package analysis

import (
	"context"
	"encoding/json"

	"hireup-backend/internal/applications"
	"hireup-backend/internal/jobs"
	"hireup-backend/internal/shared/apperr"
)

var (
	ErrNoQuestions        = apperr.Invalid("no_questions", "No questions")
	ErrUnknownCalibration = apperr.Invalid("unknown_calibration", "unknown calibration target")
)

// Calibration endpoint suffixes on the analysis service. The corner
// variants calibrate eye tracking one screen corner at a time.
var quizCalibrationPaths = map[string]string{
	"":           "/quiz_calibration",
	"up-right":   "/quiz_calibration_up_right",
	"up-left":    "/quiz_calibration_up_left",
	"down-right": "/quiz_calibration_down_right",
	"down-left":  "/quiz_calibration_down_left",
}

// CalibrationInput carries the camera frames the analysis service needs to
// calibrate gaze tracking.
type CalibrationInput struct {
	PictureUpRight   string `json:"pictureUpRight"`
	PictureUpLeft    string `json:"pictureUpLeft"`
	PictureDownRight string `json:"pictureDownRight"`
	PictureDownLeft  string `json:"pictureDownLeft"`
}

// Service fronts the analysis side of the quiz and interview stages. Every
// call verifies the application, its owner and its current stage before
// anything reaches the analysis service.
type Service struct {
	Client *Client
	Apps   *applications.Service
	Jobs   applications.JobStore
}

func NewService(client *Client, apps *applications.Service, jobStore applications.JobStore) *Service {
	return &Service{Client: client, Apps: apps, Jobs: jobStore}
}

// QuizCalibration relays a calibration request for the quiz stage. Corner
// is empty for the combined calibration or one of the four screen corners.
func (s *Service) QuizCalibration(ctx context.Context, applicantEmail, applicationID, corner string, in CalibrationInput) (json.RawMessage, error) {
	path, ok := quizCalibrationPaths[corner]
	if !ok {
		return nil, ErrUnknownCalibration
	}
	if _, err := s.requireStage(ctx, applicantEmail, applicationID, applications.StageOnlineQuiz); err != nil {
		return nil, err
	}
	return s.Client.postWithRetry(ctx, path, calibrationPayload(applicationID, in))
}

// InterviewCalibration relays a calibration request for the interview stage.
func (s *Service) InterviewCalibration(ctx context.Context, applicantEmail, applicationID string, in CalibrationInput) (json.RawMessage, error) {
	if _, err := s.requireStage(ctx, applicantEmail, applicationID, applications.StageOnlineInterview); err != nil {
		return nil, err
	}
	return s.Client.postWithRetry(ctx, "/interview_calibration", calibrationPayload(applicationID, in))
}

// StartQuizStream asks the analysis service to open a proctoring stream
// for the quiz. The response carries the address the client connects to.
func (s *Service) StartQuizStream(ctx context.Context, applicantEmail, applicationID string) (json.RawMessage, error) {
	if _, err := s.requireStage(ctx, applicantEmail, applicationID, applications.StageOnlineQuiz); err != nil {
		return nil, err
	}
	return s.Client.Post(ctx, "/quiz_stream", map[string]any{"ApplicationID": applicationID})
}

// StartInterviewStream opens the interview analysis stream. The job must
// carry interview questions since the stream grades answers against them.
// A successful start is the end of the applicant's active pipeline, so the
// application moves to its final stage.
func (s *Service) StartInterviewStream(ctx context.Context, applicantEmail, applicationID string) (json.RawMessage, error) {
	app, err := s.requireStage(ctx, applicantEmail, applicationID, applications.StageOnlineInterview)
	if err != nil {
		return nil, err
	}
	job, err := s.Jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if len(job.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	raw, err := s.Client.Post(ctx, "/interview_stream", map[string]any{
		"ApplicationID": applicationID,
		"questions":     questionPayload(job.Questions),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Apps.CompleteInterview(ctx, applicationID); err != nil {
		return nil, err
	}
	return raw, nil
}

// GenerateQuestionsSocket relays a question generation socket request for
// the interview stage.
func (s *Service) GenerateQuestionsSocket(ctx context.Context, applicantEmail, applicationID string) (json.RawMessage, error) {
	if _, err := s.requireStage(ctx, applicantEmail, applicationID, applications.StageOnlineInterview); err != nil {
		return nil, err
	}
	return s.Client.Post(ctx, "/QG_socket", map[string]any{"ApplicationID": applicationID})
}

func (s *Service) requireStage(ctx context.Context, applicantEmail, applicationID, stage string) (applications.Application, error) {
	app, err := s.Apps.Get(ctx, applicantEmail, applicationID)
	if err != nil {
		return applications.Application{}, err
	}
	if app.Status != stage {
		return applications.Application{}, applications.ErrIncorrectStep
	}
	return app, nil
}

func calibrationPayload(applicationID string, in CalibrationInput) map[string]any {
	return map[string]any{
		"ApplicationID":    applicationID,
		"PictureUpRight":   in.PictureUpRight,
		"PictureUpLeft":    in.PictureUpLeft,
		"PictureDownRight": in.PictureDownRight,
		"PictureDownLeft":  in.PictureDownLeft,
	}
}

func questionPayload(questions []jobs.InterviewQuestion) []map[string]string {
	out := make([]map[string]string, 0, len(questions))
	for _, q := range questions {
		out = append(out, map[string]string{"question": q.Question, "answer": q.Answer})
	}
	return out
}
