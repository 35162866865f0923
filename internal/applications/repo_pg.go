package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

const applicationColumns = `id, applicant_id, job_id, status, steps, quiz_deadline, quiz_score,
quiz_eye_cheating, quiz_face_speech_cheating, quiz_eye_cheating_durations, quiz_speaking_cheating_durations,
interview_questions_data, total_similarity, questions_count, average_similarity, created_at`

func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (id, applicant_id, job_id, status, steps, created_at)
VALUES ($1, $2, $3, $4, $5, now())`
	steps, err := json.Marshal(app.Steps)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query, app.ID, app.ApplicantID, app.JobID, app.Status, steps)
	if err != nil && strings.Contains(err.Error(), "applications_applicant_id_job_id_key") {
		return ErrAlreadyExists
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, applicationID string) (Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1 LIMIT 1`
	return scanApplication(r.DB.QueryRowContext(ctx, query, applicationID))
}

func (r *PGRepo) Exists(ctx context.Context, applicantID, jobID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM applications WHERE applicant_id = $1 AND job_id = $2)`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, applicantID, jobID).Scan(&exists)
	return exists, err
}

func (r *PGRepo) ListByApplicant(ctx context.Context, applicantID string, limit, page int) ([]Application, error) {
	query := `
SELECT ` + applicationColumns + `
FROM applications
WHERE applicant_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	if page < 1 {
		page = 1
	}
	return r.list(ctx, query, applicantID, limit, (page-1)*limit)
}

func (r *PGRepo) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	query := `
SELECT ` + applicationColumns + `
FROM applications
WHERE job_id = $1
ORDER BY created_at DESC`
	return r.list(ctx, query, jobID)
}

func (r *PGRepo) ListByJobAndStatus(ctx context.Context, jobID, status string) ([]Application, error) {
	query := `
SELECT ` + applicationColumns + `
FROM applications
WHERE job_id = $1 AND status = $2
ORDER BY average_similarity DESC`
	return r.list(ctx, query, jobID, status)
}

func (r *PGRepo) CountByJob(ctx context.Context, jobID string) (int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM applications WHERE job_id = $1`, jobID).Scan(&total)
	return total, err
}

func (r *PGRepo) UpdateStatus(ctx context.Context, applicationID, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE applications SET status = $2 WHERE id = $1`, applicationID, status)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) ClaimQuizStart(ctx context.Context, applicationID string, deadline time.Time) (bool, error) {
	const query = `UPDATE applications SET quiz_deadline = $2 WHERE id = $1 AND quiz_deadline IS NULL`
	res, err := r.DB.ExecContext(ctx, query, applicationID, deadline)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *PGRepo) SetQuizResult(ctx context.Context, applicationID string, score float64, status string) error {
	const query = `UPDATE applications SET quiz_score = $2, status = $3 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, applicationID, score, status)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) SetQuizCheating(ctx context.Context, applicationID string, cheating QuizCheating) error {
	const query = `
UPDATE applications
SET quiz_eye_cheating = $2,
	quiz_face_speech_cheating = $3,
	quiz_eye_cheating_durations = $4,
	quiz_speaking_cheating_durations = $5
WHERE id = $1`
	eyeDurations, err := json.Marshal(cheating.EyeCheatingDurations)
	if err != nil {
		return err
	}
	speakingDurations, err := json.Marshal(cheating.SpeakingCheatingDurations)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		applicationID,
		cheating.EyeCheating,
		cheating.FaceSpeechCheating,
		eyeDurations,
		speakingDurations,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) AppendInterviewQuestion(ctx context.Context, applicationID string, question InterviewQuestionData) (Aggregates, error) {
	// Single statement so concurrent appends never lose a question or an
	// increment. The average is derived from the post-update counters.
	const query = `
UPDATE applications
SET interview_questions_data = interview_questions_data || $2::jsonb,
	total_similarity = total_similarity + $3,
	questions_count = questions_count + 1,
	average_similarity = (total_similarity + $3) / (questions_count + 1)
WHERE id = $1
RETURNING total_similarity, questions_count, average_similarity`
	raw, err := json.Marshal([]InterviewQuestionData{question})
	if err != nil {
		return Aggregates{}, err
	}
	var agg Aggregates
	err = r.DB.QueryRowContext(ctx, query, applicationID, raw, question.QuestionSimilarity).Scan(
		&agg.TotalSimilarity,
		&agg.QuestionsCount,
		&agg.AverageSimilarity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Aggregates{}, ErrNotFound
		}
		return Aggregates{}, err
	}
	return agg, nil
}

func (r *PGRepo) list(ctx context.Context, query string, args ...any) ([]Application, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var steps, questions []byte
	var quizDeadline sql.NullTime
	var quizScore, eyeCheating, faceSpeechCheating sql.NullFloat64
	var eyeDurations, speakingDurations []byte
	err := row.Scan(
		&app.ID,
		&app.ApplicantID,
		&app.JobID,
		&app.Status,
		&steps,
		&quizDeadline,
		&quizScore,
		&eyeCheating,
		&faceSpeechCheating,
		&eyeDurations,
		&speakingDurations,
		&questions,
		&app.Aggregates.TotalSimilarity,
		&app.Aggregates.QuestionsCount,
		&app.Aggregates.AverageSimilarity,
		&app.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	if err := json.Unmarshal(steps, &app.Steps); err != nil {
		return Application{}, err
	}
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &app.InterviewQuestions); err != nil {
			return Application{}, err
		}
	}
	if quizDeadline.Valid {
		deadline := quizDeadline.Time
		app.QuizDeadline = &deadline
	}
	if quizScore.Valid {
		score := quizScore.Float64
		app.QuizScore = &score
	}
	if eyeCheating.Valid {
		cheating := &QuizCheating{
			EyeCheating:        eyeCheating.Float64,
			FaceSpeechCheating: faceSpeechCheating.Float64,
		}
		if len(eyeDurations) > 0 {
			if err := json.Unmarshal(eyeDurations, &cheating.EyeCheatingDurations); err != nil {
				return Application{}, err
			}
		}
		if len(speakingDurations) > 0 {
			if err := json.Unmarshal(speakingDurations, &cheating.SpeakingCheatingDurations); err != nil {
				return Application{}, err
			}
		}
		app.QuizCheating = cheating
	}
	return app, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
