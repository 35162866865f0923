package quizzes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, quiz Quiz) error {
	const query = `
INSERT INTO quizzes (id, job_id, questions, pass_ratio, quiz_duration_minutes, created_at)
VALUES ($1, $2, $3, $4, $5, now())`
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		quiz.ID,
		quiz.JobID,
		questions,
		quiz.PassRatio,
		quiz.DurationMinutes,
	)
	if err != nil && strings.Contains(err.Error(), "quizzes_job_id_key") {
		return ErrAlreadyExists
	}
	return err
}

func (r *PGRepo) GetByJob(ctx context.Context, jobID string) (Quiz, error) {
	const query = `
SELECT id, job_id, questions, pass_ratio, quiz_duration_minutes, created_at
FROM quizzes
WHERE job_id = $1
LIMIT 1`
	var quiz Quiz
	var questions []byte
	err := r.DB.QueryRowContext(ctx, query, jobID).Scan(
		&quiz.ID,
		&quiz.JobID,
		&questions,
		&quiz.PassRatio,
		&quiz.DurationMinutes,
		&quiz.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &quiz.Questions); err != nil {
			return Quiz{}, err
		}
	}
	return quiz, nil
}

func (r *PGRepo) DeleteByJob(ctx context.Context, jobID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM quizzes WHERE job_id = $1`, jobID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
