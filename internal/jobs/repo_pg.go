package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

const jobColumns = `id, company_id, title, description, required_skills, salary,
application_deadline, quiz_deadline, interview_deadline, quiz_required, published, questions, created_at`

func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, company_id, title, description, required_skills, salary,
	application_deadline, quiz_deadline, interview_deadline, quiz_required, published, questions, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())`
	skills, err := json.Marshal(job.RequiredSkills)
	if err != nil {
		return err
	}
	questions, err := json.Marshal(job.Questions)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		job.ID,
		job.CompanyID,
		job.Title,
		job.Description,
		skills,
		job.Salary,
		job.ApplicationDeadline,
		job.QuizDeadline,
		job.InterviewDeadline,
		job.QuizRequired,
		job.Published,
		questions,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 LIMIT 1`
	return scanJob(r.DB.QueryRowContext(ctx, query, jobID))
}

func (r *PGRepo) ListAvailable(ctx context.Context, limit, page int) ([]Job, error) {
	query := `
SELECT ` + jobColumns + `
FROM jobs
WHERE published = TRUE AND application_deadline > now()
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, pageOffset(limit, page))
}

func (r *PGRepo) ListByCompany(ctx context.Context, companyID string, limit, page int) ([]Job, error) {
	query := `
SELECT ` + jobColumns + `
FROM jobs
WHERE company_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	return r.list(ctx, query, companyID, limit, pageOffset(limit, page))
}

func (r *PGRepo) CountAvailable(ctx context.Context) (int, error) {
	const query = `SELECT count(*) FROM jobs WHERE published = TRUE AND application_deadline > now()`
	var total int
	err := r.DB.QueryRowContext(ctx, query).Scan(&total)
	return total, err
}

func (r *PGRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	const query = `SELECT count(*) FROM jobs WHERE company_id = $1`
	var total int
	err := r.DB.QueryRowContext(ctx, query, companyID).Scan(&total)
	return total, err
}

func (r *PGRepo) Delete(ctx context.Context, jobID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
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

func (r *PGRepo) list(ctx context.Context, query string, args ...any) ([]Job, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var job Job
	var skills, questions []byte
	err := row.Scan(
		&job.ID,
		&job.CompanyID,
		&job.Title,
		&job.Description,
		&skills,
		&job.Salary,
		&job.ApplicationDeadline,
		&job.QuizDeadline,
		&job.InterviewDeadline,
		&job.QuizRequired,
		&job.Published,
		&questions,
		&job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &job.RequiredSkills); err != nil {
			return Job{}, err
		}
	}
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &job.Questions); err != nil {
			return Job{}, err
		}
	}
	return job, nil
}

func pageOffset(limit, page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
