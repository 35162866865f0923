package applicants

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, applicant Applicant) error {
	const query = `
INSERT INTO applicants (id, account_id, email, name, skills, resume_text, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())`
	skills, err := json.Marshal(applicant.Skills)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		applicant.ID,
		applicant.AccountID,
		applicant.Email,
		applicant.Name,
		skills,
		nullableString(applicant.ResumeText),
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, applicantID string) (Applicant, error) {
	const query = `
SELECT id, account_id, email, name, skills, resume_text, created_at
FROM applicants
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, applicantID))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Applicant, error) {
	const query = `
SELECT id, account_id, email, name, skills, resume_text, created_at
FROM applicants
WHERE email = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) UpdateSkills(ctx context.Context, applicantID string, skills []string) error {
	raw, err := json.Marshal(skills)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `UPDATE applicants SET skills = $2 WHERE id = $1`, applicantID, raw)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) UpdateResumeText(ctx context.Context, applicantID, resumeText string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE applicants SET resume_text = $2 WHERE id = $1`, applicantID, resumeText)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) scanOne(row *sql.Row) (Applicant, error) {
	var applicant Applicant
	var skills []byte
	var resumeText sql.NullString
	err := row.Scan(
		&applicant.ID,
		&applicant.AccountID,
		&applicant.Email,
		&applicant.Name,
		&skills,
		&resumeText,
		&applicant.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Applicant{}, ErrNotFound
		}
		return Applicant{}, err
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &applicant.Skills); err != nil {
			return Applicant{}, err
		}
	}
	if resumeText.Valid {
		applicant.ResumeText = resumeText.String
	}
	return applicant, nil
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

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
