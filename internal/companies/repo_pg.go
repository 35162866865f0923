package companies

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, company Company) error {
	const query = `
INSERT INTO companies (id, account_id, email, name, created_at)
VALUES ($1, $2, $3, $4, now())`
	_, err := r.DB.ExecContext(ctx, query, company.ID, company.AccountID, company.Email, company.Name)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, companyID string) (Company, error) {
	const query = `
SELECT id, account_id, email, name, created_at
FROM companies
WHERE id = $1
LIMIT 1`
	return scanCompany(r.DB.QueryRowContext(ctx, query, companyID))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Company, error) {
	const query = `
SELECT id, account_id, email, name, created_at
FROM companies
WHERE email = $1
LIMIT 1`
	return scanCompany(r.DB.QueryRowContext(ctx, query, email))
}

func scanCompany(row *sql.Row) (Company, error) {
	var company Company
	err := row.Scan(
		&company.ID,
		&company.AccountID,
		&company.Email,
		&company.Name,
		&company.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Company{}, ErrNotFound
		}
		return Company{}, err
	}
	return company, nil
}
