package accounts

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, account Account) error {
	const query = `
INSERT INTO accounts (id, email, password_hash, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.Role,
	)
	if err != nil && strings.Contains(err.Error(), "accounts_email_key") {
		return ErrEmailExists
	}
	return err
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Account, error) {
	const query = `
SELECT id, email, password_hash, role, created_at, updated_at
FROM accounts
WHERE email = $1
LIMIT 1`
	return scanAccount(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) GetByID(ctx context.Context, accountID string) (Account, error) {
	const query = `
SELECT id, email, password_hash, role, created_at, updated_at
FROM accounts
WHERE id = $1
LIMIT 1`
	return scanAccount(r.DB.QueryRowContext(ctx, query, accountID))
}

func scanAccount(row *sql.Row) (Account, error) {
	var account Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return account, nil
}
