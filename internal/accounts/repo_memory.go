package accounts

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	accounts map[string]Account
	byEmail  map[string]string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		accounts: make(map[string]Account),
		byEmail:  make(map[string]string),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, account Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[account.Email]; exists {
		return ErrEmailExists
	}
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	r.accounts[account.ID] = account
	r.byEmail[account.Email] = account.ID
	return nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return Account{}, ErrNotFound
	}
	return r.accounts[id], nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, accountID string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[accountID]
	if !ok {
		return Account{}, ErrNotFound
	}
	return account, nil
}
