package companies

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu        sync.RWMutex
	companies map[string]Company
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{companies: make(map[string]Company)}
}

func (r *MemoryRepo) Create(ctx context.Context, company Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if company.CreatedAt.IsZero() {
		company.CreatedAt = time.Now().UTC()
	}
	r.companies[company.ID] = company
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, companyID string) (Company, error) {
	if err := ctx.Err(); err != nil {
		return Company{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	company, ok := r.companies[companyID]
	if !ok {
		return Company{}, ErrNotFound
	}
	return company, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (Company, error) {
	if err := ctx.Err(); err != nil {
		return Company{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, company := range r.companies {
		if company.Email == email {
			return company, nil
		}
	}
	return Company{}, ErrNotFound
}
