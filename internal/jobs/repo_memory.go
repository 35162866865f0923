package jobs

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{jobs: make(map[string]Job)}
}

func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

func (r *MemoryRepo) ListAvailable(ctx context.Context, limit, page int) ([]Job, error) {
	return r.filter(ctx, limit, page, availableNow)
}

func (r *MemoryRepo) ListByCompany(ctx context.Context, companyID string, limit, page int) ([]Job, error) {
	return r.filter(ctx, limit, page, func(job Job) bool {
		return job.CompanyID == companyID
	})
}

func (r *MemoryRepo) CountAvailable(ctx context.Context) (int, error) {
	return r.count(ctx, availableNow)
}

func (r *MemoryRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	return r.count(ctx, func(job Job) bool {
		return job.CompanyID == companyID
	})
}

func (r *MemoryRepo) Delete(ctx context.Context, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[jobID]; !ok {
		return ErrNotFound
	}
	delete(r.jobs, jobID)
	return nil
}

func availableNow(job Job) bool {
	return job.Published && job.ApplicationDeadline.After(time.Now().UTC())
}

func (r *MemoryRepo) filter(ctx context.Context, limit, page int, keep func(Job) bool) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Job
	for _, job := range r.jobs {
		if keep(job) {
			out = append(out, job)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	offset := pageOffset(limit, page)
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) count(ctx context.Context, keep func(Job) bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, job := range r.jobs {
		if keep(job) {
			total++
		}
	}
	return total, nil
}
