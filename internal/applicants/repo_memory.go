package applicants

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu         sync.RWMutex
	applicants map[string]Applicant
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{applicants: make(map[string]Applicant)}
}

func (r *MemoryRepo) Create(ctx context.Context, applicant Applicant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if applicant.CreatedAt.IsZero() {
		applicant.CreatedAt = time.Now().UTC()
	}
	r.applicants[applicant.ID] = applicant
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, applicantID string) (Applicant, error) {
	if err := ctx.Err(); err != nil {
		return Applicant{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	applicant, ok := r.applicants[applicantID]
	if !ok {
		return Applicant{}, ErrNotFound
	}
	return applicant, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (Applicant, error) {
	if err := ctx.Err(); err != nil {
		return Applicant{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, applicant := range r.applicants {
		if applicant.Email == email {
			return applicant, nil
		}
	}
	return Applicant{}, ErrNotFound
}

func (r *MemoryRepo) UpdateSkills(ctx context.Context, applicantID string, skills []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	applicant, ok := r.applicants[applicantID]
	if !ok {
		return ErrNotFound
	}
	applicant.Skills = append([]string(nil), skills...)
	r.applicants[applicantID] = applicant
	return nil
}

func (r *MemoryRepo) UpdateResumeText(ctx context.Context, applicantID, resumeText string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	applicant, ok := r.applicants[applicantID]
	if !ok {
		return ErrNotFound
	}
	applicant.ResumeText = resumeText
	r.applicants[applicantID] = applicant
	return nil
}
