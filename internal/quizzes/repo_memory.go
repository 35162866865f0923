package quizzes

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	byJobID map[string]Quiz
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byJobID: make(map[string]Quiz)}
}

func (r *MemoryRepo) Create(ctx context.Context, quiz Quiz) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byJobID[quiz.JobID]; exists {
		return ErrAlreadyExists
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now().UTC()
	}
	r.byJobID[quiz.JobID] = quiz
	return nil
}

func (r *MemoryRepo) GetByJob(ctx context.Context, jobID string) (Quiz, error) {
	if err := ctx.Err(); err != nil {
		return Quiz{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	quiz, ok := r.byJobID[jobID]
	if !ok {
		return Quiz{}, ErrNotFound
	}
	return quiz, nil
}

func (r *MemoryRepo) DeleteByJob(ctx context.Context, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byJobID[jobID]; !ok {
		return ErrNotFound
	}
	delete(r.byJobID, jobID)
	return nil
}
