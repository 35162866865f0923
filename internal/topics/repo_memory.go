package topics

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	byName map[string]Topic
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byName: make(map[string]Topic)}
}

func (r *MemoryRepo) Create(ctx context.Context, topic Topic) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[topic.Name]; ok {
		return ErrAlreadyExists
	}
	if topic.CreatedAt.IsZero() {
		topic.CreatedAt = time.Now().UTC()
	}
	r.byName[topic.Name] = topic
	return nil
}

func (r *MemoryRepo) GetByName(ctx context.Context, name string) (Topic, error) {
	if err := ctx.Err(); err != nil {
		return Topic{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	topic, ok := r.byName[name]
	if !ok {
		return Topic{}, ErrNotFound
	}
	return topic, nil
}

func (r *MemoryRepo) ListNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *MemoryRepo) DeleteByName(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; !ok {
		return ErrNotFound
	}
	delete(r.byName, name)
	return nil
}
