package applications

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	apps map[string]Application
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{apps: make(map[string]Application)}
}

func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.ApplicantID == app.ApplicantID && existing.JobID == app.JobID {
			return ErrAlreadyExists
		}
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().UTC()
	}
	r.apps[app.ID] = app
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, applicationID string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.apps[applicationID]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

func (r *MemoryRepo) Exists(ctx context.Context, applicantID, jobID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, app := range r.apps {
		if app.ApplicantID == applicantID && app.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepo) ListByApplicant(ctx context.Context, applicantID string, limit, page int) ([]Application, error) {
	out, err := r.filter(ctx, func(app Application) bool {
		return app.ApplicantID == applicantID
	}, newestFirst)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	return r.filter(ctx, func(app Application) bool {
		return app.JobID == jobID
	}, newestFirst)
}

func (r *MemoryRepo) ListByJobAndStatus(ctx context.Context, jobID, status string) ([]Application, error) {
	return r.filter(ctx, func(app Application) bool {
		return app.JobID == jobID && app.Status == status
	}, func(a, b Application) bool {
		return a.Aggregates.AverageSimilarity > b.Aggregates.AverageSimilarity
	})
}

func (r *MemoryRepo) CountByJob(ctx context.Context, jobID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, app := range r.apps {
		if app.JobID == jobID {
			total++
		}
	}
	return total, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, applicationID, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[applicationID]
	if !ok {
		return ErrNotFound
	}
	app.Status = status
	r.apps[applicationID] = app
	return nil
}

func (r *MemoryRepo) ClaimQuizStart(ctx context.Context, applicationID string, deadline time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[applicationID]
	if !ok {
		return false, ErrNotFound
	}
	if app.QuizDeadline != nil {
		return false, nil
	}
	app.QuizDeadline = &deadline
	r.apps[applicationID] = app
	return true, nil
}

func (r *MemoryRepo) SetQuizResult(ctx context.Context, applicationID string, score float64, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[applicationID]
	if !ok {
		return ErrNotFound
	}
	app.QuizScore = &score
	app.Status = status
	r.apps[applicationID] = app
	return nil
}

func (r *MemoryRepo) SetQuizCheating(ctx context.Context, applicationID string, cheating QuizCheating) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[applicationID]
	if !ok {
		return ErrNotFound
	}
	app.QuizCheating = &cheating
	r.apps[applicationID] = app
	return nil
}

func (r *MemoryRepo) AppendInterviewQuestion(ctx context.Context, applicationID string, question InterviewQuestionData) (Aggregates, error) {
	if err := ctx.Err(); err != nil {
		return Aggregates{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[applicationID]
	if !ok {
		return Aggregates{}, ErrNotFound
	}
	if app.InterviewQuestions == nil {
		return Aggregates{}, ErrQuestionDataUnavailable
	}
	app.InterviewQuestions = append(app.InterviewQuestions, question)
	app.Aggregates.TotalSimilarity += question.QuestionSimilarity
	app.Aggregates.QuestionsCount++
	app.Aggregates.AverageSimilarity = app.Aggregates.TotalSimilarity / float64(app.Aggregates.QuestionsCount)
	r.apps[applicationID] = app
	return app.Aggregates, nil
}

func newestFirst(a, b Application) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

func (r *MemoryRepo) filter(ctx context.Context, keep func(Application) bool, less func(a, b Application) bool) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Application
	for _, app := range r.apps {
		if keep(app) {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out, nil
}
