package topics

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"hireup-backend/internal/shared/apperr"
)

var (
	ErrNoName      = apperr.Invalid("no_topic_name", "Topic name is required")
	ErrNoQuestions = apperr.Invalid("no_questions", "No questions")
)

// Service manages the curated question banks.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Add creates a new topic. Names are unique and each topic needs at least
// one question.
func (s *Service) Add(ctx context.Context, name string, questions []TopicQuestion) (Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Topic{}, ErrNoName
	}
	if len(questions) == 0 {
		return Topic{}, ErrNoQuestions
	}
	topic := Topic{
		ID:        uuid.NewString(),
		Name:      name,
		Questions: questions,
	}
	if err := s.Repo.Create(ctx, topic); err != nil {
		return Topic{}, err
	}
	return topic, nil
}

// ListNames returns every topic name, sorted.
func (s *Service) ListNames(ctx context.Context) ([]string, error) {
	names, err := s.Repo.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// GetByNames resolves each requested name to its full topic. A single
// unknown name fails the whole lookup.
func (s *Service) GetByNames(ctx context.Context, names []string) ([]Topic, error) {
	out := make([]Topic, 0, len(names))
	for _, name := range names {
		topic, err := s.Repo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, topic)
	}
	return out, nil
}

// Remove deletes a topic by name.
func (s *Service) Remove(ctx context.Context, name string) error {
	return s.Repo.DeleteByName(ctx, name)
}
