package topics

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func questionBank() []TopicQuestion {
	return []TopicQuestion{
		{Question: "What is a goroutine?", Answer: "a lightweight thread managed by the runtime"},
		{Question: "What does defer do?", Answer: "schedules a call to run when the function returns"},
	}
}

func TestAddTopicGuards(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Add(ctx, "  ", questionBank()); !errors.Is(err, ErrNoName) {
		t.Fatalf("blank name: err = %v, want ErrNoName", err)
	}
	if _, err := svc.Add(ctx, "golang", nil); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("no questions: err = %v, want ErrNoQuestions", err)
	}

	if _, err := svc.Add(ctx, "golang", questionBank()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, "golang", questionBank()); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate: err = %v, want ErrAlreadyExists", err)
	}
}

func TestListNamesSorted(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	for _, name := range []string{"networking", "algorithms", "golang"} {
		if _, err := svc.Add(ctx, name, questionBank()); err != nil {
			t.Fatalf("add %q: %v", name, err)
		}
	}

	names, err := svc.ListNames(ctx)
	if err != nil {
		t.Fatalf("list names: %v", err)
	}
	want := []string{"algorithms", "golang", "networking"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
}

func TestListNamesEmpty(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	names, err := svc.ListNames(context.Background())
	if err != nil {
		t.Fatalf("list names: %v", err)
	}
	if names == nil || len(names) != 0 {
		t.Fatalf("names = %#v, want empty non-nil slice", names)
	}
}

func TestGetByNamesFailsOnUnknown(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Add(ctx, "golang", questionBank()); err != nil {
		t.Fatalf("add: %v", err)
	}

	topics, err := svc.GetByNames(ctx, []string{"golang"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(topics) != 1 || len(topics[0].Questions) != 2 {
		t.Fatalf("topics = %+v, want the full question bank", topics)
	}

	if _, err := svc.GetByNames(ctx, []string{"golang", "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRemoveTopic(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Add(ctx, "golang", questionBank()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Remove(ctx, "golang"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.Remove(ctx, "golang"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second remove: err = %v, want ErrNotFound", err)
	}
}
