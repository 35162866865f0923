package applications

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestRecordInterviewQuestionAggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, "alice@example.com", "job-noquiz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var agg Aggregates
	for _, similarity := range []float64{0.2, 0.4, 0.6} {
		s := similarity
		agg, err = f.svc.RecordInterviewQuestion(ctx, app.ID, &InterviewQuestionInput{Similarity: &s})
		if err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	if agg.QuestionsCount != 3 {
		t.Fatalf("count = %d, want 3", agg.QuestionsCount)
	}
	if math.Abs(agg.TotalSimilarity-1.2) > 1e-9 {
		t.Fatalf("total = %v, want 1.2", agg.TotalSimilarity)
	}
	if math.Abs(agg.AverageSimilarity-0.4) > 1e-9 {
		t.Fatalf("average = %v, want 0.4", agg.AverageSimilarity)
	}

	stored, err := f.svc.GetByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.InterviewQuestions) != 3 {
		t.Fatalf("stored questions = %d, want 3", len(stored.InterviewQuestions))
	}
}

func TestRecordInterviewQuestionDefaultsSimilarity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, "alice@example.com", "job-noquiz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	agg, err := f.svc.RecordInterviewQuestion(ctx, app.ID, &InterviewQuestionInput{})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if agg.QuestionsCount != 1 || agg.TotalSimilarity != 0 || agg.AverageSimilarity != 0 {
		t.Fatalf("aggregates = %+v, want one question at zero similarity", agg)
	}
}

func TestRecordInterviewQuestionNilPayload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, "alice@example.com", "job-noquiz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.RecordInterviewQuestion(ctx, app.ID, nil); !errors.Is(err, ErrQuestionDataUnavailable) {
		t.Fatalf("err = %v, want ErrQuestionDataUnavailable", err)
	}
}

func TestRecordInterviewQuestionUninitializedData(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Bypass the service so the question data field stays nil, as it
	// would for a row written outside the normal apply path.
	repo := f.svc.Repo
	if err := repo.Create(ctx, Application{
		ID:          "app-raw",
		ApplicantID: "applicant-alice",
		JobID:       "job-noquiz",
		Status:      StageOnlineInterview,
		Steps:       StepsFor(false),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.RecordInterviewQuestion(ctx, "app-raw", &InterviewQuestionInput{}); !errors.Is(err, ErrQuestionDataUnavailable) {
		t.Fatalf("err = %v, want ErrQuestionDataUnavailable", err)
	}
}

func TestRecordQuizCheatingOverwrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, "alice@example.com", "job-quiz")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first := QuizCheating{
		EyeCheating:               0.1,
		FaceSpeechCheating:        0.2,
		EyeCheatingDurations:      [][]float64{{0, 1.5}},
		SpeakingCheatingDurations: [][]float64{{2, 3}},
	}
	if err := f.svc.RecordQuizCheating(ctx, app.ID, first); err != nil {
		t.Fatalf("record: %v", err)
	}

	second := QuizCheating{
		EyeCheating:               0.8,
		FaceSpeechCheating:        0.9,
		EyeCheatingDurations:      [][]float64{{4, 5}},
		SpeakingCheatingDurations: [][]float64{{6, 7}},
	}
	if err := f.svc.RecordQuizCheating(ctx, app.ID, second); err != nil {
		t.Fatalf("record again: %v", err)
	}

	stored, err := f.svc.GetByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.QuizCheating == nil || stored.QuizCheating.EyeCheating != 0.8 {
		t.Fatalf("cheating = %+v, want the second report", stored.QuizCheating)
	}
	if len(stored.QuizCheating.EyeCheatingDurations) != 1 || stored.QuizCheating.EyeCheatingDurations[0][0] != 4 {
		t.Fatalf("durations = %v, want the second report's durations", stored.QuizCheating.EyeCheatingDurations)
	}
}
