package applications

import (
	"context"

	"hireup-backend/internal/shared/metrics"
)

// InterviewQuestionInput is the raw per-question payload from the analysis
// service. Similarity is optional there and defaults to zero here so every
// question still counts toward the average.
type InterviewQuestionInput struct {
	EyeCheating               *float64       `json:"questionEyeCheating"`
	FaceSpeechCheating        *float64       `json:"questionFaceSpeechCheating"`
	Similarity                *float64       `json:"questionSimilarity"`
	Emotions                  []EmotionScore `json:"questionEmotions"`
	EyeCheatingDurations      [][]float64    `json:"eyeCheatingDurations"`
	SpeakingCheatingDurations [][]float64    `json:"speakingCheatingDurations"`
}

// RecordInterviewQuestion appends one analyzed interview answer to the
// application and returns the updated similarity aggregates. The append and
// the aggregate update are a single repository operation, so concurrent
// recorders never drop a question.
func (s *Service) RecordInterviewQuestion(ctx context.Context, applicationID string, in *InterviewQuestionInput) (Aggregates, error) {
	if in == nil {
		return Aggregates{}, ErrQuestionDataUnavailable
	}
	question := InterviewQuestionData{
		QuestionEyeCheating:        deref(in.EyeCheating),
		QuestionFaceSpeechCheating: deref(in.FaceSpeechCheating),
		QuestionSimilarity:         deref(in.Similarity),
		QuestionEmotions:           in.Emotions,
		EyeCheatingDurations:       in.EyeCheatingDurations,
		SpeakingCheatingDurations:  in.SpeakingCheatingDurations,
	}
	if question.QuestionEmotions == nil {
		question.QuestionEmotions = []EmotionScore{}
	}
	agg, err := s.Repo.AppendInterviewQuestion(ctx, applicationID, question)
	if err != nil {
		return Aggregates{}, err
	}
	metrics.IncInterviewQuestionRecorded()
	return agg, nil
}

// RecordQuizCheating overwrites the quiz cheating report. All four fields
// arrive together from the analysis service, so this is a whole-record
// replacement rather than a merge.
func (s *Service) RecordQuizCheating(ctx context.Context, applicationID string, cheating QuizCheating) error {
	return s.Repo.SetQuizCheating(ctx, applicationID, cheating)
}

func deref(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
