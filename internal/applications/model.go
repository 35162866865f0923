package applications

import "time"

// Stage names the application moves through. Failed is terminal and only
// reachable from the quiz stage.
const (
	StageApplicationForm = "Application Form"
	StageOnlineQuiz      = "Online Quiz"
	StageOnlineInterview = "Online Interview"
	StageFinalResult     = "Final Result"
	StageFailed          = "Failed"
)

// StepsFor returns the ordered stage plan for a job. Jobs without a quiz
// skip the quiz stage entirely.
func StepsFor(quizRequired bool) []string {
	if quizRequired {
		return []string{StageApplicationForm, StageOnlineQuiz, StageOnlineInterview, StageFinalResult}
	}
	return []string{StageApplicationForm, StageOnlineInterview, StageFinalResult}
}

// EmotionScore is one emotion label with its observed ratio for a single
// interview answer.
type EmotionScore struct {
	Emotion string  `json:"emotion"`
	Ratio   float64 `json:"ratio"`
}

// InterviewQuestionData is the per-question analysis result recorded while
// the applicant answers the online interview.
type InterviewQuestionData struct {
	QuestionEyeCheating        float64        `json:"questionEyeCheating"`
	QuestionFaceSpeechCheating float64        `json:"questionFaceSpeechCheating"`
	QuestionSimilarity         float64        `json:"questionSimilarity"`
	QuestionEmotions           []EmotionScore `json:"questionEmotions"`
	EyeCheatingDurations       [][]float64    `json:"eyeCheatingDurations,omitempty"`
	SpeakingCheatingDurations  [][]float64    `json:"speakingCheatingDurations,omitempty"`
}

// QuizCheating is the cheating report the analysis service produces for a
// whole quiz session. All four fields are written together.
type QuizCheating struct {
	EyeCheating               float64     `json:"quizEyeCheating"`
	FaceSpeechCheating        float64     `json:"quizFaceSpeechCheating"`
	EyeCheatingDurations      [][]float64 `json:"quizEyeCheatingDurations"`
	SpeakingCheatingDurations [][]float64 `json:"quizSpeakingCheatingDurations"`
}

// Aggregates is the running interview similarity summary. AverageSimilarity
// is recomputed only when a question is appended.
type Aggregates struct {
	TotalSimilarity   float64 `json:"totalSimilarity"`
	QuestionsCount    int     `json:"questionsCount"`
	AverageSimilarity float64 `json:"averageSimilarity"`
}

// Application tracks one applicant's progress through a job's stages.
type Application struct {
	ID                 string                  `json:"id"`
	ApplicantID        string                  `json:"applicantId"`
	JobID              string                  `json:"jobId"`
	Status             string                  `json:"status"`
	Steps              []string                `json:"steps"`
	QuizDeadline       *time.Time              `json:"quizDeadline,omitempty"`
	QuizScore          *float64                `json:"quizScore,omitempty"`
	QuizCheating       *QuizCheating           `json:"quizCheating,omitempty"`
	InterviewQuestions []InterviewQuestionData `json:"interviewQuestionsData"`
	Aggregates         Aggregates              `json:"aggregates"`
	CreatedAt          time.Time               `json:"createdAt"`
}
