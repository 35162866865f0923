package quizzes

import "time"

const (
	DefaultPassRatio       = 0.5
	DefaultDurationMinutes = 10
	defaultQuestionScore   = 1
)

// Question is one multiple-choice quiz question. Score defaults to 1 when
// the company leaves it unset.
type Question struct {
	Text          string   `json:"text"`
	Answers       []string `json:"answers"`
	CorrectAnswer string   `json:"correctAnswer"`
	Score         int      `json:"score"`
}

// Quiz is the screening quiz attached to a job. At most one quiz exists
// per job.
type Quiz struct {
	ID              string     `json:"id"`
	JobID           string     `json:"jobId"`
	Questions       []Question `json:"questions"`
	PassRatio       float64    `json:"passRatio"`
	DurationMinutes int        `json:"quizDurationInMinutes"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// TotalScore sums the question scores, counting unset scores as 1.
func (q Quiz) TotalScore() int {
	total := 0
	for _, question := range q.Questions {
		total += questionScore(question)
	}
	return total
}

func questionScore(question Question) int {
	if question.Score <= 0 {
		return defaultQuestionScore
	}
	return question.Score
}

// Grade scores submitted answers against the quiz, matching answers to
// questions by position. Extra answers are ignored, missing ones count
// as wrong.
func (q Quiz) Grade(answers []string) (score, totalScore int, passed bool) {
	totalScore = q.TotalScore()
	for i, question := range q.Questions {
		if i < len(answers) && answers[i] == question.CorrectAnswer {
			score += questionScore(question)
		}
	}
	if totalScore > 0 {
		passed = float64(score)/float64(totalScore) >= q.PassRatio
	}
	return score, totalScore, passed
}
