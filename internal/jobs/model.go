package jobs

import "time"

// InterviewQuestion is one expected question/answer pair for the online
// interview; answers are relayed to the analysis service, never to clients.
type InterviewQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Job is a posting with the stage deadlines that gate the application
// lifecycle.
type Job struct {
	ID                  string              `json:"id"`
	CompanyID           string              `json:"companyId"`
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	RequiredSkills      []string            `json:"requiredSkills"`
	Salary              string              `json:"salary"`
	ApplicationDeadline time.Time           `json:"applicationDeadline"`
	QuizDeadline        time.Time           `json:"quizDeadline"`
	InterviewDeadline   time.Time           `json:"interviewDeadline"`
	QuizRequired        bool                `json:"quizRequired"`
	Published           bool                `json:"published"`
	Questions           []InterviewQuestion `json:"-"`
	CreatedAt           time.Time           `json:"createdAt"`
}
