package topics

import "time"

// TopicQuestion is one curated interview question with its expected answer.
type TopicQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Topic is a named bank of interview questions companies draw from when
// setting up a job's interview.
type Topic struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Questions []TopicQuestion `json:"questions"`
	CreatedAt time.Time       `json:"createdAt"`
}
