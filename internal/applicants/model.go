package applicants

import "time"

// Applicant is the hiring-side profile behind an applicant account.
type Applicant struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"accountId"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Skills     []string  `json:"skills"`
	ResumeText string    `json:"resumeText,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
