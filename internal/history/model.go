package history

import "time"

// Record is one persisted match outcome: the best-fitting vacancy for a
// processed resume along with the contact details extracted from it.
type Record struct {
	ID         string    `json:"id"`
	Vacancy    string    `json:"vacancy"`
	Percentage int       `json:"percentage"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
}
