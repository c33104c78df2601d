package feedback

import "time"

// Feedback is one product rating, submitted with or without an account.
type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
	Category  string    `json:"category,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
