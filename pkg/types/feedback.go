package types

import "time"

type Feedback struct {
	ID           string    `db:"id" json:"feedback_id"`
	UserID       string    `db:"user_id" json:"user_id"`
	FeedbackText string    `db:"feedback_text" json:"feedback_text"`
	Rating       *int      `db:"rating" json:"rating,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// FeedbackWithUser is the admin listing shape, joined against users.
type FeedbackWithUser struct {
	Feedback
	FullName string `db:"full_name" json:"full_name"`
	Email    string `db:"email" json:"email"`
	Role     Role   `db:"role" json:"role"`
}
