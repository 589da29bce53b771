package model

import "time"

// Contact is a submission from the public contact form.
type Contact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
	IsRead      bool      `json:"is_read"`
}
