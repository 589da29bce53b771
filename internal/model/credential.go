package model

import "time"

// Credential stores a customer's Gmail/iTax secrets on their behalf.
// The Sealed* fields are secretbox ciphertexts; plaintext never touches
// the database.
type Credential struct {
	ID                  string    `json:"id"`
	FirstName           string    `json:"first_name"`
	Email               string    `json:"email"`
	SealedEmailPassword string    `json:"-"`
	SealedItaxPIN       string    `json:"-"`
	SealedItaxPassword  string    `json:"-"`
	CreatedBy           string    `json:"created_by"`
	CreatedAt           time.Time `json:"created_at"`
}
