package model

// File is a general download: uploaded by a user, public or private,
// never expiring.
type File struct {
	Record
	Description string `json:"description,omitempty"`
}
