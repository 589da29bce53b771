package model

// Eulogy is a time-boxed record: always a public PDF, readable by anyone
// until it expires three days after upload.
type Eulogy struct {
	Record
	Title        string `json:"title"`
	DeceasedName string `json:"deceased_name"`
	Description  string `json:"description,omitempty"`
}
