package model

import "time"

// Visibility controls who may read a record's content.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Record holds the metadata shared by every stored resource (files and
// eulogies). It is a pure domain type with no persistence tags; the
// binary payload lives in object storage under StoragePath.
type Record struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"uploaded_by"`
	Visibility    Visibility `json:"visibility"`
	StoragePath   string     `json:"-"`
	Filename      string     `json:"filename"`
	ContentType   string     `json:"file_type"`
	Size          int64      `json:"file_size"`
	CreatedAt     time.Time  `json:"uploaded_at"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	DownloadCount int64      `json:"download_count"`
}
