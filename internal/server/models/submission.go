package models

import "time"

// Submission is one uploaded competition file plus its metadata record.
// StorageKey references the object in the bucket; URL is the public address
// handed to the browser. One row per successfully stored object.
type Submission struct {
	ID         string
	OwnerID    string
	Name       string
	Size       int64
	MimeType   string
	URL        string
	StorageKey string
	CreatedAt  time.Time
}
