package domain

import "time"

// Attachment stores metadata for an uploaded file; the bytes live in the
// file store under StoredName.
type Attachment struct {
	ID             string
	TicketID       string
	OrganizationID string
	UploaderID     *string
	FileName       string
	StoredName     string
	MimeType       string
	SizeBytes      int64
	CreatedAt      time.Time
}
