package domain

import "time"

// Comment is a message on a ticket thread. UserID is nil for comments left
// through the public tracking endpoint; Internal notes are hidden from
// submitters.
type Comment struct {
	ID             string
	TicketID       string
	OrganizationID string
	UserID         *string
	AuthorName     *string
	Body           string
	Internal       bool
	CreatedAt      time.Time
}
