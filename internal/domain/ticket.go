package domain

import "time"

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Ticket is the aggregate for support requests. Every ticket belongs to
// exactly one organization. UserID is nil exactly for anonymous public
// submissions, in which case SubmitterName/SubmitterEmail are populated and
// PublicToken grants unauthenticated tracking access.
type Ticket struct {
	ID             string
	OrganizationID string
	Title          string
	Description    string
	StatusID       string
	Priority       TicketPriority
	CategoryID     *string
	UserID         *string
	SubmitterName  *string
	SubmitterEmail *string
	AssignedTo     *string
	PublicToken    *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ClosedAt       *time.Time
}

// IsPublic reports whether the ticket was submitted anonymously.
func (t *Ticket) IsPublic() bool {
	return t.UserID == nil
}
