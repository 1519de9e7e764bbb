package domain

import "time"

// Activity field identifiers recorded in the ticket audit trail.
const (
	ActivityFieldCreated     = "created"
	ActivityFieldStatus      = "status"
	ActivityFieldPriority    = "priority"
	ActivityFieldAssignedTo  = "assigned_to"
	ActivityFieldCategory    = "category_id"
	ActivityFieldTitle       = "title"
	ActivityFieldDescription = "description"
)

// ActivityLog is an immutable audit entry: one row per actually-changed
// field. ActorID is nil for anonymous/public actions.
type ActivityLog struct {
	ID             string
	TicketID       string
	OrganizationID string
	ActorID        *string
	Field          string
	OldValue       *string
	NewValue       *string
	CreatedAt      time.Time
}
