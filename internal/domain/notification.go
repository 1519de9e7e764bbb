package domain

import "time"

// NotificationKind enumerates in-app notification categories.
type NotificationKind string

const (
	NotificationTicketAssigned NotificationKind = "TICKET_ASSIGNED"
	NotificationTicketStatus   NotificationKind = "TICKET_STATUS"
	NotificationTicketComment  NotificationKind = "TICKET_COMMENT"
)

// Notification is an in-app message delivered to one user.
type Notification struct {
	ID             string
	UserID         string
	OrganizationID string
	TicketID       *string
	Kind           NotificationKind
	Message        string
	ReadAt         *time.Time
	CreatedAt      time.Time
}
