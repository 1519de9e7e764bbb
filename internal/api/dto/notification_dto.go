package dto

import (
	"time"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
)

// NotificationResponse one in-app notification.
type NotificationResponse struct {
	ID             string                  `json:"id"`
	OrganizationID string                  `json:"organization_id"`
	TicketID       *string                 `json:"ticket_id,omitempty"`
	Kind           domain.NotificationKind `json:"kind"`
	Message        string                  `json:"message"`
	ReadAt         *time.Time              `json:"read_at,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

// UnreadCountResponse badge counter.
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
