package events

import (
	"time"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketCommentAdded  EventType = "ticket_comment_added"
)

// Event represents a domain event emitted by services. ActorID is nil for
// anonymous public submitters.
type Event struct {
	ID             string      `json:"id"`
	Type           EventType   `json:"type"`
	OrganizationID string      `json:"organization_id"`
	TicketID       string      `json:"ticket_id"`
	ActorID        *string     `json:"actor_id,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
	Payload        interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title          string                `json:"title"`
	Priority       domain.TicketPriority `json:"priority"`
	CategoryID     *string               `json:"category_id,omitempty"`
	SubmitterID    *string               `json:"submitter_id,omitempty"`
	SubmitterName  *string               `json:"submitter_name,omitempty"`
	SubmitterEmail *string               `json:"submitter_email,omitempty"`
	PublicToken    *string               `json:"public_token,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// TicketAssignedPayload payload. QueueUserIDs carries every member of the
// category queue; all of them are told about the assignment even though only
// AssigneeID is formally assigned.
type TicketAssignedPayload struct {
	AssigneeID   string   `json:"assignee_id"`
	QueueUserIDs []string `json:"queue_user_ids,omitempty"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	CommentID   string `json:"comment_id"`
	AuthorName  string `json:"author_name"`
	BodyPreview string `json:"body_preview"`
	Internal    bool   `json:"internal"`
}
