package dto

import (
	"time"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
)

// CreateTicketRequest payload for member submissions.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority,omitempty"`
	CategoryID  *string               `json:"category_id,omitempty"`
	StatusID    *string               `json:"status_id,omitempty"`
}

// PublicTicketRequest payload for anonymous submissions.
type PublicTicketRequest struct {
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Priority       domain.TicketPriority `json:"priority,omitempty"`
	CategoryID     *string               `json:"category_id,omitempty"`
	SubmitterName  string                `json:"submitter_name"`
	SubmitterEmail string                `json:"submitter_email"`
}

// UpdateTicketRequest payload; absent fields stay unchanged. An empty string
// for category_id or assigned_to clears the field.
type UpdateTicketRequest struct {
	Title       *string                `json:"title,omitempty"`
	Description *string                `json:"description,omitempty"`
	StatusID    *string                `json:"status_id,omitempty"`
	Priority    *domain.TicketPriority `json:"priority,omitempty"`
	CategoryID  *string                `json:"category_id,omitempty"`
	AssignedTo  *string                `json:"assigned_to,omitempty"`
}

// TicketResponse full ticket fields.
type TicketResponse struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	StatusID      string                `json:"status_id"`
	Priority      domain.TicketPriority `json:"priority"`
	CategoryID    *string               `json:"category_id,omitempty"`
	UserID        *string               `json:"user_id,omitempty"`
	SubmitterName *string               `json:"submitter_name,omitempty"`
	AssignedTo    *string               `json:"assigned_to,omitempty"`
	PublicToken   *string               `json:"public_token,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	ClosedAt      *time.Time            `json:"closed_at,omitempty"`
}

// CreateCommentRequest payload for member comments.
type CreateCommentRequest struct {
	Body     string `json:"body"`
	Internal bool   `json:"internal,omitempty"`
}

// PublicCommentRequest payload for submitter follow-ups.
type PublicCommentRequest struct {
	Token string `json:"token"`
	Body  string `json:"body"`
}

// CommentResponse one thread entry.
type CommentResponse struct {
	ID         string    `json:"id"`
	UserID     *string   `json:"user_id,omitempty"`
	AuthorName *string   `json:"author_name,omitempty"`
	Body       string    `json:"body"`
	Internal   bool      `json:"internal"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateTimeEntryRequest payload.
type CreateTimeEntryRequest struct {
	Minutes int        `json:"minutes"`
	Note    string     `json:"note,omitempty"`
	SpentOn *time.Time `json:"spent_on,omitempty"`
}

// TimeEntryResponse one time entry.
type TimeEntryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Minutes   int       `json:"minutes"`
	Note      string    `json:"note,omitempty"`
	SpentOn   time.Time `json:"spent_on"`
	CreatedAt time.Time `json:"created_at"`
}

// TimeEntriesResponse entries plus the summed minutes.
type TimeEntriesResponse struct {
	Entries      []TimeEntryResponse `json:"entries"`
	TotalMinutes int64               `json:"total_minutes"`
}

// ActivityResponse one audit-trail row.
type ActivityResponse struct {
	ID        string    `json:"id"`
	ActorID   *string   `json:"actor_id,omitempty"`
	Field     string    `json:"field"`
	OldValue  *string   `json:"old_value,omitempty"`
	NewValue  *string   `json:"new_value,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AttachmentResponse metadata for one uploaded file.
type AttachmentResponse struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// TrackTicketResponse the public tracking view: ticket plus visible thread.
type TrackTicketResponse struct {
	Ticket   TicketResponse    `json:"ticket"`
	Comments []CommentResponse `json:"comments"`
}
