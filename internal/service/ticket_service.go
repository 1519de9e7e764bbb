package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/events"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// Public tracking tokens: 8 symbols, alphabet excludes 0/O/I/1.
const (
	publicTokenAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	publicTokenLength   = 8
	tokenMaxAttempts    = 10
)

// TicketService coordinates ticket workflows: creation with auto-assignment,
// field updates with an activity trail, comments and time tracking.
type TicketService struct {
	tickets       repository.TicketRepository
	statuses      repository.TicketStatusRepository
	categories    repository.CategoryRepository
	assignments   repository.CategoryAssignmentRepository
	comments      repository.CommentRepository
	timeEntries   repository.TimeEntryRepository
	activity      repository.ActivityRepository
	notifications repository.NotificationRepository
	memberships   repository.MembershipRepository
	dispatcher    events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo       repository.TicketRepository
	StatusRepo       repository.TicketStatusRepository
	CategoryRepo     repository.CategoryRepository
	AssignmentRepo   repository.CategoryAssignmentRepository
	CommentRepo      repository.CommentRepository
	TimeEntryRepo    repository.TimeEntryRepository
	ActivityRepo     repository.ActivityRepository
	NotificationRepo repository.NotificationRepository
	MembershipRepo   repository.MembershipRepository
	Dispatcher       events.Dispatcher
}

// TicketCreateInput describes a member-submitted ticket.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	CategoryID  *string
	StatusID    *string
}

// PublicTicketInput describes an anonymous public submission.
type PublicTicketInput struct {
	Title          string
	Description    string
	Priority       domain.TicketPriority
	CategoryID     *string
	SubmitterName  string
	SubmitterEmail string
}

// TicketUpdateInput carries optional field updates. For CategoryID and
// AssignedTo an empty string clears the field.
type TicketUpdateInput struct {
	Title       *string
	Description *string
	StatusID    *string
	Priority    *domain.TicketPriority
	CategoryID  *string
	AssignedTo  *string
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	StatusID    *string
	CategoryID  *string
	Priority    *domain.TicketPriority
	AssignedTo  *string
	SubmitterID *string
	SearchTerm  *string
	Limit       int
	Offset      int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:       deps.TicketRepo,
		statuses:      deps.StatusRepo,
		categories:    deps.CategoryRepo,
		assignments:   deps.AssignmentRepo,
		comments:      deps.CommentRepo,
		timeEntries:   deps.TimeEntryRepo,
		activity:      deps.ActivityRepo,
		notifications: deps.NotificationRepo,
		memberships:   deps.MembershipRepo,
		dispatcher:    deps.Dispatcher,
	}
}

// Create opens a ticket on behalf of an authenticated member.
func (s *TicketService) Create(ctx context.Context, organizationID, userID string, input TicketCreateInput) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		OrganizationID: organizationID,
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		Priority:       input.Priority,
		CategoryID:     input.CategoryID,
		UserID:         &userID,
	}
	return s.createTicket(ctx, ticket, input.StatusID, &userID)
}

// CreatePublic opens a ticket for an anonymous submitter and issues a
// tracking token.
func (s *TicketService) CreatePublic(ctx context.Context, organizationID string, input PublicTicketInput) (*domain.Ticket, error) {
	name := strings.TrimSpace(input.SubmitterName)
	email := normalizeEmail(input.SubmitterEmail)
	if name == "" || email == "" {
		return nil, apperrors.NewValidationError("submitter name and email are required", nil)
	}

	token, err := s.uniquePublicToken(ctx)
	if err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		OrganizationID: organizationID,
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		Priority:       input.Priority,
		CategoryID:     input.CategoryID,
		SubmitterName:  &name,
		SubmitterEmail: &email,
		PublicToken:    &token,
	}
	return s.createTicket(ctx, ticket, nil, nil)
}

// createTicket runs the shared creation workflow: resolve status, auto-assign
// from the category queue, persist, then side effects in order (activity row,
// in-app notifications, events).
func (s *TicketService) createTicket(ctx context.Context, ticket *domain.Ticket, statusID, actorID *string) (*domain.Ticket, error) {
	if ticket.Title == "" || ticket.Description == "" {
		return nil, apperrors.NewValidationError("title and description are required", nil)
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}
	if !validPriority(ticket.Priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": ticket.Priority})
	}

	if statusID != nil && *statusID != "" {
		status, err := s.statuses.GetByID(ctx, ticket.OrganizationID, *statusID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("status", map[string]any{"status_id": *statusID})
			}
			return nil, err
		}
		ticket.StatusID = status.ID
	} else {
		status, err := s.statuses.GetDefault(ctx, ticket.OrganizationID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewValidationError("organization has no default ticket status", nil)
			}
			return nil, err
		}
		ticket.StatusID = status.ID
	}

	var queue []domain.CategoryAssignment
	if ticket.CategoryID != nil && *ticket.CategoryID != "" {
		if _, err := s.categories.GetByID(ctx, ticket.OrganizationID, *ticket.CategoryID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("category", map[string]any{"category_id": *ticket.CategoryID})
			}
			return nil, err
		}
		var err error
		queue, err = s.assignments.ListByCategory(ctx, ticket.OrganizationID, *ticket.CategoryID)
		if err != nil {
			return nil, err
		}
		if len(queue) > 0 {
			assignee := queue[0].UserID
			ticket.AssignedTo = &assignee
		}
	} else {
		ticket.CategoryID = nil
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("could not allocate a unique tracking token", nil)
		}
		return nil, err
	}

	if err := s.recordActivity(ctx, ticket, actorID, domain.ActivityFieldCreated, nil, &ticket.Title); err != nil {
		return nil, err
	}
	if err := s.notifyAssignment(ctx, ticket, queue); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:           events.EventTicketCreated,
		OrganizationID: ticket.OrganizationID,
		TicketID:       ticket.ID,
		ActorID:        actorID,
		Payload: events.TicketCreatedPayload{
			Title:          ticket.Title,
			Priority:       ticket.Priority,
			CategoryID:     ticket.CategoryID,
			SubmitterID:    ticket.UserID,
			SubmitterName:  ticket.SubmitterName,
			SubmitterEmail: ticket.SubmitterEmail,
			PublicToken:    ticket.PublicToken,
		},
	})
	if ticket.AssignedTo != nil {
		s.publishEvent(ctx, events.Event{
			Type:           events.EventTicketAssigned,
			OrganizationID: ticket.OrganizationID,
			TicketID:       ticket.ID,
			ActorID:        actorID,
			Payload: events.TicketAssignedPayload{
				AssigneeID:   *ticket.AssignedTo,
				QueueUserIDs: queueUserIDs(queue),
			},
		})
	}
	return ticket, nil
}

// Update applies field changes, writing one activity row per field that
// actually changed. When the category changes and no assignee is set, the
// auto-assignment workflow runs again.
func (s *TicketService) Update(ctx context.Context, organizationID, ticketID string, actorID string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, organizationID, ticketID)
	if err != nil {
		return nil, err
	}

	type fieldChange struct {
		field    string
		oldValue *string
		newValue *string
	}
	var changes []fieldChange
	var oldStatusName, newStatusName string
	var assignedChanged bool
	var queue []domain.CategoryAssignment

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title cannot be empty", map[string]any{"title": "required"})
		}
		if title != ticket.Title {
			old := ticket.Title
			changes = append(changes, fieldChange{domain.ActivityFieldTitle, &old, &title})
			ticket.Title = title
		}
	}
	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		if desc == "" {
			return nil, apperrors.NewValidationError("description cannot be empty", map[string]any{"description": "required"})
		}
		if desc != ticket.Description {
			old := ticket.Description
			changes = append(changes, fieldChange{domain.ActivityFieldDescription, &old, &desc})
			ticket.Description = desc
		}
	}
	if input.Priority != nil && *input.Priority != ticket.Priority {
		if !validPriority(*input.Priority) {
			return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": *input.Priority})
		}
		old := string(ticket.Priority)
		newVal := string(*input.Priority)
		changes = append(changes, fieldChange{domain.ActivityFieldPriority, &old, &newVal})
		ticket.Priority = *input.Priority
	}
	if input.StatusID != nil && *input.StatusID != ticket.StatusID {
		oldStatus, err := s.statuses.GetByID(ctx, organizationID, ticket.StatusID)
		if err != nil && err != pgx.ErrNoRows {
			return nil, err
		}
		newStatus, err := s.statuses.GetByID(ctx, organizationID, *input.StatusID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("status", map[string]any{"status_id": *input.StatusID})
			}
			return nil, err
		}
		if oldStatus != nil {
			oldStatusName = oldStatus.Name
		}
		newStatusName = newStatus.Name
		old := ticket.StatusID
		changes = append(changes, fieldChange{domain.ActivityFieldStatus, &old, input.StatusID})
		ticket.StatusID = newStatus.ID
		if newStatus.IsClosing {
			now := time.Now()
			ticket.ClosedAt = &now
		} else {
			ticket.ClosedAt = nil
		}
	}
	if input.CategoryID != nil {
		oldID := ""
		if ticket.CategoryID != nil {
			oldID = *ticket.CategoryID
		}
		newID := *input.CategoryID
		if newID != oldID {
			if newID != "" {
				if _, err := s.categories.GetByID(ctx, organizationID, newID); err != nil {
					if err == pgx.ErrNoRows {
						return nil, apperrors.NewNotFound("category", map[string]any{"category_id": newID})
					}
					return nil, err
				}
			}
			var oldPtr, newPtr *string
			if oldID != "" {
				oldPtr = &oldID
			}
			if newID != "" {
				newPtr = &newID
				ticket.CategoryID = &newID
			} else {
				ticket.CategoryID = nil
			}
			changes = append(changes, fieldChange{domain.ActivityFieldCategory, oldPtr, newPtr})

			// Category moved with nobody assigned: run auto-assignment again.
			if ticket.AssignedTo == nil && newID != "" {
				var err error
				queue, err = s.assignments.ListByCategory(ctx, organizationID, newID)
				if err != nil {
					return nil, err
				}
				if len(queue) > 0 {
					assignee := queue[0].UserID
					changes = append(changes, fieldChange{domain.ActivityFieldAssignedTo, nil, &assignee})
					ticket.AssignedTo = &assignee
					assignedChanged = true
				}
			}
		}
	}
	if input.AssignedTo != nil {
		oldID := ""
		if ticket.AssignedTo != nil {
			oldID = *ticket.AssignedTo
		}
		newID := *input.AssignedTo
		if newID != oldID {
			if newID != "" {
				if _, err := s.memberships.Get(ctx, newID, organizationID); err != nil {
					if err == pgx.ErrNoRows {
						return nil, apperrors.NewValidationError("assignee is not a member of this organization", map[string]any{"assigned_to": newID})
					}
					return nil, err
				}
				ticket.AssignedTo = &newID
			} else {
				ticket.AssignedTo = nil
			}
			changes = append(changes, fieldChange{domain.ActivityFieldAssignedTo, nilIfEmpty(oldID), nilIfEmpty(newID)})
			assignedChanged = newID != ""
			queue = nil
		}
	}

	if len(changes) == 0 {
		return ticket, nil
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	for _, change := range changes {
		if err := s.recordActivity(ctx, ticket, &actorID, change.field, change.oldValue, change.newValue); err != nil {
			return nil, err
		}
	}

	if newStatusName != "" && ticket.UserID != nil {
		if err := s.notify(ctx, *ticket.UserID, ticket, domain.NotificationTicketStatus,
			fmt.Sprintf("Ticket %q status changed to %s", ticket.Title, newStatusName)); err != nil {
			return nil, err
		}
	}
	if assignedChanged && ticket.AssignedTo != nil {
		if len(queue) > 0 {
			if err := s.notifyAssignment(ctx, ticket, queue); err != nil {
				return nil, err
			}
		} else {
			if err := s.notify(ctx, *ticket.AssignedTo, ticket, domain.NotificationTicketAssigned,
				fmt.Sprintf("Ticket %q was assigned to you", ticket.Title)); err != nil {
				return nil, err
			}
		}
	}

	if newStatusName != "" {
		s.publishEvent(ctx, events.Event{
			Type:           events.EventTicketStatusChanged,
			OrganizationID: ticket.OrganizationID,
			TicketID:       ticket.ID,
			ActorID:        &actorID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatusName,
				NewStatus: newStatusName,
			},
		})
	}
	if assignedChanged && ticket.AssignedTo != nil {
		s.publishEvent(ctx, events.Event{
			Type:           events.EventTicketAssigned,
			OrganizationID: ticket.OrganizationID,
			TicketID:       ticket.ID,
			ActorID:        &actorID,
			Payload: events.TicketAssignedPayload{
				AssigneeID:   *ticket.AssignedTo,
				QueueUserIDs: queueUserIDs(queue),
			},
		})
	}
	return ticket, nil
}

// List returns tickets matching the filter within the tenant.
func (s *TicketService) List(ctx context.Context, organizationID string, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{
		StatusID:    filter.StatusID,
		CategoryID:  filter.CategoryID,
		Priority:    filter.Priority,
		AssignedTo:  filter.AssignedTo,
		SubmitterID: filter.SubmitterID,
		SearchTerm:  filter.SearchTerm,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	return s.tickets.ListWithFilter(ctx, organizationID, repoFilter)
}

// Get fetches one ticket within the tenant.
func (s *TicketService) Get(ctx context.Context, organizationID, ticketID string) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, organizationID, ticketID)
}

// Delete removes a ticket and its dependents.
func (s *TicketService) Delete(ctx context.Context, organizationID, ticketID string) error {
	return s.tickets.Delete(ctx, organizationID, ticketID)
}

// TrackByToken resolves a public ticket by its tracking token and returns it
// with the submitter-visible comment thread.
func (s *TicketService) TrackByToken(ctx context.Context, organizationID, token string) (*domain.Ticket, []domain.Comment, error) {
	token = strings.ToUpper(strings.TrimSpace(token))
	if token == "" {
		return nil, nil, apperrors.NewValidationError("tracking token is required", map[string]any{"token": "required"})
	}
	ticket, err := s.tickets.GetByPublicToken(ctx, organizationID, token)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("ticket", map[string]any{"token": token})
		}
		return nil, nil, err
	}
	comments, err := s.comments.ListByTicket(ctx, organizationID, ticket.ID, false)
	if err != nil {
		return nil, nil, err
	}
	return ticket, comments, nil
}

// AddComment appends a member comment, optionally as an internal note.
func (s *TicketService) AddComment(ctx context.Context, organizationID, ticketID, authorID, authorName, body string, internal bool) (*domain.Comment, error) {
	ticket, err := s.tickets.GetByID(ctx, organizationID, ticketID)
	if err != nil {
		return nil, err
	}
	return s.addComment(ctx, ticket, &authorID, authorName, body, internal)
}

// AddPublicComment appends a follow-up from the anonymous submitter,
// authorized by the tracking token.
func (s *TicketService) AddPublicComment(ctx context.Context, organizationID, token, body string) (*domain.Comment, error) {
	ticket, _, err := s.TrackByToken(ctx, organizationID, token)
	if err != nil {
		return nil, err
	}
	authorName := "Anonymous"
	if ticket.SubmitterName != nil {
		authorName = *ticket.SubmitterName
	}
	return s.addComment(ctx, ticket, nil, authorName, body, false)
}

func (s *TicketService) addComment(ctx context.Context, ticket *domain.Ticket, authorID *string, authorName, body string, internal bool) (*domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("comment body is required", map[string]any{"body": "required"})
	}

	comment := &domain.Comment{
		TicketID:       ticket.ID,
		OrganizationID: ticket.OrganizationID,
		UserID:         authorID,
		Body:           body,
		Internal:       internal,
	}
	if authorName != "" {
		comment.AuthorName = &authorName
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:           events.EventTicketCommentAdded,
		OrganizationID: ticket.OrganizationID,
		TicketID:       ticket.ID,
		ActorID:        authorID,
		Payload: events.TicketCommentAddedPayload{
			CommentID:   comment.ID,
			AuthorName:  authorName,
			BodyPreview: stringPreview(body, 120),
			Internal:    internal,
		},
	})
	return comment, nil
}

// ListComments returns a ticket's thread; internal notes only for members.
func (s *TicketService) ListComments(ctx context.Context, organizationID, ticketID string, includeInternal bool) ([]domain.Comment, error) {
	if _, err := s.tickets.GetByID(ctx, organizationID, ticketID); err != nil {
		return nil, err
	}
	return s.comments.ListByTicket(ctx, organizationID, ticketID, includeInternal)
}

// AddTimeEntry records minutes worked on a ticket.
func (s *TicketService) AddTimeEntry(ctx context.Context, organizationID, ticketID, userID string, minutes int, note string, spentOn time.Time) (*domain.TimeEntry, error) {
	if minutes <= 0 {
		return nil, apperrors.NewValidationError("minutes must be positive", map[string]any{"minutes": minutes})
	}
	if _, err := s.tickets.GetByID(ctx, organizationID, ticketID); err != nil {
		return nil, err
	}
	if spentOn.IsZero() {
		spentOn = time.Now()
	}

	entry := &domain.TimeEntry{
		TicketID:       ticketID,
		OrganizationID: organizationID,
		UserID:         userID,
		Minutes:        minutes,
		Note:           strings.TrimSpace(note),
		SpentOn:        spentOn,
	}
	if err := s.timeEntries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListTimeEntries returns a ticket's time entries plus the summed minutes.
func (s *TicketService) ListTimeEntries(ctx context.Context, organizationID, ticketID string) ([]domain.TimeEntry, int64, error) {
	if _, err := s.tickets.GetByID(ctx, organizationID, ticketID); err != nil {
		return nil, 0, err
	}
	entries, err := s.timeEntries.ListByTicket(ctx, organizationID, ticketID)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.timeEntries.TotalMinutesByTicket(ctx, organizationID, ticketID)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListActivity returns the ticket's audit trail, oldest first.
func (s *TicketService) ListActivity(ctx context.Context, organizationID, ticketID string) ([]domain.ActivityLog, error) {
	if _, err := s.tickets.GetByID(ctx, organizationID, ticketID); err != nil {
		return nil, err
	}
	return s.activity.ListByTicket(ctx, organizationID, ticketID)
}

// notifyAssignment writes one in-app notification per queue member: the
// formal assignee plus every other responsible party.
func (s *TicketService) notifyAssignment(ctx context.Context, ticket *domain.Ticket, queue []domain.CategoryAssignment) error {
	if ticket.AssignedTo == nil {
		return nil
	}
	for _, entry := range queue {
		message := fmt.Sprintf("New ticket %q in a category you handle", ticket.Title)
		if entry.UserID == *ticket.AssignedTo {
			message = fmt.Sprintf("Ticket %q was assigned to you", ticket.Title)
		}
		if err := s.notify(ctx, entry.UserID, ticket, domain.NotificationTicketAssigned, message); err != nil {
			return err
		}
	}
	return nil
}

func (s *TicketService) notify(ctx context.Context, userID string, ticket *domain.Ticket, kind domain.NotificationKind, message string) error {
	notification := &domain.Notification{
		UserID:         userID,
		OrganizationID: ticket.OrganizationID,
		TicketID:       &ticket.ID,
		Kind:           kind,
		Message:        message,
	}
	return s.notifications.Create(ctx, notification)
}

func (s *TicketService) recordActivity(ctx context.Context, ticket *domain.Ticket, actorID *string, field string, oldValue, newValue *string) error {
	entry := &domain.ActivityLog{
		TicketID:       ticket.ID,
		OrganizationID: ticket.OrganizationID,
		ActorID:        actorID,
		Field:          field,
		OldValue:       oldValue,
		NewValue:       newValue,
	}
	return s.activity.Create(ctx, entry)
}

func (s *TicketService) uniquePublicToken(ctx context.Context) (string, error) {
	for attempt := 0; attempt < tokenMaxAttempts; attempt++ {
		token, err := generatePublicToken()
		if err != nil {
			return "", err
		}
		exists, err := s.tickets.TokenExists(ctx, token)
		if err != nil {
			return "", err
		}
		if !exists {
			return token, nil
		}
	}
	return "", apperrors.NewConflict("could not allocate a unique tracking token", nil)
}

func generatePublicToken() (string, error) {
	buf := make([]byte, publicTokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(publicTokenAlphabet))))
		if err != nil {
			return "", err
		}
		buf[i] = publicTokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validPriority(p domain.TicketPriority) bool {
	switch p {
	case domain.TicketPriorityLow, domain.TicketPriorityMedium, domain.TicketPriorityHigh, domain.TicketPriorityUrgent:
		return true
	}
	return false
}

func queueUserIDs(queue []domain.CategoryAssignment) []string {
	if len(queue) == 0 {
		return nil
	}
	ids := make([]string, 0, len(queue))
	for _, entry := range queue {
		ids = append(ids, entry.UserID)
	}
	return ids
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
