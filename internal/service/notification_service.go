package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/events"
	"github.com/Beyond-Company/Ticketing-backend/internal/mailer"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// NotificationService serves the in-app notification feed and fans domain
// events out to email. Every email here is best-effort: enqueued, never
// awaited, failures logged by the mail worker.
type NotificationService struct {
	notifications repository.NotificationRepository
	tickets       repository.TicketRepository
	users         repository.UserRepository
	orgs          repository.OrganizationRepository
	dispatcher    events.Dispatcher
	mail          MailSender
	logger        *zap.Logger
}

// NotificationDependencies bundles collaborators for the service.
type NotificationDependencies struct {
	NotificationRepo repository.NotificationRepository
	TicketRepo       repository.TicketRepository
	UserRepo         repository.UserRepository
	OrganizationRepo repository.OrganizationRepository
	Dispatcher       events.Dispatcher
	Mail             MailSender
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: deps.NotificationRepo,
		tickets:       deps.TicketRepo,
		users:         deps.UserRepo,
		orgs:          deps.OrganizationRepo,
		dispatcher:    deps.Dispatcher,
		mail:          deps.Mail,
		logger:        logger,
	}
}

// ListMine returns the caller's notifications, newest first.
func (n *NotificationService) ListMine(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, error) {
	return n.notifications.ListByUser(ctx, userID, limit, offset)
}

// CountUnread returns the caller's unread notification count.
func (n *NotificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	return n.notifications.CountUnread(ctx, userID)
}

// MarkRead marks one of the caller's notifications as read. Re-marking an
// already-read notification is a no-op.
func (n *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	if err := n.notifications.MarkRead(ctx, userID, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("notification", map[string]any{"notification_id": id})
		}
		return err
	}
	return nil
}

// MarkAllRead marks every unread notification of the caller as read.
func (n *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return n.notifications.MarkAllRead(ctx, userID)
}

// RegisterHandlers subscribes the email fan-out to domain events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleTicketAssigned)
	n.dispatcher.Subscribe(events.EventTicketCommentAdded, n.handleTicketCommentAdded)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	org, err := n.orgs.GetByID(ctx, event.OrganizationID)
	if err != nil {
		n.logger.Warn("ticket created email skipped", zap.String("ticket_id", event.TicketID), zap.Error(err))
		return nil
	}

	vars := map[string]any{
		"Title":        payload.Title,
		"Organization": org.Name,
	}
	if payload.PublicToken != nil {
		vars["Token"] = *payload.PublicToken
	}

	switch {
	case payload.SubmitterEmail != nil:
		name := ""
		if payload.SubmitterName != nil {
			name = *payload.SubmitterName
		}
		vars["Name"] = name
		n.mail.Enqueue(mailer.Message{To: *payload.SubmitterEmail, Kind: mailer.KindTicketSubmitted, Lang: "en", Vars: vars})
	case payload.SubmitterID != nil:
		user, err := n.users.GetByID(ctx, *payload.SubmitterID)
		if err != nil {
			n.logger.Warn("ticket created email skipped", zap.String("ticket_id", event.TicketID), zap.Error(err))
			return nil
		}
		vars["Name"] = user.Name
		n.mail.Enqueue(mailer.Message{To: user.Email, Kind: mailer.KindTicketSubmitted, Lang: user.Lang, Vars: vars})
	}
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	ticket, org, err := n.ticketAndOrg(ctx, event)
	if err != nil {
		n.logger.Warn("status change email skipped", zap.String("ticket_id", event.TicketID), zap.Error(err))
		return nil
	}

	email, name, lang, ok := n.submitterContact(ctx, ticket)
	if !ok {
		return nil
	}
	n.mail.Enqueue(mailer.Message{
		To:   email,
		Kind: mailer.KindTicketStatusChanged,
		Lang: lang,
		Vars: map[string]any{
			"Name":         name,
			"Title":        ticket.Title,
			"OldStatus":    payload.OldStatus,
			"NewStatus":    payload.NewStatus,
			"Organization": org.Name,
		},
	})
	return nil
}

func (n *NotificationService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAssignedPayload)
	if !ok {
		return nil
	}
	ticket, org, err := n.ticketAndOrg(ctx, event)
	if err != nil {
		n.logger.Warn("assignment email skipped", zap.String("ticket_id", event.TicketID), zap.Error(err))
		return nil
	}

	recipients := payload.QueueUserIDs
	if len(recipients) == 0 {
		recipients = []string{payload.AssigneeID}
	}
	for _, userID := range recipients {
		user, err := n.users.GetByID(ctx, userID)
		if err != nil {
			n.logger.Warn("assignment email skipped", zap.String("user_id", userID), zap.Error(err))
			continue
		}
		n.mail.Enqueue(mailer.Message{
			To:   user.Email,
			Kind: mailer.KindTicketAssigned,
			Lang: user.Lang,
			Vars: map[string]any{
				"Name":         user.Name,
				"Title":        ticket.Title,
				"Organization": org.Name,
			},
		})
	}
	return nil
}

func (n *NotificationService) handleTicketCommentAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCommentAddedPayload)
	if !ok || payload.Internal {
		return nil
	}
	ticket, org, err := n.ticketAndOrg(ctx, event)
	if err != nil {
		n.logger.Warn("comment email skipped", zap.String("ticket_id", event.TicketID), zap.Error(err))
		return nil
	}

	vars := map[string]any{
		"Title":        ticket.Title,
		"Author":       payload.AuthorName,
		"Preview":      payload.BodyPreview,
		"Organization": org.Name,
	}

	// A submitter follow-up goes to the assignee; a member reply goes to
	// the submitter.
	if event.ActorID == nil {
		if ticket.AssignedTo == nil {
			return nil
		}
		user, err := n.users.GetByID(ctx, *ticket.AssignedTo)
		if err != nil {
			return nil
		}
		vars["Name"] = user.Name
		n.mail.Enqueue(mailer.Message{To: user.Email, Kind: mailer.KindTicketCommented, Lang: user.Lang, Vars: vars})
		return nil
	}

	if ticket.UserID != nil && *ticket.UserID == *event.ActorID {
		return nil
	}
	email, name, lang, ok := n.submitterContact(ctx, ticket)
	if !ok {
		return nil
	}
	vars["Name"] = name
	n.mail.Enqueue(mailer.Message{To: email, Kind: mailer.KindTicketCommented, Lang: lang, Vars: vars})
	return nil
}

func (n *NotificationService) ticketAndOrg(ctx context.Context, event events.Event) (*domain.Ticket, *domain.Organization, error) {
	ticket, err := n.tickets.GetByID(ctx, event.OrganizationID, event.TicketID)
	if err != nil {
		return nil, nil, err
	}
	org, err := n.orgs.GetByID(ctx, event.OrganizationID)
	if err != nil {
		return nil, nil, err
	}
	return ticket, org, nil
}

// submitterContact resolves the submitter's address: the anonymous contact
// fields for public tickets, the account record otherwise.
func (n *NotificationService) submitterContact(ctx context.Context, ticket *domain.Ticket) (email, name, lang string, ok bool) {
	if ticket.SubmitterEmail != nil {
		name := ""
		if ticket.SubmitterName != nil {
			name = *ticket.SubmitterName
		}
		return *ticket.SubmitterEmail, name, "en", true
	}
	if ticket.UserID == nil {
		return "", "", "", false
	}
	user, err := n.users.GetByID(ctx, *ticket.UserID)
	if err != nil {
		return "", "", "", false
	}
	return user.Email, user.Name, user.Lang, true
}
