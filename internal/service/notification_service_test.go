package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/events"
	"github.com/Beyond-Company/Ticketing-backend/internal/mailer"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository/repotest"
	"github.com/Beyond-Company/Ticketing-backend/internal/service"
)

type notificationFixture struct {
	notifications *repotest.Notifications
	tickets       *repotest.Tickets
	users         *repotest.Users
	orgs          *repotest.Organizations
	dispatcher    events.Dispatcher
	mail          *mailRecorder
	service       *service.NotificationService
	org           *domain.Organization
}

func newNotificationFixture(t *testing.T) *notificationFixture {
	t.Helper()
	f := &notificationFixture{
		notifications: repotest.NewNotifications(),
		tickets:       repotest.NewTickets(),
		users:         repotest.NewUsers(),
		orgs:          repotest.NewOrganizations(),
		dispatcher:    events.NewInMemoryDispatcher(zap.NewNop()),
		mail:          &mailRecorder{},
	}
	f.service = service.NewNotificationService(service.NotificationDependencies{
		NotificationRepo: f.notifications,
		TicketRepo:       f.tickets,
		UserRepo:         f.users,
		OrganizationRepo: f.orgs,
		Dispatcher:       f.dispatcher,
		Mail:             f.mail,
	}, zap.NewNop())
	f.service.RegisterHandlers()
	f.org = f.orgs.Seed(domain.Organization{Name: "Acme", Slug: "acme", Status: domain.OrgStatusActive})
	return f
}

func (f *notificationFixture) user(t *testing.T, name, email, lang string) *domain.User {
	t.Helper()
	u := &domain.User{Name: name, Email: email, Role: domain.GlobalRoleUser, Lang: lang}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *notificationFixture) memberTicket(t *testing.T, submitter *domain.User) *domain.Ticket {
	t.Helper()
	ticket := &domain.Ticket{
		OrganizationID: f.org.ID,
		Title:          "Printer down",
		Description:    "floor two",
		StatusID:       uuid.NewString(),
		Priority:       domain.TicketPriorityMedium,
		UserID:         &submitter.ID,
	}
	require.NoError(t, f.tickets.Create(context.Background(), ticket))
	return ticket
}

func (f *notificationFixture) publicTicket(t *testing.T, name, email, token string) *domain.Ticket {
	t.Helper()
	ticket := &domain.Ticket{
		OrganizationID: f.org.ID,
		Title:          "Door stuck",
		Description:    "side entrance",
		StatusID:       uuid.NewString(),
		Priority:       domain.TicketPriorityMedium,
		SubmitterName:  &name,
		SubmitterEmail: &email,
		PublicToken:    &token,
	}
	require.NoError(t, f.tickets.Create(context.Background(), ticket))
	return ticket
}

func (f *notificationFixture) publish(t *testing.T, event events.Event) {
	t.Helper()
	require.NoError(t, f.dispatcher.Publish(context.Background(), event))
}

func TestNotificationFeed(t *testing.T) {
	f := newNotificationFixture(t)
	ctx := context.Background()
	userID := uuid.NewString()
	ticketID := uuid.NewString()

	for _, msg := range []string{"first", "second", "third"} {
		require.NoError(t, f.notifications.Create(ctx, &domain.Notification{
			UserID:         userID,
			OrganizationID: f.org.ID,
			TicketID:       &ticketID,
			Kind:           domain.NotificationTicketAssigned,
			Message:        msg,
		}))
	}

	feed, err := f.service.ListMine(ctx, userID, 2, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	require.Equal(t, "third", feed[0].Message)
	require.Equal(t, "second", feed[1].Message)

	unread, err := f.service.CountUnread(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, int64(3), unread)

	require.NoError(t, f.service.MarkRead(ctx, userID, feed[0].ID))
	unread, err = f.service.CountUnread(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, int64(2), unread)

	// marking again is a no-op
	require.NoError(t, f.service.MarkRead(ctx, userID, feed[0].ID))

	err = f.service.MarkRead(ctx, userID, uuid.NewString())
	require.Equal(t, "NOT_FOUND", domainErr(t, err).Code)

	// another user's notification is invisible
	err = f.service.MarkRead(ctx, uuid.NewString(), feed[1].ID)
	require.Equal(t, "NOT_FOUND", domainErr(t, err).Code)

	require.NoError(t, f.service.MarkAllRead(ctx, userID))
	unread, err = f.service.CountUnread(ctx, userID)
	require.NoError(t, err)
	require.Zero(t, unread)
}

func TestTicketCreatedEmailsPublicSubmitter(t *testing.T) {
	f := newNotificationFixture(t)
	name := "Visitor"
	email := "visitor@example.com"
	token := "ABCD2345"
	ticket := f.publicTicket(t, name, email, token)

	f.publish(t, events.Event{
		Type:           events.EventTicketCreated,
		OrganizationID: f.org.ID,
		TicketID:       ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:          ticket.Title,
			Priority:       ticket.Priority,
			SubmitterName:  &name,
			SubmitterEmail: &email,
			PublicToken:    &token,
		},
	})

	queued := f.mail.enqueuedMessages()
	require.Len(t, queued, 1)
	require.Equal(t, email, queued[0].To)
	require.Equal(t, mailer.KindTicketSubmitted, queued[0].Kind)
	require.Equal(t, token, queued[0].Vars["Token"])
	require.Equal(t, "Acme", queued[0].Vars["Organization"])
}

func TestTicketCreatedEmailsMemberSubmitter(t *testing.T) {
	f := newNotificationFixture(t)
	submitter := f.user(t, "Jane", "jane@example.com", "ar")
	ticket := f.memberTicket(t, submitter)

	f.publish(t, events.Event{
		Type:           events.EventTicketCreated,
		OrganizationID: f.org.ID,
		TicketID:       ticket.ID,
		ActorID:        &submitter.ID,
		Payload: events.TicketCreatedPayload{
			Title:       ticket.Title,
			Priority:    ticket.Priority,
			SubmitterID: &submitter.ID,
		},
	})

	queued := f.mail.enqueuedMessages()
	require.Len(t, queued, 1)
	require.Equal(t, "jane@example.com", queued[0].To)
	require.Equal(t, "ar", queued[0].Lang)
	require.Equal(t, mailer.KindTicketSubmitted, queued[0].Kind)
}

func TestStatusChangeEmailsSubmitter(t *testing.T) {
	f := newNotificationFixture(t)
	submitter := f.user(t, "Jane", "jane@example.com", "en")
	actor := f.user(t, "Agent", "agent@example.com", "en")
	ticket := f.memberTicket(t, submitter)

	f.publish(t, events.Event{
		Type:           events.EventTicketStatusChanged,
		OrganizationID: f.org.ID,
		TicketID:       ticket.ID,
		ActorID:        &actor.ID,
		Payload:        events.TicketStatusChangedPayload{OldStatus: "Open", NewStatus: "Resolved"},
	})

	queued := f.mail.enqueuedMessages()
	require.Len(t, queued, 1)
	require.Equal(t, "jane@example.com", queued[0].To)
	require.Equal(t, mailer.KindTicketStatusChanged, queued[0].Kind)
	require.Equal(t, "Resolved", queued[0].Vars["NewStatus"])
}

func TestAssignmentEmailsWholeQueue(t *testing.T) {
	f := newNotificationFixture(t)
	submitter := f.user(t, "Jane", "jane@example.com", "en")
	first := f.user(t, "First", "first@example.com", "en")
	second := f.user(t, "Second", "second@example.com", "ar")
	ticket := f.memberTicket(t, submitter)

	f.publish(t, events.Event{
		Type:           events.EventTicketAssigned,
		OrganizationID: f.org.ID,
		TicketID:       ticket.ID,
		Payload: events.TicketAssignedPayload{
			AssigneeID:   first.ID,
			QueueUserIDs: []string{first.ID, second.ID},
		},
	})

	queued := f.mail.enqueuedMessages()
	require.Len(t, queued, 2)
	require.Equal(t, "first@example.com", queued[0].To)
	require.Equal(t, "second@example.com", queued[1].To)
	require.Equal(t, "ar", queued[1].Lang)

	// a manual assignment carries no queue: only the assignee is mailed
	f.mail.reset()
	f.publish(t, events.Event{
		Type:           events.EventTicketAssigned,
		OrganizationID: f.org.ID,
		TicketID:       ticket.ID,
		Payload:        events.TicketAssignedPayload{AssigneeID: second.ID},
	})
	queued = f.mail.enqueuedMessages()
	require.Len(t, queued, 1)
	require.Equal(t, "second@example.com", queued[0].To)
}

func TestCommentEmailRouting(t *testing.T) {
	f := newNotificationFixture(t)
	ctx := context.Background()
	submitter := f.user(t, "Jane", "jane@example.com", "en")
	agent := f.user(t, "Agent", "agent@example.com", "en")

	ticket := f.memberTicket(t, submitter)
	ticket.AssignedTo = &agent.ID
	require.NoError(t, f.tickets.Update(ctx, ticket))

	comment := func(actorID *string, internal bool) events.Event {
		return events.Event{
			Type:           events.EventTicketCommentAdded,
			OrganizationID: f.org.ID,
			TicketID:       ticket.ID,
			ActorID:        actorID,
			Payload: events.TicketCommentAddedPayload{
				CommentID:   uuid.NewString(),
				AuthorName:  "whoever",
				BodyPreview: "hello",
				Internal:    internal,
			},
		}
	}

	// internal notes stay internal
	f.publish(t, comment(&agent.ID, true))
	require.Empty(t, f.mail.enqueuedMessages())

	// a member reply goes to the submitter
	f.publish(t, comment(&agent.ID, false))
	queued := f.mail.enqueuedMessages()
	require.Len(t, queued, 1)
	require.Equal(t, "jane@example.com", queued[0].To)
	require.Equal(t, mailer.KindTicketCommented, queued[0].Kind)

	// the submitter commenting on their own ticket mails nobody
	f.mail.reset()
	f.publish(t, comment(&submitter.ID, false))
	require.Empty(t, f.mail.enqueuedMessages())

	// an anonymous follow-up goes to the assignee
	f.mail.reset()
	f.publish(t, comment(nil, false))
	queued = f.mail.enqueuedMessages()
	require.Len(t, queued, 1)
	require.Equal(t, "agent@example.com", queued[0].To)
}

func TestCommentEmailSkipsUnassignedAnonymousFollowUp(t *testing.T) {
	f := newNotificationFixture(t)
	ticket := f.publicTicket(t, "Visitor", "visitor@example.com", "WXYZ2345")

	f.publish(t, events.Event{
		Type:           events.EventTicketCommentAdded,
		OrganizationID: f.org.ID,
		TicketID:       ticket.ID,
		Payload: events.TicketCommentAddedPayload{
			CommentID:   uuid.NewString(),
			AuthorName:  "Visitor",
			BodyPreview: "any update?",
		},
	})
	require.Empty(t, f.mail.enqueuedMessages())
}
