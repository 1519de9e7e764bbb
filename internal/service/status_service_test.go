package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository/repotest"
	"github.com/Beyond-Company/Ticketing-backend/internal/service"
)

type statusFixture struct {
	orgID    string
	statuses *repotest.TicketStatuses
	tickets  *repotest.Tickets
	service  *service.StatusService
}

func newStatusFixture(t *testing.T) *statusFixture {
	t.Helper()
	f := &statusFixture{
		orgID:    uuid.NewString(),
		statuses: repotest.NewTicketStatuses(),
		tickets:  repotest.NewTickets(),
	}
	f.service = service.NewStatusService(service.StatusDependencies{
		StatusRepo: f.statuses,
		TicketRepo: f.tickets,
	})
	return f
}

func TestStatusCreate(t *testing.T) {
	f := newStatusFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, f.orgID, service.StatusCreateInput{Name: "  "})
	require.Equal(t, "VALIDATION_FAILED", domainErr(t, err).Code)

	status, err := f.service.Create(ctx, f.orgID, service.StatusCreateInput{
		Name:      " Waiting on Customer ",
		SortOrder: 3,
	})
	require.NoError(t, err)
	require.Equal(t, "Waiting on Customer", status.Name)
	require.False(t, status.IsDefault)

	_, err = f.service.Create(ctx, f.orgID, service.StatusCreateInput{Name: "waiting on customer"})
	require.Equal(t, "CONFLICT", domainErr(t, err).Code)
}

func TestStatusUpdate(t *testing.T) {
	f := newStatusFixture(t)
	ctx := context.Background()

	status, err := f.service.Create(ctx, f.orgID, service.StatusCreateInput{Name: "Open", SortOrder: 1, IsDefault: true})
	require.NoError(t, err)

	name := "Triage"
	order := 5
	closing := true
	updated, err := f.service.Update(ctx, f.orgID, status.ID, service.StatusUpdateInput{
		Name:      &name,
		SortOrder: &order,
		IsClosing: &closing,
	})
	require.NoError(t, err)
	require.Equal(t, "Triage", updated.Name)
	require.Equal(t, 5, updated.SortOrder)
	require.True(t, updated.IsClosing)
	require.True(t, updated.IsDefault)

	empty := "  "
	_, err = f.service.Update(ctx, f.orgID, status.ID, service.StatusUpdateInput{Name: &empty})
	require.Equal(t, "VALIDATION_FAILED", domainErr(t, err).Code)

	_, err = f.service.Update(ctx, f.orgID, uuid.NewString(), service.StatusUpdateInput{Name: &name})
	require.Equal(t, "NOT_FOUND", domainErr(t, err).Code)
}

func TestStatusDeleteGuardedByTickets(t *testing.T) {
	f := newStatusFixture(t)
	ctx := context.Background()

	status, err := f.service.Create(ctx, f.orgID, service.StatusCreateInput{Name: "Open", IsDefault: true})
	require.NoError(t, err)

	userID := uuid.NewString()
	require.NoError(t, f.tickets.Create(ctx, &domain.Ticket{
		OrganizationID: f.orgID,
		Title:          "Pending work",
		Description:    "d",
		StatusID:       status.ID,
		Priority:       domain.TicketPriorityMedium,
		UserID:         &userID,
	}))

	err = f.service.Delete(ctx, f.orgID, status.ID)
	de := domainErr(t, err)
	require.Equal(t, "CONFLICT", de.Code)
	require.Contains(t, de.Message, "referenced by existing tickets")
	require.Equal(t, int64(1), de.Details["tickets"])

	remaining, err := f.tickets.ListWithFilter(ctx, f.orgID, repository.TicketFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.NoError(t, f.tickets.Delete(ctx, f.orgID, remaining[0].ID))
	require.NoError(t, f.service.Delete(ctx, f.orgID, status.ID))

	err = f.service.Delete(ctx, f.orgID, status.ID)
	require.Equal(t, "NOT_FOUND", domainErr(t, err).Code)
}
