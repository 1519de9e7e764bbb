package service

import (
	"context"
	"strings"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// StatusService manages the tenant's ordered ticket status set.
type StatusService struct {
	statuses repository.TicketStatusRepository
	tickets  repository.TicketRepository
}

// StatusDependencies bundles repositories for the service.
type StatusDependencies struct {
	StatusRepo repository.TicketStatusRepository
	TicketRepo repository.TicketRepository
}

// StatusCreateInput describes a new status row.
type StatusCreateInput struct {
	Name      string
	SortOrder int
	IsDefault bool
	IsClosing bool
}

// StatusUpdateInput carries optional field updates.
type StatusUpdateInput struct {
	Name      *string
	SortOrder *int
	IsDefault *bool
	IsClosing *bool
}

// NewStatusService constructs the service.
func NewStatusService(deps StatusDependencies) *StatusService {
	return &StatusService{
		statuses: deps.StatusRepo,
		tickets:  deps.TicketRepo,
	}
}

// Create adds a status; names are unique per organization.
func (s *StatusService) Create(ctx context.Context, organizationID string, input StatusCreateInput) (*domain.TicketStatus, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("status name is required", map[string]any{"name": "required"})
	}

	status := &domain.TicketStatus{
		OrganizationID: organizationID,
		Name:           name,
		SortOrder:      input.SortOrder,
		IsDefault:      input.IsDefault,
		IsClosing:      input.IsClosing,
	}
	if err := s.statuses.Create(ctx, status); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("status name already exists", map[string]any{"name": name})
		}
		return nil, err
	}
	return status, nil
}

// Update applies partial changes to a status row.
func (s *StatusService) Update(ctx context.Context, organizationID, id string, input StatusUpdateInput) (*domain.TicketStatus, error) {
	status, err := s.statuses.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("status name is required", map[string]any{"name": "required"})
		}
		status.Name = name
	}
	if input.SortOrder != nil {
		status.SortOrder = *input.SortOrder
	}
	if input.IsDefault != nil {
		status.IsDefault = *input.IsDefault
	}
	if input.IsClosing != nil {
		status.IsClosing = *input.IsClosing
	}

	if err := s.statuses.Update(ctx, status); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("status name already exists", map[string]any{"name": status.Name})
		}
		return nil, err
	}
	return status, nil
}

// Delete removes a status unless tickets still reference it.
func (s *StatusService) Delete(ctx context.Context, organizationID, id string) error {
	if _, err := s.statuses.GetByID(ctx, organizationID, id); err != nil {
		return err
	}
	count, err := s.tickets.CountByStatus(ctx, organizationID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflict("status is referenced by existing tickets", map[string]any{"tickets": count})
	}
	return s.statuses.Delete(ctx, organizationID, id)
}

// Get fetches one status within the tenant.
func (s *StatusService) Get(ctx context.Context, organizationID, id string) (*domain.TicketStatus, error) {
	return s.statuses.GetByID(ctx, organizationID, id)
}

// List returns the tenant's statuses in sort order.
func (s *StatusService) List(ctx context.Context, organizationID string) ([]domain.TicketStatus, error) {
	return s.statuses.ListByOrganization(ctx, organizationID)
}
