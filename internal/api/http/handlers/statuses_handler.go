package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Beyond-Company/Ticketing-backend/internal/api/dto"
	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/service"
	"github.com/Beyond-Company/Ticketing-backend/internal/tenant"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// StatusesHandler manages the per-tenant status vocabulary.
type StatusesHandler struct {
	service *service.StatusService
}

// NewStatusesHandler constructs handler.
func NewStatusesHandler(statusService *service.StatusService) *StatusesHandler {
	return &StatusesHandler{service: statusService}
}

// List GET /statuses.
func (h *StatusesHandler) List(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	statuses, err := h.service.List(c.Context(), org.ID)
	if err != nil {
		return err
	}
	items := make([]dto.StatusResponse, 0, len(statuses))
	for i := range statuses {
		items = append(items, statusResponse(&statuses[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /statuses.
func (h *StatusesHandler) Create(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	var req dto.CreateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := h.service.Create(c.Context(), org.ID, service.StatusCreateInput{
		Name:      req.Name,
		SortOrder: req.SortOrder,
		IsDefault: req.IsDefault,
		IsClosing: req.IsClosing,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": statusResponse(status)})
}

// Get GET /statuses/:id.
func (h *StatusesHandler) Get(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	status, err := h.service.Get(c.Context(), org.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": statusResponse(status)})
}

// Update PATCH /statuses/:id.
func (h *StatusesHandler) Update(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := h.service.Update(c.Context(), org.ID, c.Params("id"), service.StatusUpdateInput{
		Name:      req.Name,
		SortOrder: req.SortOrder,
		IsDefault: req.IsDefault,
		IsClosing: req.IsClosing,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": statusResponse(status)})
}

// Delete DELETE /statuses/:id.
func (h *StatusesHandler) Delete(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	if err := h.service.Delete(c.Context(), org.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func statusResponse(status *domain.TicketStatus) dto.StatusResponse {
	return dto.StatusResponse{
		ID:        status.ID,
		Name:      status.Name,
		SortOrder: status.SortOrder,
		IsDefault: status.IsDefault,
		IsClosing: status.IsClosing,
		CreatedAt: status.CreatedAt,
	}
}
