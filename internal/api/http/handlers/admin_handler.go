package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Beyond-Company/Ticketing-backend/internal/api/dto"
	"github.com/Beyond-Company/Ticketing-backend/internal/observability"
	"github.com/Beyond-Company/Ticketing-backend/internal/service"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// AdminHandler serves the platform super-admin surface.
type AdminHandler struct {
	orgs    *service.OrganizationService
	reports *service.ReportService
	metrics *observability.Metrics
}

// NewAdminHandler constructs handler.
func NewAdminHandler(orgService *service.OrganizationService, reportService *service.ReportService, metrics *observability.Metrics) *AdminHandler {
	return &AdminHandler{orgs: orgService, reports: reportService, metrics: metrics}
}

// ListOrganizations GET /admin/organizations.
func (h *AdminHandler) ListOrganizations(c *fiber.Ctx) error {
	orgs, err := h.orgs.ListAll(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.OrganizationResponse, 0, len(orgs))
	for i := range orgs {
		items = append(items, organizationResponse(&orgs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ChangeOrganizationStatus PATCH /admin/organizations/:id/status.
func (h *AdminHandler) ChangeOrganizationStatus(c *fiber.Ctx) error {
	var req dto.ChangeOrgStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.orgs.ChangeStatus(c.Context(), c.Params("id"), req.Status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// DeleteOrganization DELETE /admin/organizations/:id.
func (h *AdminHandler) DeleteOrganization(c *fiber.Ctx) error {
	if err := h.orgs.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// PlatformStats GET /admin/stats.
func (h *AdminHandler) PlatformStats(c *fiber.Ctx) error {
	stats, err := h.reports.Platform(c.Context())
	if err != nil {
		return err
	}
	payload := fiber.Map{
		"data": dto.PlatformStatsResponse{
			Organizations: stats.Organizations,
			Users:         stats.Users,
			Tickets:       stats.Tickets,
			OpenTickets:   stats.OpenTickets,
		},
	}
	if h.metrics != nil {
		requests, errs, slow := h.metrics.Snapshot()
		payload["http"] = fiber.Map{"requests": requests, "errors": errs, "slow": slow}
	}
	return c.JSON(payload)
}
