package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Beyond-Company/Ticketing-backend/internal/api/dto"
	"github.com/Beyond-Company/Ticketing-backend/internal/auth"
	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/service"
	"github.com/Beyond-Company/Ticketing-backend/internal/tenant"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// OrganizationsHandler manages tenant and membership endpoints.
type OrganizationsHandler struct {
	service *service.OrganizationService
}

// NewOrganizationsHandler constructs handler.
func NewOrganizationsHandler(orgService *service.OrganizationService) *OrganizationsHandler {
	return &OrganizationsHandler{service: orgService}
}

// Create POST /organizations.
func (h *OrganizationsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	org, err := h.service.Create(c.Context(), principal.User.ID, service.OrganizationCreateInput{
		Name:      req.Name,
		Slug:      req.Slug,
		Subdomain: req.Subdomain,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": organizationResponse(org)})
}

// ListMine GET /organizations.
func (h *OrganizationsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	orgs, err := h.service.ListMine(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.OrganizationResponse, 0, len(orgs))
	for i := range orgs {
		items = append(items, organizationResponse(&orgs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Current GET /organizations/current.
func (h *OrganizationsHandler) Current(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	return c.JSON(fiber.Map{"data": organizationResponse(org)})
}

// Update PATCH /organizations/current.
func (h *OrganizationsHandler) Update(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	var req dto.UpdateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	updated, err := h.service.Update(c.Context(), org.ID, service.OrganizationUpdateInput{
		Name:      req.Name,
		Slug:      req.Slug,
		Subdomain: req.Subdomain,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": organizationResponse(updated)})
}

// ListMembers GET /organizations/current/members.
func (h *OrganizationsHandler) ListMembers(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	members, err := h.service.ListMembers(c.Context(), org.ID)
	if err != nil {
		return err
	}
	items := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		items = append(items, memberResponse(&members[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddMember POST /organizations/current/members.
func (h *OrganizationsHandler) AddMember(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	membership, err := h.service.AddMember(c.Context(), org.ID, req.Email, req.Role)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"user_id":   membership.UserID,
		"role":      membership.Role,
		"joined_at": membership.CreatedAt,
	}})
}

// ChangeMemberRole PATCH /organizations/current/members/:userId.
func (h *OrganizationsHandler) ChangeMemberRole(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	var req dto.ChangeMemberRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.ChangeMemberRole(c.Context(), org.ID, c.Params("userId"), req.Role); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// RemoveMember DELETE /organizations/current/members/:userId.
func (h *OrganizationsHandler) RemoveMember(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	if err := h.service.RemoveMember(c.Context(), org.ID, c.Params("userId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"removed": true}})
}

func organizationResponse(org *domain.Organization) dto.OrganizationResponse {
	return dto.OrganizationResponse{
		ID:        org.ID,
		Name:      org.Name,
		Slug:      org.Slug,
		Subdomain: org.Subdomain,
		Status:    org.Status,
		CreatedAt: org.CreatedAt,
	}
}

func memberResponse(m *service.Member) dto.MemberResponse {
	return dto.MemberResponse{
		UserID:   m.User.ID,
		Name:     m.User.Name,
		Email:    m.User.Email,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
}
