package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Beyond-Company/Ticketing-backend/internal/api/dto"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
	"github.com/Beyond-Company/Ticketing-backend/internal/service"
	"github.com/Beyond-Company/Ticketing-backend/internal/tenant"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// PublicHandler serves the unauthenticated submission and tracking surface.
// Writes are rate limited per client IP within each organization.
type PublicHandler struct {
	service       *service.TicketService
	limiter       repository.RateLimiter
	submitPerHour int
}

// NewPublicHandler constructs handler.
func NewPublicHandler(ticketService *service.TicketService, limiter repository.RateLimiter, submitPerHour int) *PublicHandler {
	return &PublicHandler{service: ticketService, limiter: limiter, submitPerHour: submitPerHour}
}

// Submit POST /public/:orgSlug/tickets.
func (h *PublicHandler) Submit(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	if err := h.allow(c, org.ID); err != nil {
		return err
	}
	var req dto.PublicTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.CreatePublic(c.Context(), org.ID, service.PublicTicketInput{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		CategoryID:     req.CategoryID,
		SubmitterName:  req.SubmitterName,
		SubmitterEmail: req.SubmitterEmail,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Track GET /public/:orgSlug/tickets/track?token=.
func (h *PublicHandler) Track(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	ticket, comments, err := h.service.TrackByToken(c.Context(), org.ID, c.Query("token"))
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": dto.TrackTicketResponse{
		Ticket:   ticketResponse(ticket),
		Comments: items,
	}})
}

// Comment POST /public/:orgSlug/tickets/comments.
func (h *PublicHandler) Comment(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	if err := h.allow(c, org.ID); err != nil {
		return err
	}
	var req dto.PublicCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	comment, err := h.service.AddPublicComment(c.Context(), org.ID, req.Token, req.Body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

func (h *PublicHandler) allow(c *fiber.Ctx, orgID string) error {
	if h.limiter == nil || h.submitPerHour <= 0 {
		return nil
	}
	key := fmt.Sprintf("public:%s:%s", orgID, c.IP())
	allowed, err := h.limiter.Allow(c.Context(), key, h.submitPerHour, time.Hour)
	if err != nil {
		// fail open when the limiter backend is unavailable
		return nil
	}
	if !allowed {
		return apperrors.NewRateLimited("too many requests, try again later")
	}
	return nil
}
