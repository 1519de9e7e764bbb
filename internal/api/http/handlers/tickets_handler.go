package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Beyond-Company/Ticketing-backend/internal/api/dto"
	"github.com/Beyond-Company/Ticketing-backend/internal/auth"
	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/service"
	"github.com/Beyond-Company/Ticketing-backend/internal/tenant"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// TicketsHandler manages member-facing ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	org, principal, err := requireMember(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Create(c.Context(), org.ID, principal.User.ID, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		CategoryID:  req.CategoryID,
		StatusID:    req.StatusID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	org, principal, err := requireMember(c)
	if err != nil {
		return err
	}
	filter := parseTicketQuery(c, principal)
	tickets, err := h.service.List(c.Context(), org.ID, filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	org, _, err := requireMember(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.Get(c.Context(), org.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Update PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	org, principal, err := requireMember(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Update(c.Context(), org.ID, c.Params("id"), principal.User.ID, service.TicketUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		StatusID:    req.StatusID,
		Priority:    req.Priority,
		CategoryID:  req.CategoryID,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Delete DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	org, _, err := requireMember(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), org.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	org, principal, err := requireMember(c)
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	comment, err := h.service.AddComment(c.Context(), org.ID, c.Params("id"), principal.User.ID, principal.User.Name, req.Body, req.Internal)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

// ListComments GET /tickets/:id/comments.
func (h *TicketsHandler) ListComments(c *fiber.Ctx) error {
	org, _, err := requireMember(c)
	if err != nil {
		return err
	}
	comments, err := h.service.ListComments(c.Context(), org.ID, c.Params("id"), true)
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListActivity GET /tickets/:id/activity.
func (h *TicketsHandler) ListActivity(c *fiber.Ctx) error {
	org, _, err := requireMember(c)
	if err != nil {
		return err
	}
	logs, err := h.service.ListActivity(c.Context(), org.ID, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ActivityResponse, 0, len(logs))
	for i := range logs {
		items = append(items, activityResponse(&logs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddTimeEntry POST /tickets/:id/time-entries.
func (h *TicketsHandler) AddTimeEntry(c *fiber.Ctx) error {
	org, principal, err := requireMember(c)
	if err != nil {
		return err
	}
	var req dto.CreateTimeEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	spentOn := time.Time{}
	if req.SpentOn != nil {
		spentOn = *req.SpentOn
	}
	entry, err := h.service.AddTimeEntry(c.Context(), org.ID, c.Params("id"), principal.User.ID, req.Minutes, req.Note, spentOn)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": timeEntryResponse(entry)})
}

// ListTimeEntries GET /tickets/:id/time-entries.
func (h *TicketsHandler) ListTimeEntries(c *fiber.Ctx) error {
	org, _, err := requireMember(c)
	if err != nil {
		return err
	}
	entries, total, err := h.service.ListTimeEntries(c.Context(), org.ID, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.TimeEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, timeEntryResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": dto.TimeEntriesResponse{Entries: items, TotalMinutes: total}})
}

// requireMember pulls the resolved organization and principal off the request.
// Both are set by the middleware chain on every route that reaches here.
func requireMember(c *fiber.Ctx) (*domain.Organization, *auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, nil, apperrors.NewUnauthorized("user required")
	}
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return nil, nil, apperrors.NewValidationError("no organization specified", nil)
	}
	return org, principal, nil
}

func parseTicketQuery(c *fiber.Ctx, principal *auth.Principal) service.TicketListFilter {
	filter := service.TicketListFilter{}
	if v := c.Query("status_id"); v != "" {
		filter.StatusID = &v
	}
	if v := c.Query("category_id"); v != "" {
		filter.CategoryID = &v
	}
	if v := c.Query("priority"); v != "" {
		p := domain.TicketPriority(v)
		filter.Priority = &p
	}
	if v := c.Query("assigned_to"); v != "" {
		if v == "me" {
			v = principal.User.ID
		}
		filter.AssignedTo = &v
	}
	if c.Query("mine") == "true" {
		filter.SubmitterID = &principal.User.ID
	}
	if v := c.Query("q"); v != "" {
		filter.SearchTerm = &v
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:            ticket.ID,
		Title:         ticket.Title,
		Description:   ticket.Description,
		StatusID:      ticket.StatusID,
		Priority:      ticket.Priority,
		CategoryID:    ticket.CategoryID,
		UserID:        ticket.UserID,
		SubmitterName: ticket.SubmitterName,
		AssignedTo:    ticket.AssignedTo,
		PublicToken:   ticket.PublicToken,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
		ClosedAt:      ticket.ClosedAt,
	}
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         comment.ID,
		UserID:     comment.UserID,
		AuthorName: comment.AuthorName,
		Body:       comment.Body,
		Internal:   comment.Internal,
		CreatedAt:  comment.CreatedAt,
	}
}

func activityResponse(entry *domain.ActivityLog) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:        entry.ID,
		ActorID:   entry.ActorID,
		Field:     entry.Field,
		OldValue:  entry.OldValue,
		NewValue:  entry.NewValue,
		CreatedAt: entry.CreatedAt,
	}
}

func timeEntryResponse(entry *domain.TimeEntry) dto.TimeEntryResponse {
	return dto.TimeEntryResponse{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Minutes:   entry.Minutes,
		Note:      entry.Note,
		SpentOn:   entry.SpentOn,
		CreatedAt: entry.CreatedAt,
	}
}
