package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Beyond-Company/Ticketing-backend/internal/api/dto"
	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/service"
	"github.com/Beyond-Company/Ticketing-backend/internal/tenant"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// CategoriesHandler manages category and assignment-queue endpoints.
type CategoriesHandler struct {
	service *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categoryService *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{service: categoryService}
}

// List GET /categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	categories, err := h.service.List(c.Context(), org.ID)
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, categoryResponse(&categories[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.service.Create(c.Context(), org.ID, req.Name, req.NameAr)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": categoryResponse(category)})
}

// Get GET /categories/:id.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	category, err := h.service.Get(c.Context(), org.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categoryResponse(category)})
}

// Update PATCH /categories/:id.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.service.Update(c.Context(), org.ID, c.Params("id"), req.Name, req.NameAr)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categoryResponse(category)})
}

// Delete DELETE /categories/:id.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	if err := h.service.Delete(c.Context(), org.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListQueue GET /categories/:id/assignments.
func (h *CategoriesHandler) ListQueue(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	queue, err := h.service.ListQueue(c.Context(), org.ID, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.AssignmentResponse, 0, len(queue))
	for i := range queue {
		items = append(items, assignmentResponse(&queue[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Assign POST /categories/:id/assignments.
func (h *CategoriesHandler) Assign(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	var req dto.AssignUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" {
		return apperrors.NewValidationError("user_id required", nil)
	}
	assignment, err := h.service.AssignUser(c.Context(), org.ID, c.Params("id"), req.UserID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": assignmentResponse(assignment)})
}

// Unassign DELETE /categories/:id/assignments/:userId.
func (h *CategoriesHandler) Unassign(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return apperrors.NewValidationError("no organization specified", nil)
	}
	if err := h.service.UnassignUser(c.Context(), org.ID, c.Params("id"), c.Params("userId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"removed": true}})
}

func categoryResponse(category *domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		NameAr:    category.NameAr,
		CreatedAt: category.CreatedAt,
	}
}

func assignmentResponse(a *domain.CategoryAssignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		UserID:     a.UserID,
		CategoryID: a.CategoryID,
		CreatedAt:  a.CreatedAt,
	}
}
