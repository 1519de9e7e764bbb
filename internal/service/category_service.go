package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// CategoryService manages ticket categories and their assignment queues.
type CategoryService struct {
	categories  repository.CategoryRepository
	assignments repository.CategoryAssignmentRepository
	memberships repository.MembershipRepository
}

// CategoryDependencies bundles repositories for the service.
type CategoryDependencies struct {
	CategoryRepo   repository.CategoryRepository
	AssignmentRepo repository.CategoryAssignmentRepository
	MembershipRepo repository.MembershipRepository
}

// NewCategoryService constructs the service.
func NewCategoryService(deps CategoryDependencies) *CategoryService {
	return &CategoryService{
		categories:  deps.CategoryRepo,
		assignments: deps.AssignmentRepo,
		memberships: deps.MembershipRepo,
	}
}

// Create adds a category; names are unique per organization.
func (s *CategoryService) Create(ctx context.Context, organizationID, name string, nameAr *string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("category name is required", map[string]any{"name": "required"})
	}

	category := &domain.Category{
		OrganizationID: organizationID,
		Name:           name,
		NameAr:         nameAr,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("category name already exists", map[string]any{"name": name})
		}
		return nil, err
	}
	return category, nil
}

// Update renames a category.
func (s *CategoryService) Update(ctx context.Context, organizationID, id, name string, nameAr *string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("category name is required", map[string]any{"name": "required"})
	}
	category.Name = name
	if nameAr != nil {
		category.NameAr = nameAr
	}

	if err := s.categories.Update(ctx, category); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("category name already exists", map[string]any{"name": name})
		}
		return nil, err
	}
	return category, nil
}

// Delete removes a category. Tickets keep existing with a cleared category;
// queue rows go with it.
func (s *CategoryService) Delete(ctx context.Context, organizationID, id string) error {
	return s.categories.Delete(ctx, organizationID, id)
}

// Get fetches one category within the tenant.
func (s *CategoryService) Get(ctx context.Context, organizationID, id string) (*domain.Category, error) {
	return s.categories.GetByID(ctx, organizationID, id)
}

// List returns the tenant's categories.
func (s *CategoryService) List(ctx context.Context, organizationID string) ([]domain.Category, error) {
	return s.categories.ListByOrganization(ctx, organizationID)
}

// AssignUser registers an organization member in the category's
// auto-assignment queue.
func (s *CategoryService) AssignUser(ctx context.Context, organizationID, categoryID, userID string) (*domain.CategoryAssignment, error) {
	if _, err := s.categories.GetByID(ctx, organizationID, categoryID); err != nil {
		return nil, err
	}
	if _, err := s.memberships.Get(ctx, userID, organizationID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("user is not a member of this organization", map[string]any{"user_id": userID})
		}
		return nil, err
	}

	assignment := &domain.CategoryAssignment{
		UserID:         userID,
		CategoryID:     categoryID,
		OrganizationID: organizationID,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("user is already assigned to this category", map[string]any{"user_id": userID})
		}
		return nil, err
	}
	return assignment, nil
}

// UnassignUser removes a user from the category queue.
func (s *CategoryService) UnassignUser(ctx context.Context, organizationID, categoryID, userID string) error {
	if err := s.assignments.Delete(ctx, organizationID, categoryID, userID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("assignment", map[string]any{"user_id": userID, "category_id": categoryID})
		}
		return err
	}
	return nil
}

// ListQueue returns the category's queue in stored order.
func (s *CategoryService) ListQueue(ctx context.Context, organizationID, categoryID string) ([]domain.CategoryAssignment, error) {
	if _, err := s.categories.GetByID(ctx, organizationID, categoryID); err != nil {
		return nil, err
	}
	return s.assignments.ListByCategory(ctx, organizationID, categoryID)
}
