package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
	"github.com/Beyond-Company/Ticketing-backend/internal/tenant"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// OrganizationService coordinates tenant lifecycle and membership management.
type OrganizationService struct {
	orgs        repository.OrganizationRepository
	memberships repository.MembershipRepository
	users       repository.UserRepository
	statuses    repository.TicketStatusRepository
}

// OrganizationDependencies bundles repositories for the service.
type OrganizationDependencies struct {
	OrganizationRepo repository.OrganizationRepository
	MembershipRepo   repository.MembershipRepository
	UserRepo         repository.UserRepository
	StatusRepo       repository.TicketStatusRepository
}

// OrganizationCreateInput describes tenant creation payload. Slug falls back
// to the name when absent; both pass through the shared normalizer.
type OrganizationCreateInput struct {
	Name      string
	Slug      string
	Subdomain *string
}

// OrganizationUpdateInput carries optional field updates.
type OrganizationUpdateInput struct {
	Name      *string
	Slug      *string
	Subdomain *string
}

// Member pairs a membership row with its user for listing.
type Member struct {
	User     *domain.User
	Role     domain.OrgRole
	JoinedAt time.Time
}

// NewOrganizationService constructs the service.
func NewOrganizationService(deps OrganizationDependencies) *OrganizationService {
	return &OrganizationService{
		orgs:        deps.OrganizationRepo,
		memberships: deps.MembershipRepo,
		users:       deps.UserRepo,
		statuses:    deps.StatusRepo,
	}
}

// defaultStatuses are seeded into every new organization so ticket creation
// always finds a default status.
var defaultStatuses = []struct {
	name      string
	sortOrder int
	isDefault bool
	isClosing bool
}{
	{"Open", 1, true, false},
	{"In Progress", 2, false, false},
	{"Resolved", 3, false, false},
	{"Closed", 4, false, true},
}

// Create provisions a tenant: normalized slug, creator as sole admin, and a
// seeded status set. A user already administering an organization cannot
// create a second one.
func (s *OrganizationService) Create(ctx context.Context, creatorID string, input OrganizationCreateInput) (*domain.Organization, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("organization name is required", map[string]any{"name": "required"})
	}

	raw := input.Slug
	if strings.TrimSpace(raw) == "" {
		raw = name
	}
	slug := tenant.Normalize(raw)
	if slug == "" {
		return nil, apperrors.NewValidationError("organization slug must contain letters or digits", map[string]any{"slug": raw})
	}

	var subdomain *string
	if input.Subdomain != nil {
		normalized := tenant.Normalize(*input.Subdomain)
		if normalized == "" {
			return nil, apperrors.NewValidationError("subdomain must contain letters or digits", map[string]any{"subdomain": *input.Subdomain})
		}
		subdomain = &normalized
	}

	hasAdmin, err := s.memberships.HasAdminMembership(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if hasAdmin {
		return nil, apperrors.NewConflict("user already administers an organization", nil)
	}

	org := &domain.Organization{
		Name:      name,
		Slug:      slug,
		Subdomain: subdomain,
		Status:    domain.OrgStatusActive,
	}
	if err := s.orgs.Create(ctx, org); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("organization slug or subdomain already exists", map[string]any{"slug": slug})
		}
		return nil, err
	}

	membership := &domain.Membership{
		UserID:         creatorID,
		OrganizationID: org.ID,
		Role:           domain.OrgRoleAdmin,
	}
	if err := s.memberships.Create(ctx, membership); err != nil {
		return nil, err
	}

	for _, seed := range defaultStatuses {
		status := &domain.TicketStatus{
			OrganizationID: org.ID,
			Name:           seed.name,
			SortOrder:      seed.sortOrder,
			IsDefault:      seed.isDefault,
			IsClosing:      seed.isClosing,
		}
		if err := s.statuses.Create(ctx, status); err != nil {
			return nil, err
		}
	}
	return org, nil
}

// Get fetches one organization.
func (s *OrganizationService) Get(ctx context.Context, id string) (*domain.Organization, error) {
	return s.orgs.GetByID(ctx, id)
}

// Update applies partial changes to the tenant record.
func (s *OrganizationService) Update(ctx context.Context, organizationID string, input OrganizationUpdateInput) (*domain.Organization, error) {
	org, err := s.orgs.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("organization name cannot be empty", map[string]any{"name": "required"})
		}
		org.Name = name
	}
	if input.Slug != nil {
		slug := tenant.Normalize(*input.Slug)
		if slug == "" {
			return nil, apperrors.NewValidationError("organization slug must contain letters or digits", map[string]any{"slug": *input.Slug})
		}
		org.Slug = slug
	}
	if input.Subdomain != nil {
		normalized := tenant.Normalize(*input.Subdomain)
		if normalized == "" {
			return nil, apperrors.NewValidationError("subdomain must contain letters or digits", map[string]any{"subdomain": *input.Subdomain})
		}
		org.Subdomain = &normalized
	}

	if err := s.orgs.Update(ctx, org); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("organization slug or subdomain already exists", map[string]any{"slug": org.Slug})
		}
		return nil, err
	}
	return org, nil
}

// ListMine returns every organization the user belongs to.
func (s *OrganizationService) ListMine(ctx context.Context, userID string) ([]domain.Organization, error) {
	memberships, err := s.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []domain.Organization{}, nil
	}
	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.OrganizationID)
	}
	return s.orgs.ListByIDs(ctx, ids)
}

// ListMembers returns members with their users, insertion-ordered.
func (s *OrganizationService) ListMembers(ctx context.Context, organizationID string) ([]Member, error) {
	memberships, err := s.memberships.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	members := make([]Member, 0, len(memberships))
	for _, m := range memberships {
		user, err := s.users.GetByID(ctx, m.UserID)
		if err != nil {
			if err == pgx.ErrNoRows {
				continue
			}
			return nil, err
		}
		members = append(members, Member{
			User:     user,
			Role:     m.Role,
			JoinedAt: m.CreatedAt,
		})
	}
	return members, nil
}

// AddMember attaches an existing user, by email, to the organization.
func (s *OrganizationService) AddMember(ctx context.Context, organizationID, email string, role domain.OrgRole) (*domain.Membership, error) {
	if role != domain.OrgRoleMember && role != domain.OrgRoleAdmin {
		return nil, apperrors.NewValidationError("invalid membership role", map[string]any{"role": role})
	}
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return nil, err
	}

	membership := &domain.Membership{
		UserID:         user.ID,
		OrganizationID: organizationID,
		Role:           role,
	}
	if err := s.memberships.Create(ctx, membership); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("user is already a member of this organization", map[string]any{"email": email})
		}
		return nil, err
	}
	return membership, nil
}

// ChangeMemberRole updates one membership's role.
func (s *OrganizationService) ChangeMemberRole(ctx context.Context, organizationID, userID string, role domain.OrgRole) error {
	if role != domain.OrgRoleMember && role != domain.OrgRoleAdmin {
		return apperrors.NewValidationError("invalid membership role", map[string]any{"role": role})
	}
	if err := s.memberships.UpdateRole(ctx, userID, organizationID, role); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("membership", map[string]any{"user_id": userID})
		}
		return err
	}
	return nil
}

// RemoveMember detaches a user from the organization.
func (s *OrganizationService) RemoveMember(ctx context.Context, organizationID, userID string) error {
	if err := s.memberships.Delete(ctx, userID, organizationID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("membership", map[string]any{"user_id": userID})
		}
		return err
	}
	return nil
}

// ListAll returns every tenant; super-admin surface.
func (s *OrganizationService) ListAll(ctx context.Context) ([]domain.Organization, error) {
	return s.orgs.ListAll(ctx)
}

var validOrgStatuses = map[domain.OrganizationStatus]bool{
	domain.OrgStatusActive:    true,
	domain.OrgStatusInactive:  true,
	domain.OrgStatusSuspended: true,
	domain.OrgStatusExpired:   true,
}

// ChangeStatus flips the tenant lifecycle state; super-admin surface.
func (s *OrganizationService) ChangeStatus(ctx context.Context, organizationID string, status domain.OrganizationStatus) error {
	if !validOrgStatuses[status] {
		return apperrors.NewValidationError("invalid organization status", map[string]any{"status": status})
	}
	if err := s.orgs.UpdateStatus(ctx, organizationID, status); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("organization", map[string]any{"organization_id": organizationID})
		}
		return err
	}
	return nil
}

// Delete removes the tenant and everything scoped to it; super-admin surface.
func (s *OrganizationService) Delete(ctx context.Context, organizationID string) error {
	if err := s.orgs.Delete(ctx, organizationID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("organization", map[string]any{"organization_id": organizationID})
		}
		return err
	}
	return nil
}
