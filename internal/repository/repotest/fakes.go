// Package repotest provides in-memory repository implementations for unit
// tests. Ordering semantics match the Postgres implementations: creation
// order stands in for created_at ordering, and duplicate keys surface as
// unique-violation errors the way pgx reports them.
package repotest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// Users is an in-memory repository.UserRepository.
type Users struct {
	mu    sync.Mutex
	items []*domain.User
}

// NewUsers constructs an empty store.
func NewUsers() *Users { return &Users{} }

var _ repository.UserRepository = (*Users)(nil)

func (f *Users) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if strings.EqualFold(existing.Email, user.Email) {
			return uniqueViolation("users_email_key")
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	f.items = append(f.items, &cp)
	return nil
}

func (f *Users) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.ID == id {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *Users) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if strings.EqualFold(existing.Email, email) {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// Organizations is an in-memory repository.OrganizationRepository.
type Organizations struct {
	mu    sync.Mutex
	items []*domain.Organization
}

// NewOrganizations constructs an empty store.
func NewOrganizations() *Organizations { return &Organizations{} }

var _ repository.OrganizationRepository = (*Organizations)(nil)

// Seed inserts an organization verbatim, keeping whatever slug/subdomain the
// test supplies (including un-normalized legacy values).
func (f *Organizations) Seed(org domain.Organization) *domain.Organization {
	f.mu.Lock()
	defer f.mu.Unlock()
	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	if org.CreatedAt.IsZero() {
		org.CreatedAt = time.Now()
		org.UpdatedAt = org.CreatedAt
	}
	cp := org
	f.items = append(f.items, &cp)
	out := cp
	return &out
}

func (f *Organizations) Create(_ context.Context, org *domain.Organization) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.Slug == org.Slug {
			return uniqueViolation("organizations_slug_key")
		}
		if existing.Subdomain != nil && org.Subdomain != nil && *existing.Subdomain == *org.Subdomain {
			return uniqueViolation("organizations_subdomain_key")
		}
	}
	org.ID = uuid.NewString()
	org.CreatedAt = time.Now()
	org.UpdatedAt = org.CreatedAt
	cp := *org
	f.items = append(f.items, &cp)
	return nil
}

func (f *Organizations) Update(_ context.Context, org *domain.Organization) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == org.ID {
			org.UpdatedAt = time.Now()
			cp := *org
			f.items[i] = &cp
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *Organizations) UpdateStatus(_ context.Context, id string, status domain.OrganizationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.ID == id {
			existing.Status = status
			existing.UpdatedAt = time.Now()
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *Organizations) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *Organizations) GetByID(_ context.Context, id string) (*domain.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.ID == id {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *Organizations) GetBySlugOrSubdomain(_ context.Context, slug string) (*domain.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.Slug == slug {
			cp := *existing
			return &cp, nil
		}
		if existing.Subdomain != nil && *existing.Subdomain == slug {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *Organizations) ListAll(_ context.Context) ([]domain.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Organization, 0, len(f.items))
	for _, existing := range f.items {
		out = append(out, *existing)
	}
	return out, nil
}

func (f *Organizations) ListByIDs(_ context.Context, ids []string) ([]domain.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []domain.Organization
	for _, existing := range f.items {
		if _, ok := want[existing.ID]; ok {
			out = append(out, *existing)
		}
	}
	return out, nil
}

// Memberships is an in-memory repository.MembershipRepository.
type Memberships struct {
	mu    sync.Mutex
	items []*domain.Membership
}

// NewMemberships constructs an empty store.
func NewMemberships() *Memberships { return &Memberships{} }

var _ repository.MembershipRepository = (*Memberships)(nil)

func (f *Memberships) Create(_ context.Context, m *domain.Membership) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.UserID == m.UserID && existing.OrganizationID == m.OrganizationID {
			return uniqueViolation("memberships_user_org_key")
		}
	}
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now()
	cp := *m
	f.items = append(f.items, &cp)
	return nil
}

func (f *Memberships) Get(_ context.Context, userID, organizationID string) (*domain.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.UserID == userID && existing.OrganizationID == organizationID {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *Memberships) FirstForUser(_ context.Context, userID string) (*domain.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.UserID == userID {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *Memberships) ListByUser(_ context.Context, userID string) ([]domain.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Membership
	for _, existing := range f.items {
		if existing.UserID == userID {
			out = append(out, *existing)
		}
	}
	return out, nil
}

func (f *Memberships) ListByOrganization(_ context.Context, organizationID string) ([]domain.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Membership
	for _, existing := range f.items {
		if existing.OrganizationID == organizationID {
			out = append(out, *existing)
		}
	}
	return out, nil
}

func (f *Memberships) HasAdminMembership(_ context.Context, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.UserID == userID && existing.Role == domain.OrgRoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (f *Memberships) UpdateRole(_ context.Context, userID, organizationID string, role domain.OrgRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.UserID == userID && existing.OrganizationID == organizationID {
			existing.Role = role
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *Memberships) Delete(_ context.Context, userID, organizationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.UserID == userID && existing.OrganizationID == organizationID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

// Categories is an in-memory repository.CategoryRepository.
type Categories struct {
	mu    sync.Mutex
	items []*domain.Category
}

// NewCategories constructs an empty store.
func NewCategories() *Categories { return &Categories{} }

var _ repository.CategoryRepository = (*Categories)(nil)

func (f *Categories) Create(_ context.Context, category *domain.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.OrganizationID == category.OrganizationID && strings.EqualFold(existing.Name, category.Name) {
			return uniqueViolation("categories_org_name_key")
		}
	}
	category.ID = uuid.NewString()
	category.CreatedAt = time.Now()
	cp := *category
	f.items = append(f.items, &cp)
	return nil
}

func (f *Categories) Update(_ context.Context, category *domain.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.ID != category.ID && existing.OrganizationID == category.OrganizationID && strings.EqualFold(existing.Name, category.Name) {
			return uniqueViolation("categories_org_name_key")
		}
	}
	for i, existing := range f.items {
		if existing.ID == category.ID && existing.OrganizationID == category.OrganizationID {
			cp := *category
			f.items[i] = &cp
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *Categories) Delete(_ context.Context, organizationID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == id && existing.OrganizationID == organizationID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *Categories) GetByID(_ context.Context, organizationID, id string) (*domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.ID == id && existing.OrganizationID == organizationID {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *Categories) ListByOrganization(_ context.Context, organizationID string) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Category
	for _, existing := range f.items {
		if existing.OrganizationID == organizationID {
			out = append(out, *existing)
		}
	}
	return out, nil
}

// CategoryAssignments is an in-memory repository.CategoryAssignmentRepository.
type CategoryAssignments struct {
	mu    sync.Mutex
	items []*domain.CategoryAssignment
}

// NewCategoryAssignments constructs an empty store.
func NewCategoryAssignments() *CategoryAssignments { return &CategoryAssignments{} }

var _ repository.CategoryAssignmentRepository = (*CategoryAssignments)(nil)

func (f *CategoryAssignments) Create(_ context.Context, assignment *domain.CategoryAssignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.UserID == assignment.UserID && existing.CategoryID == assignment.CategoryID {
			return uniqueViolation("category_assignments_user_category_key")
		}
	}
	assignment.ID = uuid.NewString()
	assignment.CreatedAt = time.Now()
	cp := *assignment
	f.items = append(f.items, &cp)
	return nil
}

func (f *CategoryAssignments) Delete(_ context.Context, organizationID, categoryID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.OrganizationID == organizationID && existing.CategoryID == categoryID && existing.UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *CategoryAssignments) ListByCategory(_ context.Context, organizationID, categoryID string) ([]domain.CategoryAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.CategoryAssignment
	for _, existing := range f.items {
		if existing.OrganizationID == organizationID && existing.CategoryID == categoryID {
			out = append(out, *existing)
		}
	}
	return out, nil
}

func (f *CategoryAssignments) ListByUser(_ context.Context, organizationID, userID string) ([]domain.CategoryAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.CategoryAssignment
	for _, existing := range f.items {
		if existing.OrganizationID == organizationID && existing.UserID == userID {
			out = append(out, *existing)
		}
	}
	return out, nil
}

// TicketStatuses is an in-memory repository.TicketStatusRepository.
type TicketStatuses struct {
	mu    sync.Mutex
	items []*domain.TicketStatus
}

// NewTicketStatuses constructs an empty store.
func NewTicketStatuses() *TicketStatuses { return &TicketStatuses{} }

var _ repository.TicketStatusRepository = (*TicketStatuses)(nil)

func (f *TicketStatuses) Create(_ context.Context, status *domain.TicketStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.OrganizationID == status.OrganizationID && strings.EqualFold(existing.Name, status.Name) {
			return uniqueViolation("ticket_statuses_org_name_key")
		}
	}
	status.ID = uuid.NewString()
	status.CreatedAt = time.Now()
	cp := *status
	f.items = append(f.items, &cp)
	return nil
}

func (f *TicketStatuses) Update(_ context.Context, status *domain.TicketStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.ID != status.ID && existing.OrganizationID == status.OrganizationID && strings.EqualFold(existing.Name, status.Name) {
			return uniqueViolation("ticket_statuses_org_name_key")
		}
	}
	for i, existing := range f.items {
		if existing.ID == status.ID && existing.OrganizationID == status.OrganizationID {
			cp := *status
			f.items[i] = &cp
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *TicketStatuses) Delete(_ context.Context, organizationID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == id && existing.OrganizationID == organizationID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *TicketStatuses) GetByID(_ context.Context, organizationID, id string) (*domain.TicketStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.ID == id && existing.OrganizationID == organizationID {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *TicketStatuses) GetDefault(_ context.Context, organizationID string) (*domain.TicketStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.OrganizationID == organizationID && existing.IsDefault {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *TicketStatuses) ListByOrganization(_ context.Context, organizationID string) ([]domain.TicketStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.TicketStatus
	for _, existing := range f.items {
		if existing.OrganizationID == organizationID {
			out = append(out, *existing)
		}
	}
	return out, nil
}

// Tickets is an in-memory repository.TicketRepository.
type Tickets struct {
	mu    sync.Mutex
	items []*domain.Ticket
}

// NewTickets constructs an empty store.
func NewTickets() *Tickets { return &Tickets{} }

var _ repository.TicketRepository = (*Tickets)(nil)

func (f *Tickets) Create(_ context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ticket.PublicToken != nil {
		for _, existing := range f.items {
			if existing.PublicToken != nil && *existing.PublicToken == *ticket.PublicToken {
				return uniqueViolation("tickets_public_token_key")
			}
		}
	}
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	cp := *ticket
	f.items = append(f.items, &cp)
	return nil
}

func (f *Tickets) Update(_ context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == ticket.ID && existing.OrganizationID == ticket.OrganizationID {
			ticket.UpdatedAt = time.Now()
			cp := *ticket
			f.items[i] = &cp
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *Tickets) Delete(_ context.Context, organizationID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == id && existing.OrganizationID == organizationID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *Tickets) GetByID(_ context.Context, organizationID, id string) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.ID == id && existing.OrganizationID == organizationID {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *Tickets) GetByPublicToken(_ context.Context, organizationID, token string) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.OrganizationID == organizationID && existing.PublicToken != nil && *existing.PublicToken == token {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *Tickets) TokenExists(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.PublicToken != nil && *existing.PublicToken == token {
			return true, nil
		}
	}
	return false, nil
}

func (f *Tickets) ListWithFilter(_ context.Context, organizationID string, filter repository.TicketFilter) ([]domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Ticket
	for _, existing := range f.items {
		if existing.OrganizationID != organizationID {
			continue
		}
		if filter.StatusID != nil && existing.StatusID != *filter.StatusID {
			continue
		}
		if filter.CategoryID != nil && (existing.CategoryID == nil || *existing.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.Priority != nil && existing.Priority != *filter.Priority {
			continue
		}
		if filter.AssignedTo != nil && (existing.AssignedTo == nil || *existing.AssignedTo != *filter.AssignedTo) {
			continue
		}
		if filter.SubmitterID != nil && (existing.UserID == nil || *existing.UserID != *filter.SubmitterID) {
			continue
		}
		if filter.SearchTerm != nil {
			needle := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
			if needle != "" &&
				!strings.Contains(strings.ToLower(existing.Title), needle) &&
				!strings.Contains(strings.ToLower(existing.Description), needle) {
				continue
			}
		}
		out = append(out, *existing)
	}
	return out, nil
}

func (f *Tickets) CountByStatus(_ context.Context, organizationID, statusID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, existing := range f.items {
		if existing.OrganizationID == organizationID && existing.StatusID == statusID {
			count++
		}
	}
	return count, nil
}

// Comments is an in-memory repository.CommentRepository.
type Comments struct {
	mu    sync.Mutex
	items []*domain.Comment
}

// NewComments constructs an empty store.
func NewComments() *Comments { return &Comments{} }

var _ repository.CommentRepository = (*Comments)(nil)

func (f *Comments) Create(_ context.Context, comment *domain.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now()
	cp := *comment
	f.items = append(f.items, &cp)
	return nil
}

func (f *Comments) ListByTicket(_ context.Context, organizationID, ticketID string, includeInternal bool) ([]domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Comment
	for _, existing := range f.items {
		if existing.OrganizationID != organizationID || existing.TicketID != ticketID {
			continue
		}
		if existing.Internal && !includeInternal {
			continue
		}
		out = append(out, *existing)
	}
	return out, nil
}

// Attachments is an in-memory repository.AttachmentRepository.
type Attachments struct {
	mu    sync.Mutex
	items []*domain.Attachment
}

// NewAttachments constructs an empty store.
func NewAttachments() *Attachments { return &Attachments{} }

var _ repository.AttachmentRepository = (*Attachments)(nil)

func (f *Attachments) Create(_ context.Context, attachment *domain.Attachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	attachment.ID = uuid.NewString()
	attachment.CreatedAt = time.Now()
	cp := *attachment
	f.items = append(f.items, &cp)
	return nil
}

func (f *Attachments) Delete(_ context.Context, organizationID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.items {
		if existing.ID == id && existing.OrganizationID == organizationID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *Attachments) GetByID(_ context.Context, organizationID, id string) (*domain.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.ID == id && existing.OrganizationID == organizationID {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *Attachments) ListByTicket(_ context.Context, organizationID, ticketID string) ([]domain.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Attachment
	for _, existing := range f.items {
		if existing.OrganizationID == organizationID && existing.TicketID == ticketID {
			out = append(out, *existing)
		}
	}
	return out, nil
}

// TimeEntries is an in-memory repository.TimeEntryRepository.
type TimeEntries struct {
	mu    sync.Mutex
	items []*domain.TimeEntry
}

// NewTimeEntries constructs an empty store.
func NewTimeEntries() *TimeEntries { return &TimeEntries{} }

var _ repository.TimeEntryRepository = (*TimeEntries)(nil)

func (f *TimeEntries) Create(_ context.Context, entry *domain.TimeEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	cp := *entry
	f.items = append(f.items, &cp)
	return nil
}

func (f *TimeEntries) ListByTicket(_ context.Context, organizationID, ticketID string) ([]domain.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.TimeEntry
	for _, existing := range f.items {
		if existing.OrganizationID == organizationID && existing.TicketID == ticketID {
			out = append(out, *existing)
		}
	}
	return out, nil
}

func (f *TimeEntries) TotalMinutesByTicket(_ context.Context, organizationID, ticketID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, existing := range f.items {
		if existing.OrganizationID == organizationID && existing.TicketID == ticketID {
			total += int64(existing.Minutes)
		}
	}
	return total, nil
}

// ActivityLogs is an in-memory repository.ActivityRepository.
type ActivityLogs struct {
	mu    sync.Mutex
	items []*domain.ActivityLog
}

// NewActivityLogs constructs an empty store.
func NewActivityLogs() *ActivityLogs { return &ActivityLogs{} }

var _ repository.ActivityRepository = (*ActivityLogs)(nil)

func (f *ActivityLogs) Create(_ context.Context, entry *domain.ActivityLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	cp := *entry
	f.items = append(f.items, &cp)
	return nil
}

func (f *ActivityLogs) ListByTicket(_ context.Context, organizationID, ticketID string) ([]domain.ActivityLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ActivityLog
	for _, existing := range f.items {
		if existing.OrganizationID == organizationID && existing.TicketID == ticketID {
			out = append(out, *existing)
		}
	}
	return out, nil
}

// Notifications is an in-memory repository.NotificationRepository.
type Notifications struct {
	mu    sync.Mutex
	items []*domain.Notification
}

// NewNotifications constructs an empty store.
func NewNotifications() *Notifications { return &Notifications{} }

var _ repository.NotificationRepository = (*Notifications)(nil)

func (f *Notifications) Create(_ context.Context, notification *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	notification.ID = uuid.NewString()
	notification.CreatedAt = time.Now()
	cp := *notification
	f.items = append(f.items, &cp)
	return nil
}

func (f *Notifications) ListByUser(_ context.Context, userID string, limit, offset int) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []domain.Notification
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].UserID == userID {
			matched = append(matched, *f.items[i])
		}
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *Notifications) CountUnread(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, existing := range f.items {
		if existing.UserID == userID && existing.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func (f *Notifications) MarkRead(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.ID == id && existing.UserID == userID {
			if existing.ReadAt == nil {
				now := time.Now()
				existing.ReadAt = &now
			}
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *Notifications) MarkAllRead(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, existing := range f.items {
		if existing.UserID == userID && existing.ReadAt == nil {
			existing.ReadAt = &now
		}
	}
	return nil
}
