package dto

import (
	"time"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
)

// CreateOrganizationRequest payload.
type CreateOrganizationRequest struct {
	Name      string  `json:"name"`
	Slug      string  `json:"slug,omitempty"`
	Subdomain *string `json:"subdomain,omitempty"`
}

// UpdateOrganizationRequest payload; absent fields stay unchanged.
type UpdateOrganizationRequest struct {
	Name      *string `json:"name,omitempty"`
	Slug      *string `json:"slug,omitempty"`
	Subdomain *string `json:"subdomain,omitempty"`
}

// OrganizationResponse tenant fields.
type OrganizationResponse struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	Slug      string                    `json:"slug"`
	Subdomain *string                   `json:"subdomain,omitempty"`
	Status    domain.OrganizationStatus `json:"status"`
	CreatedAt time.Time                 `json:"created_at"`
}

// AddMemberRequest attaches an existing user by email.
type AddMemberRequest struct {
	Email string         `json:"email"`
	Role  domain.OrgRole `json:"role"`
}

// ChangeMemberRoleRequest payload.
type ChangeMemberRoleRequest struct {
	Role domain.OrgRole `json:"role"`
}

// MemberResponse one member row.
type MemberResponse struct {
	UserID   string         `json:"user_id"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Role     domain.OrgRole `json:"role"`
	JoinedAt time.Time      `json:"joined_at"`
}

// ChangeOrgStatusRequest super-admin payload.
type ChangeOrgStatusRequest struct {
	Status domain.OrganizationStatus `json:"status"`
}
