package domain

import "time"

// OrgRole enumerates roles a user may hold inside one organization.
type OrgRole string

const (
	OrgRoleMember OrgRole = "MEMBER"
	OrgRoleAdmin  OrgRole = "ADMIN"
)

// Membership grants a user a role within one organization.
// Unique per (UserID, OrganizationID).
type Membership struct {
	ID             string
	UserID         string
	OrganizationID string
	Role           OrgRole
	CreatedAt      time.Time
}

// EffectiveOrgRole resolves the tenant-scoped role for an actor: platform
// ADMIN acts as an implicit org-admin on every tenant, otherwise the
// membership role applies. SUPERADMIN operates through its own surface and
// gets no implicit membership role.
func EffectiveOrgRole(membership *Membership, global GlobalRole) OrgRole {
	if global == GlobalRoleAdmin {
		return OrgRoleAdmin
	}
	if membership != nil {
		return membership.Role
	}
	return OrgRoleMember
}
