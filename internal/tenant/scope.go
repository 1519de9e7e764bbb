package tenant

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
)

// Request-scope keys. The setters are package-private: only the resolution
// and guard stages in this package may populate them, so a handler can never
// smuggle in a tenant the chain did not establish.
const (
	organizationKey = "tenant_organization"
	membershipKey   = "tenant_membership"
)

func setOrganization(c *fiber.Ctx, org *domain.Organization) {
	c.Locals(organizationKey, org)
}

func setMembership(c *fiber.Ctx, m *domain.Membership) {
	c.Locals(membershipKey, m)
}

// OrganizationFromContext retrieves the resolved tenant.
func OrganizationFromContext(c *fiber.Ctx) (*domain.Organization, bool) {
	val := c.Locals(organizationKey)
	if val == nil {
		return nil, false
	}
	org, ok := val.(*domain.Organization)
	return org, ok
}

// MembershipFromContext retrieves the caller's membership in the resolved
// tenant, when a guard looked one up. Platform admins passing RequireOrgAdmin
// without a membership leave this unset.
func MembershipFromContext(c *fiber.Ctx) (*domain.Membership, bool) {
	val := c.Locals(membershipKey)
	if val == nil {
		return nil, false
	}
	m, ok := val.(*domain.Membership)
	return m, ok
}
