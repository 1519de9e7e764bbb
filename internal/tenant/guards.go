package tenant

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Beyond-Company/Ticketing-backend/internal/auth"
	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// Guards holds the access checks that run after identity and tenant
// resolution. Each guard fails fast when a prerequisite stage has not
// populated the request scope, so a misordered chain surfaces immediately
// instead of silently passing.
type Guards struct {
	memberships repository.MembershipRepository
	orgs        repository.OrganizationRepository
}

// NewGuards constructs the guard family.
func NewGuards(memberships repository.MembershipRepository, orgs repository.OrganizationRepository) *Guards {
	return &Guards{memberships: memberships, orgs: orgs}
}

// VerifyOrganizationAccess admits only callers holding a membership row in
// the resolved organization. Role is never inspected here: a platform admin
// with no membership is denied like anyone else.
func (g *Guards) VerifyOrganizationAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		org, ok := OrganizationFromContext(c)
		if !ok {
			return apperrors.NewValidationError("no organization specified", nil)
		}

		membership, err := g.memberships.Get(c.Context(), principal.User.ID, org.ID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewForbidden("not a member of this organization")
			}
			return apperrors.ToDomainError(err)
		}

		setMembership(c, membership)
		return c.Next()
	}
}

// RequireOrgAdmin admits organization admins. A platform ADMIN passes on
// every tenant without holding a membership.
func (g *Guards) RequireOrgAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		org, ok := OrganizationFromContext(c)
		if !ok {
			return apperrors.NewValidationError("no organization specified", nil)
		}

		if principal.User.Role == domain.GlobalRoleAdmin {
			return c.Next()
		}

		membership, err := g.memberships.Get(c.Context(), principal.User.ID, org.ID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewForbidden("organization admin required")
			}
			return apperrors.ToDomainError(err)
		}
		if membership.Role != domain.OrgRoleAdmin {
			return apperrors.NewForbidden("organization admin required")
		}

		setMembership(c, membership)
		return c.Next()
	}
}

// RequireSuperAdmin admits only the platform super admin. Tenant-independent.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.IsSuperAdmin() {
			return apperrors.NewForbidden("super admin required")
		}
		return c.Next()
	}
}

// OrganizationFromUser adopts the caller's earliest-created membership as the
// request tenant when the request itself named none. Callers without any
// membership are rejected.
func (g *Guards) OrganizationFromUser() fiber.Handler {
	return g.organizationFromUser(false)
}

// OrganizationFromUserOptional is the silent variant for surfaces reachable
// anonymously, where a logged-in caller merely gets a convenience default.
func (g *Guards) OrganizationFromUserOptional() fiber.Handler {
	return g.organizationFromUser(true)
}

func (g *Guards) organizationFromUser(optional bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := OrganizationFromContext(c); ok {
			// Already resolved upstream; never re-derived.
			return c.Next()
		}

		principal, ok := auth.PrincipalFromContext(c)
		if !ok {
			if optional {
				return c.Next()
			}
			return apperrors.NewUnauthorized("authentication required")
		}

		membership, err := g.memberships.FirstForUser(c.Context(), principal.User.ID)
		if err != nil {
			if err == pgx.ErrNoRows {
				if optional {
					return c.Next()
				}
				return apperrors.NewForbidden("not a member of any organization")
			}
			return apperrors.ToDomainError(err)
		}

		org, err := g.orgs.GetByID(c.Context(), membership.OrganizationID)
		if err != nil {
			return apperrors.ToDomainError(err)
		}

		setOrganization(c, org)
		setMembership(c, membership)
		return c.Next()
	}
}
