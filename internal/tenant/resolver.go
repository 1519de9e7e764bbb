package tenant

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

// HeaderOrganizationSlug names the tenant when no stronger signal does.
const HeaderOrganizationSlug = "X-Organization-Slug"

// ParamOrgSlug is the route placeholder carrying a tenant slug in the path.
const ParamOrgSlug = "orgSlug"

// Resolver determines which organization a request targets. Signals in
// priority order: Host subdomain, path param, query param `org`, the
// X-Organization-Slug header. First non-empty candidate wins; no merging.
type Resolver struct {
	orgs     repository.OrganizationRepository
	mainHost string
	logger   *zap.Logger
}

// NewResolver constructs the middleware.
func NewResolver(orgs repository.OrganizationRepository, mainHost string, logger *zap.Logger) *Resolver {
	return &Resolver{
		orgs:     orgs,
		mainHost: strings.ToLower(strings.TrimSpace(mainHost)),
		logger:   logger,
	}
}

// Handle resolves and attaches the tenant. A request naming no tenant passes
// through untouched; downstream fallbacks may adopt one from the caller's
// memberships.
func (r *Resolver) Handle(c *fiber.Ctx) error {
	candidate := r.candidate(c)
	if candidate == "" {
		return c.Next()
	}

	slug := Normalize(candidate)
	if slug == "" {
		// Candidate dissolved under normalization: treat as "no tenant
		// specified" rather than an error.
		return c.Next()
	}

	org, err := r.lookup(c.Context(), slug)
	if err != nil {
		return err
	}

	setOrganization(c, org)
	return c.Next()
}

func (r *Resolver) candidate(c *fiber.Ctx) string {
	if sub := r.subdomain(c.Hostname()); sub != "" {
		return sub
	}
	if v := c.Params(ParamOrgSlug); v != "" {
		return v
	}
	if v := c.Query("org"); v != "" {
		return v
	}
	return c.Get(HeaderOrganizationSlug)
}

// subdomain extracts the tenant label from the Host header. The main
// application host never names a tenant, nor do www/localhost labels or
// labels still carrying a port separator.
func (r *Resolver) subdomain(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" || host == r.mainHost {
		return ""
	}
	label, rest, found := strings.Cut(host, ".")
	if !found || rest == "" {
		return ""
	}
	if label == "www" || label == "localhost" || strings.Contains(label, ":") {
		return ""
	}
	return label
}

func (r *Resolver) lookup(ctx context.Context, slug string) (*domain.Organization, error) {
	org, err := r.orgs.GetBySlugOrSubdomain(ctx, slug)
	if err == nil {
		return org, nil
	}
	if err != pgx.ErrNoRows {
		return nil, apperrors.ToDomainError(err)
	}

	// Stored slugs may predate the normalization rule; re-normalize every
	// organization before giving up. O(n) over all tenants, acceptable while
	// tenant counts stay small.
	all, err := r.orgs.ListAll(ctx)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	for i := range all {
		candidate := &all[i]
		if Normalize(candidate.Slug) == slug {
			return candidate, nil
		}
		if candidate.Subdomain != nil && Normalize(*candidate.Subdomain) == slug {
			return candidate, nil
		}
	}

	r.logger.Debug("organization not resolved", zap.String("slug", slug))
	return nil, apperrors.NewNotFound("organization", map[string]any{"organization": slug})
}
