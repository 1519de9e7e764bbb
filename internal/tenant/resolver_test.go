package tenant_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository/repotest"
	"github.com/Beyond-Company/Ticketing-backend/internal/tenant"
	apperrors "github.com/Beyond-Company/Ticketing-backend/pkg/util"
)

const mainHost = "example.com"

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": de.Code, "message": de.Message},
			})
		},
	})
}

func whoami(c *fiber.Ctx) error {
	org, ok := tenant.OrganizationFromContext(c)
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(fiber.Map{"id": org.ID, "slug": org.Slug})
}

func resolvedSlug(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload.Slug
}

func newResolverApp(orgs *repotest.Organizations) *fiber.App {
	app := newTestApp()
	resolver := tenant.NewResolver(orgs, mainHost, zap.NewNop())
	app.Use(resolver.Handle)
	app.Get("/whoami", whoami)
	return app
}

func TestResolverSubdomain(t *testing.T) {
	orgs := repotest.NewOrganizations()
	sub := "acme"
	orgs.Seed(domain.Organization{Name: "Acme", Slug: "acme-corp", Subdomain: &sub, Status: domain.OrgStatusActive})

	app := newResolverApp(orgs)
	req := httptest.NewRequest(http.MethodGet, "http://acme.example.com/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "acme-corp", resolvedSlug(t, resp))
}

func TestResolverMainHostNeverUsesSubdomain(t *testing.T) {
	orgs := repotest.NewOrganizations()
	// A tenant whose slug matches the main host's first label: it must not
	// be picked up when the request arrives on the main host itself.
	orgs.Seed(domain.Organization{Name: "Example", Slug: "example", Status: domain.OrgStatusActive})

	app := newResolverApp(orgs)
	req := httptest.NewRequest(http.MethodGet, "http://example.com/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestResolverSkipsWWWAndLocalhost(t *testing.T) {
	orgs := repotest.NewOrganizations()
	orgs.Seed(domain.Organization{Name: "W", Slug: "www", Status: domain.OrgStatusActive})
	orgs.Seed(domain.Organization{Name: "L", Slug: "localhost", Status: domain.OrgStatusActive})

	app := newResolverApp(orgs)
	for _, host := range []string{"www.example.com", "localhost.example.com"} {
		req := httptest.NewRequest(http.MethodGet, "http://"+host+"/whoami", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusNoContent, resp.StatusCode, "host %s must not resolve a tenant", host)
	}
}

func TestResolverPathParam(t *testing.T) {
	orgs := repotest.NewOrganizations()
	orgs.Seed(domain.Organization{Name: "Acme", Slug: "acme-corp", Status: domain.OrgStatusActive})

	app := newTestApp()
	resolver := tenant.NewResolver(orgs, mainHost, zap.NewNop())
	app.Get("/p/:orgSlug/whoami", resolver.Handle, whoami)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/p/ACME-Corp/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "acme-corp", resolvedSlug(t, resp))
}

func TestResolverQueryBeatsHeader(t *testing.T) {
	orgs := repotest.NewOrganizations()
	orgs.Seed(domain.Organization{Name: "Acme", Slug: "acme-corp", Status: domain.OrgStatusActive})
	orgs.Seed(domain.Organization{Name: "Globex", Slug: "globex", Status: domain.OrgStatusActive})

	app := newResolverApp(orgs)
	req := httptest.NewRequest(http.MethodGet, "http://example.com/whoami?org=acme-corp", nil)
	req.Header.Set(tenant.HeaderOrganizationSlug, "globex")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "acme-corp", resolvedSlug(t, resp))
}

func TestResolverHeaderAlone(t *testing.T) {
	orgs := repotest.NewOrganizations()
	orgs.Seed(domain.Organization{Name: "Globex", Slug: "globex", Status: domain.OrgStatusActive})

	app := newResolverApp(orgs)
	req := httptest.NewRequest(http.MethodGet, "http://example.com/whoami", nil)
	req.Header.Set(tenant.HeaderOrganizationSlug, "Globex")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "globex", resolvedSlug(t, resp))
}

func TestResolverQueryAndHeaderEquivalence(t *testing.T) {
	orgs := repotest.NewOrganizations()
	orgs.Seed(domain.Organization{Name: "Acme", Slug: "acme-corp", Status: domain.OrgStatusActive})

	app := newResolverApp(orgs)

	byQuery := httptest.NewRequest(http.MethodGet, "http://example.com/whoami?org=ACME-Corp", nil)
	respQuery, err := app.Test(byQuery)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, respQuery.StatusCode)

	byHeader := httptest.NewRequest(http.MethodGet, "http://example.com/whoami", nil)
	byHeader.Header.Set(tenant.HeaderOrganizationSlug, "acme-corp")
	respHeader, err := app.Test(byHeader)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, respHeader.StatusCode)

	require.Equal(t, resolvedSlug(t, respQuery), resolvedSlug(t, respHeader))
}

func TestResolverLegacySlugFallbackScan(t *testing.T) {
	orgs := repotest.NewOrganizations()
	// Stored before the normalization rule existed.
	orgs.Seed(domain.Organization{Name: "Acme", Slug: "ACME Corp", Status: domain.OrgStatusActive})

	app := newResolverApp(orgs)
	req := httptest.NewRequest(http.MethodGet, "http://example.com/whoami?org=acme-corp", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ACME Corp", resolvedSlug(t, resp))
}

func TestResolverUnknownSlugNotFound(t *testing.T) {
	orgs := repotest.NewOrganizations()
	app := newResolverApp(orgs)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/whoami?org=nope", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestResolverNoSignalIsNoOp(t *testing.T) {
	orgs := repotest.NewOrganizations()
	orgs.Seed(domain.Organization{Name: "Acme", Slug: "acme-corp", Status: domain.OrgStatusActive})

	app := newResolverApp(orgs)
	req := httptest.NewRequest(http.MethodGet, "http://example.com/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestResolverCandidateDissolvingToEmptyIsNoOp(t *testing.T) {
	orgs := repotest.NewOrganizations()
	app := newResolverApp(orgs)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/whoami?org=%21%21%21", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}
