package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Beyond-Company/Ticketing-backend/internal/api/http/handlers"
	"github.com/Beyond-Company/Ticketing-backend/internal/auth"
	"github.com/Beyond-Company/Ticketing-backend/internal/tenant"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Organizations  *handlers.OrganizationsHandler
	Categories     *handlers.CategoriesHandler
	Statuses       *handlers.StatusesHandler
	Tickets        *handlers.TicketsHandler
	Attachments    *handlers.AttachmentsHandler
	Public         *handlers.PublicHandler
	Notifications  *handlers.NotificationsHandler
	Reports        *handlers.ReportsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
	Resolver       *tenant.Resolver
	Guards         *tenant.Guards
}

// RegisterRoutes wires HTTP routes. Organization-scoped groups share the same
// chain: authenticate, resolve the tenant from the request, fall back to the
// caller's membership, then verify access.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/otp/request", cfg.Auth.RequestOTP)
	authGroup.Post("/otp/verify", cfg.Auth.VerifyOTP)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	orgGroup := app.Group("/organizations", cfg.AuthMiddleware.Handle)
	orgGroup.Post("/", cfg.Organizations.Create)
	orgGroup.Get("/", cfg.Organizations.ListMine)

	current := orgGroup.Group("/current", cfg.Resolver.Handle, cfg.Guards.OrganizationFromUser(), cfg.Guards.VerifyOrganizationAccess())
	current.Get("/", cfg.Organizations.Current)
	current.Patch("/", cfg.Guards.RequireOrgAdmin(), cfg.Organizations.Update)
	current.Get("/members", cfg.Organizations.ListMembers)
	current.Post("/members", cfg.Guards.RequireOrgAdmin(), cfg.Organizations.AddMember)
	current.Patch("/members/:userId", cfg.Guards.RequireOrgAdmin(), cfg.Organizations.ChangeMemberRole)
	current.Delete("/members/:userId", cfg.Guards.RequireOrgAdmin(), cfg.Organizations.RemoveMember)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle, cfg.Resolver.Handle, cfg.Guards.OrganizationFromUser(), cfg.Guards.VerifyOrganizationAccess())
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id", cfg.Tickets.Update)
	tickets.Delete("/:id", cfg.Guards.RequireOrgAdmin(), cfg.Tickets.Delete)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Get("/:id/comments", cfg.Tickets.ListComments)
	tickets.Get("/:id/activity", cfg.Tickets.ListActivity)
	tickets.Post("/:id/time-entries", cfg.Tickets.AddTimeEntry)
	tickets.Get("/:id/time-entries", cfg.Tickets.ListTimeEntries)
	tickets.Post("/:id/attachments", cfg.Attachments.Upload)
	tickets.Get("/:id/attachments", cfg.Attachments.List)

	attachments := app.Group("/attachments", cfg.AuthMiddleware.Handle, cfg.Resolver.Handle, cfg.Guards.OrganizationFromUser(), cfg.Guards.VerifyOrganizationAccess())
	attachments.Get("/:id", cfg.Attachments.Download)
	attachments.Delete("/:id", cfg.Attachments.Delete)

	categories := app.Group("/categories", cfg.AuthMiddleware.Handle, cfg.Resolver.Handle, cfg.Guards.OrganizationFromUser(), cfg.Guards.VerifyOrganizationAccess())
	categories.Get("/", cfg.Categories.List)
	categories.Post("/", cfg.Guards.RequireOrgAdmin(), cfg.Categories.Create)
	categories.Get("/:id", cfg.Categories.Get)
	categories.Patch("/:id", cfg.Guards.RequireOrgAdmin(), cfg.Categories.Update)
	categories.Delete("/:id", cfg.Guards.RequireOrgAdmin(), cfg.Categories.Delete)
	categories.Get("/:id/assignments", cfg.Categories.ListQueue)
	categories.Post("/:id/assignments", cfg.Guards.RequireOrgAdmin(), cfg.Categories.Assign)
	categories.Delete("/:id/assignments/:userId", cfg.Guards.RequireOrgAdmin(), cfg.Categories.Unassign)

	statuses := app.Group("/statuses", cfg.AuthMiddleware.Handle, cfg.Resolver.Handle, cfg.Guards.OrganizationFromUser(), cfg.Guards.VerifyOrganizationAccess())
	statuses.Get("/", cfg.Statuses.List)
	statuses.Post("/", cfg.Guards.RequireOrgAdmin(), cfg.Statuses.Create)
	statuses.Get("/:id", cfg.Statuses.Get)
	statuses.Patch("/:id", cfg.Guards.RequireOrgAdmin(), cfg.Statuses.Update)
	statuses.Delete("/:id", cfg.Guards.RequireOrgAdmin(), cfg.Statuses.Delete)

	reports := app.Group("/reports", cfg.AuthMiddleware.Handle, cfg.Resolver.Handle, cfg.Guards.OrganizationFromUser(), cfg.Guards.VerifyOrganizationAccess())
	reports.Get("/summary", cfg.Guards.RequireOrgAdmin(), cfg.Reports.Summary)

	notifications := app.Group("/notifications", cfg.AuthMiddleware.Handle)
	notifications.Get("/", cfg.Notifications.List)
	notifications.Get("/unread-count", cfg.Notifications.UnreadCount)
	notifications.Post("/read-all", cfg.Notifications.MarkAllRead)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)

	// Route params are only visible to route-level handlers, so the resolver
	// is attached per route instead of on the group.
	public := app.Group("/public/:" + tenant.ParamOrgSlug)
	public.Post("/tickets", cfg.Resolver.Handle, cfg.Public.Submit)
	public.Get("/tickets/track", cfg.Resolver.Handle, cfg.Public.Track)
	public.Post("/tickets/comments", cfg.Resolver.Handle, cfg.Public.Comment)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, tenant.RequireSuperAdmin())
	admin.Get("/organizations", cfg.Admin.ListOrganizations)
	admin.Patch("/organizations/:id/status", cfg.Admin.ChangeOrganizationStatus)
	admin.Delete("/organizations/:id", cfg.Admin.DeleteOrganization)
	admin.Get("/stats", cfg.Admin.PlatformStats)
}
