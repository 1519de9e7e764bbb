package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Beyond-Company/Ticketing-backend/internal/api/dto"
	httptransport "github.com/Beyond-Company/Ticketing-backend/internal/api/http"
	"github.com/Beyond-Company/Ticketing-backend/internal/api/http/handlers"
	"github.com/Beyond-Company/Ticketing-backend/internal/auth"
	"github.com/Beyond-Company/Ticketing-backend/internal/config"
	"github.com/Beyond-Company/Ticketing-backend/internal/domain"
	"github.com/Beyond-Company/Ticketing-backend/internal/events"
	"github.com/Beyond-Company/Ticketing-backend/internal/mailer"
	"github.com/Beyond-Company/Ticketing-backend/internal/observability"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository/repotest"
	"github.com/Beyond-Company/Ticketing-backend/internal/service"
	"github.com/Beyond-Company/Ticketing-backend/internal/storage"
	"github.com/Beyond-Company/Ticketing-backend/internal/tenant"
)

var publicTokenPattern = regexp.MustCompile(`^[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{8}$`)

// mailStub records outbound mail instead of talking to SMTP.
type mailStub struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *mailStub) Enqueue(msg mailer.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
}

func (m *mailStub) SendNow(msg mailer.Message) error {
	m.Enqueue(msg)
	return nil
}

func (m *mailStub) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// reportStub satisfies the aggregate queries without a database; the SQL
// itself is not under test here.
type reportStub struct {
	stats repository.PlatformStats
}

var _ repository.ReportRepository = (*reportStub)(nil)

func (r *reportStub) CountsByStatus(context.Context, string) ([]repository.CountBucket, error) {
	return nil, nil
}

func (r *reportStub) CountsByPriority(context.Context, string) ([]repository.CountBucket, error) {
	return nil, nil
}

func (r *reportStub) CountsByCategory(context.Context, string) ([]repository.CountBucket, error) {
	return nil, nil
}

func (r *reportStub) TotalTickets(context.Context, string) (int64, int64, int64, error) {
	return 0, 0, 0, nil
}

func (r *reportStub) AvgResolutionHours(context.Context, string) (float64, error) { return 0, nil }

func (r *reportStub) SumTimeMinutes(context.Context, string) (int64, error) { return 0, nil }

func (r *reportStub) Platform(context.Context) (*repository.PlatformStats, error) {
	stats := r.stats
	return &stats, nil
}

// apiFixture stands up the whole HTTP surface on in-memory repositories,
// wired the same way the binary wires it.
type apiFixture struct {
	app    *fiber.App
	users  *repotest.Users
	tokens *auth.TokenManager
	mail   *mailStub
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	users := repotest.NewUsers()
	orgs := repotest.NewOrganizations()
	memberships := repotest.NewMemberships()
	categories := repotest.NewCategories()
	assignments := repotest.NewCategoryAssignments()
	statuses := repotest.NewTicketStatuses()
	tickets := repotest.NewTickets()
	comments := repotest.NewComments()
	attachments := repotest.NewAttachments()
	timeEntries := repotest.NewTimeEntries()
	activity := repotest.NewActivityLogs()
	notifications := repotest.NewNotifications()
	otps := repotest.NewOTPCodes()
	limiter := repotest.NewMemoryLimiter()

	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher(logger)
	mail := &mailStub{}

	cfg := config.Config{
		App: config.AppConfig{
			Name:                  "ticketing-backend-test",
			Version:               "test",
			RequestTimeoutSeconds: 5,
		},
		Auth: config.AuthConfig{
			JWTSecret:             "router-test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
			OTPTTLMinutes:         10,
		},
		Tenancy: config.TenancyConfig{MainHost: "example.com"},
		Storage: config.StorageConfig{
			MaxUploadBytes: 1 << 20,
			AllowedMime:    []string{"text/plain", "image/png"},
		},
		Public: config.PublicConfig{SubmitPerHour: 2},
	}

	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	orgService := service.NewOrganizationService(service.OrganizationDependencies{
		OrganizationRepo: orgs,
		MembershipRepo:   memberships,
		UserRepo:         users,
		StatusRepo:       statuses,
	})
	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:       users,
		MembershipRepo: memberships,
		OTPStore:       otps,
		Organizations:  orgService,
		Mail:           mail,
	})
	categoryService := service.NewCategoryService(service.CategoryDependencies{
		CategoryRepo:   categories,
		AssignmentRepo: assignments,
		MembershipRepo: memberships,
	})
	statusService := service.NewStatusService(service.StatusDependencies{
		StatusRepo: statuses,
		TicketRepo: tickets,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:       tickets,
		StatusRepo:       statuses,
		CategoryRepo:     categories,
		AssignmentRepo:   assignments,
		CommentRepo:      comments,
		TimeEntryRepo:    timeEntries,
		ActivityRepo:     activity,
		NotificationRepo: notifications,
		MembershipRepo:   memberships,
		Dispatcher:       dispatcher,
	})
	attachmentService := service.NewAttachmentService(cfg.Storage, service.AttachmentDependencies{
		AttachmentRepo: attachments,
		TicketRepo:     tickets,
		Store:          store,
	})
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		NotificationRepo: notifications,
		TicketRepo:       tickets,
		UserRepo:         users,
		OrganizationRepo: orgs,
		Dispatcher:       dispatcher,
		Mail:             mail,
	}, logger)
	notificationService.RegisterHandlers()
	reportService := service.NewReportService(&reportStub{
		stats: repository.PlatformStats{Organizations: 2, Users: 9, Tickets: 34, OpenTickets: 6},
	})

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Organizations:  handlers.NewOrganizationsHandler(orgService),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		Statuses:       handlers.NewStatusesHandler(statusService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Attachments:    handlers.NewAttachmentsHandler(attachmentService),
		Public:         handlers.NewPublicHandler(ticketService, limiter, cfg.Public.SubmitPerHour),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Reports:        handlers.NewReportsHandler(reportService),
		Admin:          handlers.NewAdminHandler(orgService, reportService, metrics),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), users),
		Resolver:       tenant.NewResolver(orgs, cfg.Tenancy.MainHost, logger),
		Guards:         tenant.NewGuards(memberships, orgs),
	})

	return &apiFixture{
		app:    app,
		users:  users,
		tokens: authService.TokenManager(),
		mail:   mail,
	}
}

func (f *apiFixture) do(t *testing.T, method, target, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, "http://example.com"+target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

// register signs up an account over HTTP. A non-empty orgName provisions the
// account's organization in the same call.
func (f *apiFixture) register(t *testing.T, name, email, orgName string) dto.AuthResponse {
	t.Helper()
	payload := fiber.Map{"name": name, "email": email, "password": "correct-horse-battery"}
	if orgName != "" {
		payload["organization"] = fiber.Map{"name": orgName}
	}
	resp := f.do(t, http.MethodPost, "/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var result dto.AuthResponse
	decodeData(t, resp, &result)
	require.NotEmpty(t, result.Token)
	return result
}

func (f *apiFixture) superAdmin(t *testing.T) string {
	t.Helper()
	root := &domain.User{Name: "root", Email: "root@example.com", Role: domain.GlobalRoleSuperAdmin, Lang: "en"}
	require.NoError(t, f.users.Create(context.Background(), root))
	token, _, err := f.tokens.GenerateToken(root.ID, root.Role, nil)
	require.NoError(t, err)
	return token
}

func (f *apiFixture) upload(t *testing.T, token, ticketID, filename, mime string, content []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {fmt.Sprintf(`form-data; name="file"; filename=%q`, filename)},
		"Content-Type":        {mime},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "http://example.com/tickets/"+ticketID+"/attachments", &buf)
	req.Header.Set(fiber.HeaderContentType, form.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope), "body: %s", raw)
	require.NoError(t, json.Unmarshal(envelope.Data, out), "data: %s", envelope.Data)
}

func decodeError(t *testing.T, resp *http.Response) (code, message string) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope), "body: %s", raw)
	return envelope.Error.Code, envelope.Error.Message
}

func TestHealthEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodGet, "/health/live", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var live struct {
		Status  string `json:"status"`
		Service string `json:"service"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(raw, &live))
	require.Equal(t, "alive", live.Status)
	require.Equal(t, "ticketing-backend-test", live.Service)

	// The fixture wires no real backends, so readiness must degrade to 503
	// instead of panicking.
	resp = f.do(t, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	code, _ := decodeError(t, resp)
	require.Equal(t, "DEPENDENCY_UNAVAILABLE", code)
}

func TestRegisterLoginMe(t *testing.T) {
	f := newAPIFixture(t)

	account := f.register(t, "Dana", "Dana@Example.com", "Acme Support")
	require.Equal(t, "dana@example.com", account.User.Email)
	require.NotNil(t, account.Organization)
	require.Equal(t, "acme-support", account.Organization.Slug)

	resp := f.do(t, http.MethodGet, "/auth/me", account.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.MeResponse
	decodeData(t, resp, &me)
	require.Equal(t, account.User.ID, me.User.ID)
	require.Len(t, me.Memberships, 1)
	require.Equal(t, domain.OrgRoleAdmin, me.Memberships[0].Role)

	resp = f.do(t, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "dana@example.com",
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login dto.AuthResponse
	decodeData(t, resp, &login)
	require.NotEmpty(t, login.Token)

	resp = f.do(t, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "dana@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	code, message := decodeError(t, resp)
	require.Equal(t, "UNAUTHORIZED", code)
	require.Equal(t, "invalid credentials", message)

	resp = f.do(t, http.MethodGet, "/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	code, message = decodeError(t, resp)
	require.Equal(t, "UNAUTHORIZED", code)
	require.Equal(t, "missing authorization header", message)

	resp = f.do(t, http.MethodGet, "/auth/me", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_, message = decodeError(t, resp)
	require.Equal(t, "invalid or expired token", message)
}

func TestTicketLifecycle(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.register(t, "Owner", "owner@example.com", "Acme Support")

	// Registration seeded the workflow; pick the default and closing rows.
	resp := f.do(t, http.MethodGet, "/statuses", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var statuses []dto.StatusResponse
	decodeData(t, resp, &statuses)
	require.Len(t, statuses, 4)
	var open, closed dto.StatusResponse
	for _, s := range statuses {
		if s.IsDefault {
			open = s
		}
		if s.IsClosing {
			closed = s
		}
	}
	require.NotEmpty(t, open.ID)
	require.NotEmpty(t, closed.ID)

	resp = f.do(t, http.MethodPost, "/tickets", owner.Token, fiber.Map{
		"title":       "Printer on fire",
		"description": "Smoke coming from tray 2",
		"priority":    "HIGH",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ticket dto.TicketResponse
	decodeData(t, resp, &ticket)
	require.Equal(t, open.ID, ticket.StatusID)
	require.Equal(t, domain.TicketPriorityHigh, ticket.Priority)
	require.NotNil(t, ticket.UserID)
	require.Equal(t, owner.User.ID, *ticket.UserID)
	require.Nil(t, ticket.ClosedAt)

	resp = f.do(t, http.MethodPatch, "/tickets/"+ticket.ID, owner.Token, fiber.Map{
		"status_id": closed.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.TicketResponse
	decodeData(t, resp, &updated)
	require.Equal(t, closed.ID, updated.StatusID)
	require.NotNil(t, updated.ClosedAt)

	resp = f.do(t, http.MethodGet, "/tickets?status_id="+closed.ID, owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []dto.TicketResponse
	decodeData(t, resp, &listed)
	require.Len(t, listed, 1)
	require.Equal(t, ticket.ID, listed[0].ID)

	resp = f.do(t, http.MethodGet, "/tickets/"+ticket.ID+"/activity", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var trail []dto.ActivityResponse
	decodeData(t, resp, &trail)
	require.Len(t, trail, 2)
	require.Equal(t, "created", trail[0].Field)
	require.Equal(t, "status", trail[1].Field)

	resp = f.do(t, http.MethodPost, "/tickets/"+ticket.ID+"/comments", owner.Token, fiber.Map{
		"body":     "Replaced the fuser unit",
		"internal": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var comment dto.CommentResponse
	decodeData(t, resp, &comment)
	require.True(t, comment.Internal)

	resp = f.do(t, http.MethodPost, "/tickets/"+ticket.ID+"/time-entries", owner.Token, fiber.Map{
		"minutes": 30,
		"note":    "triage and repair",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/tickets/"+ticket.ID+"/time-entries", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries dto.TimeEntriesResponse
	decodeData(t, resp, &entries)
	require.Len(t, entries.Entries, 1)
	require.Equal(t, int64(30), entries.TotalMinutes)

	resp = f.do(t, http.MethodDelete, "/tickets/"+ticket.ID, owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/tickets/"+ticket.ID, owner.Token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	code, _ := decodeError(t, resp)
	require.Equal(t, "NOT_FOUND", code)
}

func TestTenantIsolation(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.register(t, "Alice", "alice@example.com", "Acme")
	bob := f.register(t, "Bob", "bob@example.com", "Globex")
	loner := f.register(t, "Loner", "loner@example.com", "")

	resp := f.do(t, http.MethodPost, "/tickets", alice.Token, fiber.Map{
		"title":       "Acme only",
		"description": "must stay private",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Bob's membership fallback scopes him to Globex.
	resp = f.do(t, http.MethodGet, "/tickets", bob.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var visible []dto.TicketResponse
	decodeData(t, resp, &visible)
	require.Empty(t, visible)

	// Naming the other tenant explicitly is a hard denial.
	resp = f.do(t, http.MethodGet, "/tickets?org=acme", bob.Token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	code, message := decodeError(t, resp)
	require.Equal(t, "FORBIDDEN", code)
	require.Equal(t, "not a member of this organization", message)

	resp = f.do(t, http.MethodGet, "/tickets", loner.Token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	_, message = decodeError(t, resp)
	require.Equal(t, "not a member of any organization", message)

	resp = f.do(t, http.MethodGet, "/tickets", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOrgAdminGates(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.register(t, "Owner", "owner@example.com", "Acme Support")
	member := f.register(t, "Member", "member@example.com", "")

	resp := f.do(t, http.MethodPost, "/organizations/current/members", owner.Token, fiber.Map{
		"email": "member@example.com",
		"role":  "MEMBER",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Reads are open to every member.
	resp = f.do(t, http.MethodGet, "/categories", member.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/categories", member.Token, fiber.Map{"name": "Billing"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	code, message := decodeError(t, resp)
	require.Equal(t, "FORBIDDEN", code)
	require.Equal(t, "organization admin required", message)

	resp = f.do(t, http.MethodPost, "/categories", owner.Token, fiber.Map{"name": "Billing"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodPatch, "/organizations/current", member.Token, fiber.Map{"name": "Hijacked"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodPatch, "/organizations/current", owner.Token, fiber.Map{"name": "Acme Helpdesk"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var org dto.OrganizationResponse
	decodeData(t, resp, &org)
	require.Equal(t, "Acme Helpdesk", org.Name)

	resp = f.do(t, http.MethodGet, "/reports/summary", member.Token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/reports/summary", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary dto.OrganizationSummaryResponse
	decodeData(t, resp, &summary)
	require.Equal(t, int64(0), summary.TotalTickets)
}

func TestPublicSubmissionFlow(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.register(t, "Owner", "owner@example.com", "Acme Support")

	resp := f.do(t, http.MethodPost, "/public/acme-support/tickets", "", fiber.Map{
		"title":           "Cannot log in",
		"description":     "Password reset loops forever",
		"submitter_name":  "Walk-in",
		"submitter_email": "WALKIN@Example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ticket dto.TicketResponse
	decodeData(t, resp, &ticket)
	require.NotNil(t, ticket.PublicToken)
	require.Regexp(t, publicTokenPattern, *ticket.PublicToken)
	require.Nil(t, ticket.UserID)
	require.NotNil(t, ticket.SubmitterName)
	require.Equal(t, "Walk-in", *ticket.SubmitterName)

	token := *ticket.PublicToken
	resp = f.do(t, http.MethodGet, "/public/acme-support/tickets/track?token="+token, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tracked dto.TrackTicketResponse
	decodeData(t, resp, &tracked)
	require.Equal(t, "Cannot log in", tracked.Ticket.Title)
	require.Empty(t, tracked.Comments)

	// An internal note must never leak through the tracking view.
	resp = f.do(t, http.MethodPost, "/tickets/"+ticket.ID+"/comments", owner.Token, fiber.Map{
		"body":     "VIP customer, expedite",
		"internal": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/public/acme-support/tickets/comments", "", fiber.Map{
		"token": token,
		"body":  "Any update?",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var followUp dto.CommentResponse
	decodeData(t, resp, &followUp)
	require.Nil(t, followUp.UserID)
	require.NotNil(t, followUp.AuthorName)
	require.Equal(t, "Walk-in", *followUp.AuthorName)

	resp = f.do(t, http.MethodGet, "/public/acme-support/tickets/track?token="+token, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tracked = dto.TrackTicketResponse{}
	decodeData(t, resp, &tracked)
	require.Len(t, tracked.Comments, 1)
	require.Equal(t, "Any update?", tracked.Comments[0].Body)

	resp = f.do(t, http.MethodPost, "/public/nowhere/tickets", "", fiber.Map{
		"title":           "x",
		"description":     "y",
		"submitter_name":  "n",
		"submitter_email": "n@example.com",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/public/acme-support/tickets/track?token=ZZZZZZZZ", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPublicSubmissionRateLimited(t *testing.T) {
	f := newAPIFixture(t)
	f.register(t, "Owner", "owner@example.com", "Acme Support")

	submit := func() *http.Response {
		return f.do(t, http.MethodPost, "/public/acme-support/tickets", "", fiber.Map{
			"title":           "Yet another issue",
			"description":     "details",
			"submitter_name":  "Visitor",
			"submitter_email": "visitor@example.com",
		})
	}

	first := submit()
	require.Equal(t, http.StatusCreated, first.StatusCode)
	var ticket dto.TicketResponse
	decodeData(t, first, &ticket)

	require.Equal(t, http.StatusCreated, submit().StatusCode)

	third := submit()
	require.Equal(t, http.StatusTooManyRequests, third.StatusCode)
	code, _ := decodeError(t, third)
	require.Equal(t, "RATE_LIMITED", code)

	// Reads stay open once the submit allowance is spent.
	resp := f.do(t, http.MethodGet, "/public/acme-support/tickets/track?token="+*ticket.PublicToken, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestQueueAssignmentNotifications(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.register(t, "Owner", "owner@example.com", "Acme Support")
	agent := f.register(t, "Agent", "agent@example.com", "")

	resp := f.do(t, http.MethodPost, "/organizations/current/members", owner.Token, fiber.Map{
		"email": "agent@example.com",
		"role":  "MEMBER",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/categories", owner.Token, fiber.Map{"name": "Billing"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var category dto.CategoryResponse
	decodeData(t, resp, &category)

	resp = f.do(t, http.MethodPost, "/categories/"+category.ID+"/assignments", owner.Token, fiber.Map{
		"user_id": agent.User.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/categories/"+category.ID+"/assignments", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var queue []dto.AssignmentResponse
	decodeData(t, resp, &queue)
	require.Len(t, queue, 1)
	require.Equal(t, agent.User.ID, queue[0].UserID)

	mailsBefore := f.mail.count()
	resp = f.do(t, http.MethodPost, "/public/acme-support/tickets", "", fiber.Map{
		"title":           "Invoice is wrong",
		"description":     "Charged twice this month",
		"submitter_name":  "Customer",
		"submitter_email": "customer@example.com",
		"category_id":     category.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ticket dto.TicketResponse
	decodeData(t, resp, &ticket)
	require.NotNil(t, ticket.AssignedTo)
	require.Equal(t, agent.User.ID, *ticket.AssignedTo)

	// Submission confirmation plus the assignment notice.
	require.Equal(t, mailsBefore+2, f.mail.count())

	resp = f.do(t, http.MethodGet, "/notifications", agent.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var feed []dto.NotificationResponse
	decodeData(t, resp, &feed)
	require.Len(t, feed, 1)
	require.Equal(t, domain.NotificationTicketAssigned, feed[0].Kind)
	require.Contains(t, feed[0].Message, "assigned to you")
	require.Nil(t, feed[0].ReadAt)

	resp = f.do(t, http.MethodGet, "/notifications/unread-count", agent.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var unread dto.UnreadCountResponse
	decodeData(t, resp, &unread)
	require.Equal(t, int64(1), unread.Unread)

	resp = f.do(t, http.MethodPost, "/notifications/"+feed[0].ID+"/read", agent.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/notifications/unread-count", agent.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	unread = dto.UnreadCountResponse{}
	decodeData(t, resp, &unread)
	require.Equal(t, int64(0), unread.Unread)
}

func TestSuperAdminSurface(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.register(t, "Owner", "owner@example.com", "Acme Support")

	resp := f.do(t, http.MethodGet, "/admin/stats", owner.Token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	_, message := decodeError(t, resp)
	require.Equal(t, "super admin required", message)

	root := f.superAdmin(t)

	resp = f.do(t, http.MethodGet, "/admin/stats", root, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var stats struct {
		Data dto.PlatformStatsResponse   `json:"data"`
		HTTP map[string]map[string]int64 `json:"http"`
	}
	require.NoError(t, json.Unmarshal(raw, &stats))
	require.Equal(t, int64(2), stats.Data.Organizations)
	require.Equal(t, int64(34), stats.Data.Tickets)
	require.NotNil(t, stats.HTTP["requests"])

	resp = f.do(t, http.MethodGet, "/admin/organizations", root, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orgs []dto.OrganizationResponse
	decodeData(t, resp, &orgs)
	require.Len(t, orgs, 1)
	require.Equal(t, "acme-support", orgs[0].Slug)

	resp = f.do(t, http.MethodPatch, "/admin/organizations/"+orgs[0].ID+"/status", root, fiber.Map{
		"status": "SUSPENDED",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/admin/organizations", root, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	orgs = nil
	decodeData(t, resp, &orgs)
	require.Len(t, orgs, 1)
	require.Equal(t, domain.OrgStatusSuspended, orgs[0].Status)

	resp = f.do(t, http.MethodDelete, "/admin/organizations/"+orgs[0].ID, root, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/admin/organizations", root, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	orgs = nil
	decodeData(t, resp, &orgs)
	require.Empty(t, orgs)
}

func TestAttachmentUploadDownload(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.register(t, "Owner", "owner@example.com", "Acme Support")

	resp := f.do(t, http.MethodPost, "/tickets", owner.Token, fiber.Map{
		"title":       "Broken badge reader",
		"description": "Door 4 reader rejects all cards",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ticket dto.TicketResponse
	decodeData(t, resp, &ticket)

	content := []byte("reader log: card 0017 rejected")
	resp = f.upload(t, owner.Token, ticket.ID, "reader.log", "text/plain", content)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var attachment dto.AttachmentResponse
	decodeData(t, resp, &attachment)
	require.Equal(t, "reader.log", attachment.FileName)
	require.Equal(t, "text/plain", attachment.MimeType)
	require.Equal(t, int64(len(content)), attachment.SizeBytes)

	resp = f.upload(t, owner.Token, ticket.ID, "tool.exe", "application/x-msdownload", []byte{0x4d, 0x5a})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	code, _ := decodeError(t, resp)
	require.Equal(t, "VALIDATION_FAILED", code)

	resp = f.do(t, http.MethodGet, "/tickets/"+ticket.ID+"/attachments", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []dto.AttachmentResponse
	decodeData(t, resp, &listed)
	require.Len(t, listed, 1)

	resp = f.do(t, http.MethodGet, "/attachments/"+attachment.ID, owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/plain", resp.Header.Get(fiber.HeaderContentType))
	require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "reader.log")
	downloaded, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, content, downloaded)

	resp = f.do(t, http.MethodDelete, "/attachments/"+attachment.ID, owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/attachments/"+attachment.ID, owner.Token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestErrorEnvelope(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.register(t, "Owner", "owner@example.com", "Acme Support")

	resp := f.do(t, http.MethodPost, "/tickets", owner.Token, fiber.Map{
		"title":       "",
		"description": "no title given",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	code, message := decodeError(t, resp)
	require.Equal(t, "VALIDATION_FAILED", code)
	require.NotEmpty(t, message)

	// Conflicts surface as 400 on this API, not 409.
	resp = f.do(t, http.MethodPost, "/organizations", owner.Token, fiber.Map{"name": "Second Venture"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	code, message = decodeError(t, resp)
	require.Equal(t, "CONFLICT", code)
	require.Equal(t, "user already administers an organization", message)

	req := httptest.NewRequest(http.MethodPost, "http://example.com/tickets", strings.NewReader("{"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+owner.Token)
	malformed, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, malformed.StatusCode)
	code, message = decodeError(t, malformed)
	require.Equal(t, "VALIDATION_FAILED", code)
	require.Equal(t, "invalid payload", message)
}
