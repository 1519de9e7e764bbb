package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Beyond-Company/Ticketing-backend/internal/api/http"
	"github.com/Beyond-Company/Ticketing-backend/internal/api/http/handlers"
	"github.com/Beyond-Company/Ticketing-backend/internal/auth"
	"github.com/Beyond-Company/Ticketing-backend/internal/config"
	"github.com/Beyond-Company/Ticketing-backend/internal/events"
	"github.com/Beyond-Company/Ticketing-backend/internal/mailer"
	"github.com/Beyond-Company/Ticketing-backend/internal/observability"
	"github.com/Beyond-Company/Ticketing-backend/internal/persistence"
	"github.com/Beyond-Company/Ticketing-backend/internal/repository"
	"github.com/Beyond-Company/Ticketing-backend/internal/service"
	"github.com/Beyond-Company/Ticketing-backend/internal/storage"
	"github.com/Beyond-Company/Ticketing-backend/internal/tenant"
	"github.com/Beyond-Company/Ticketing-backend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	membershipRepo := repository.NewMembershipRepository(pool)
	orgRepo := repository.NewOrganizationRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	assignmentRepo := repository.NewCategoryAssignmentRepository(pool)
	statusRepo := repository.NewTicketStatusRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	timeEntryRepo := repository.NewTimeEntryRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	otpStore := repository.NewOTPStore(redis.Client)
	rateLimiter := repository.NewRateLimiter(redis.Client)

	dispatcher := events.NewInMemoryDispatcher(logger)
	mail := mailer.NewMailer(cfg.Mail, logger)

	fileStore, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Fatal("failed to init attachment storage", zap.Error(err))
	}

	orgService := service.NewOrganizationService(service.OrganizationDependencies{
		OrganizationRepo: orgRepo,
		MembershipRepo:   membershipRepo,
		UserRepo:         userRepo,
		StatusRepo:       statusRepo,
	})
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:       userRepo,
		MembershipRepo: membershipRepo,
		OTPStore:       otpStore,
		Organizations:  orgService,
		Mail:           mail,
	})
	categoryService := service.NewCategoryService(service.CategoryDependencies{
		CategoryRepo:   categoryRepo,
		AssignmentRepo: assignmentRepo,
		MembershipRepo: membershipRepo,
	})
	statusService := service.NewStatusService(service.StatusDependencies{
		StatusRepo: statusRepo,
		TicketRepo: ticketRepo,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:       ticketRepo,
		StatusRepo:       statusRepo,
		CategoryRepo:     categoryRepo,
		AssignmentRepo:   assignmentRepo,
		CommentRepo:      commentRepo,
		TimeEntryRepo:    timeEntryRepo,
		ActivityRepo:     activityRepo,
		NotificationRepo: notificationRepo,
		MembershipRepo:   membershipRepo,
		Dispatcher:       dispatcher,
	})
	attachmentService := service.NewAttachmentService(cfg.Storage, service.AttachmentDependencies{
		AttachmentRepo: attachmentRepo,
		TicketRepo:     ticketRepo,
		Store:          fileStore,
	})
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		NotificationRepo: notificationRepo,
		TicketRepo:       ticketRepo,
		UserRepo:         userRepo,
		OrganizationRepo: orgRepo,
		Dispatcher:       dispatcher,
		Mail:             mail,
	}, logger)
	reportService := service.NewReportService(reportRepo)

	stopWorker := worker.StartNotificationWorker(notificationService, mail)
	defer stopWorker()

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	resolver := tenant.NewResolver(orgRepo, cfg.Tenancy.MainHost, logger)
	guards := tenant.NewGuards(membershipRepo, orgRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Organizations:  handlers.NewOrganizationsHandler(orgService),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		Statuses:       handlers.NewStatusesHandler(statusService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Attachments:    handlers.NewAttachmentsHandler(attachmentService),
		Public:         handlers.NewPublicHandler(ticketService, rateLimiter, cfg.Public.SubmitPerHour),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Reports:        handlers.NewReportsHandler(reportService),
		Admin:          handlers.NewAdminHandler(orgService, reportService, metrics),
		AuthMiddleware: authMiddleware,
		Resolver:       resolver,
		Guards:         guards,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
