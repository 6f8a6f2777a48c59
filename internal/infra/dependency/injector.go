// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/HACO8888/Financial-Management-System/config"
	"github.com/HACO8888/Financial-Management-System/internal/application/adapter"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/aggregation"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/auth"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/category"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/dashboard"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/goal"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/report"
	"github.com/HACO8888/Financial-Management-System/internal/application/usecase/transaction"
	"github.com/HACO8888/Financial-Management-System/internal/infra/db"
	"github.com/HACO8888/Financial-Management-System/internal/infra/scheduler"
	"github.com/HACO8888/Financial-Management-System/internal/infra/server/router"
	"github.com/HACO8888/Financial-Management-System/internal/integration/adapters"
	"github.com/HACO8888/Financial-Management-System/internal/integration/cache"
	"github.com/HACO8888/Financial-Management-System/internal/integration/email"
	"github.com/HACO8888/Financial-Management-System/internal/integration/email/templates"
	"github.com/HACO8888/Financial-Management-System/internal/integration/entrypoint/controller"
	"github.com/HACO8888/Financial-Management-System/internal/integration/entrypoint/middleware"
	"github.com/HACO8888/Financial-Management-System/internal/integration/export"
	"github.com/HACO8888/Financial-Management-System/internal/integration/messaging"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence"
	"github.com/HACO8888/Financial-Management-System/internal/integration/storage"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Clock       adapter.Clock
	Router      *router.Router
	EmailWorker *email.Worker
	Scheduler   *scheduler.Scheduler

	closers []func() error
}

// Externals lets callers replace the optional integrations. Nil fields are built from config.
type Externals struct {
	Cache       adapter.ReadCache
	Events      adapter.EventPublisher
	Archive     adapter.ReportArchive
	Narrator    adapter.ReportNarrator
	EmailSender adapter.EmailSender
	Clock       adapter.Clock
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, ext Externals) (*Injector, error) {
	inj := &Injector{Config: cfg, DB: gormDB}
	inj.resolveExternals(ctx, &ext)
	inj.Clock = ext.Clock

	// Repositories
	userRepo := persistence.NewUserRepository(gormDB)
	categoryRepo := persistence.NewCategoryRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	goalRepo := persistence.NewGoalRepository(gormDB)
	reportRepo := persistence.NewReportRepository(gormDB)
	emailQueueRepo := persistence.NewEmailQueueRepository(gormDB)

	// Services
	passwordService := adapters.NewPasswordService(adapters.DefaultBcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	inj.EmailWorker = email.NewWorker(emailQueueRepo, ext.EmailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Engine
	aggregator := aggregation.NewAggregator(transactionRepo, ext.Clock)
	tracker := goal.NewTracker(goalRepo, userRepo, aggregator, goal.NewNotifier(userRepo, emailService, ext.Events))
	generator := report.NewGenerator(aggregator, goalRepo, reportRepo, ext.Events, ext.Narrator)
	generateAll := report.NewGenerateAllUseCase(generator, userRepo, emailService, cfg.Email.MonthlyReportEnabled)

	if cfg.Scheduler.Enabled {
		inj.Scheduler = scheduler.New(cfg.Scheduler.Location(),
			scheduler.MonthlyReportJob(cfg.Scheduler.MonthlyReportAt, generateAll, ext.Clock),
			scheduler.GoalRefreshJob(cfg.Scheduler.GoalRefreshAt, tracker),
			scheduler.EmailCleanupJob(cfg.Scheduler.EmailCleanupAt, inj.EmailWorker, cfg.Email.SentRetention),
		)
	}

	// Controllers
	controllers := router.Controllers{
		Health: controller.NewHealthController(func(ctx context.Context) bool {
			return db.Ping(ctx, gormDB)
		}),
		Auth: controller.NewAuthController(
			auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService),
			auth.NewLoginUserUseCase(userRepo, passwordService, tokenService),
			auth.NewRefreshTokenUseCase(userRepo, tokenService),
		),
		User: controller.NewUserController(
			auth.NewGetProfileUseCase(userRepo),
			auth.NewDeleteAccountUseCase(userRepo, passwordService, ext.Cache),
		),
		Category: controller.NewCategoryController(
			category.NewListCategoriesUseCase(categoryRepo),
			category.NewCreateCategoryUseCase(categoryRepo),
			category.NewRenameCategoryUseCase(categoryRepo, ext.Cache),
			category.NewDeleteCategoryUseCase(categoryRepo),
		),
		Transaction: controller.NewTransactionController(
			transaction.NewListTransactionsUseCase(aggregator),
			transaction.NewGetTransactionUseCase(transactionRepo),
			transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, ext.Cache, tracker),
			transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, ext.Cache, tracker),
			transaction.NewDeleteTransactionUseCase(transactionRepo, ext.Cache, tracker),
		),
		Goal: controller.NewGoalController(controller.GoalUseCases{
			List:        goal.NewListGoalsUseCase(goalRepo, tracker, ext.Clock),
			Create:      goal.NewCreateGoalUseCase(goalRepo, tracker, ext.Clock),
			Get:         goal.NewGetGoalUseCase(goalRepo, ext.Clock),
			Update:      goal.NewUpdateGoalUseCase(goalRepo, tracker, ext.Clock),
			Delete:      goal.NewDeleteGoalUseCase(goalRepo),
			Refresh:     goal.NewRefreshGoalUseCase(goalRepo, tracker, ext.Clock),
			Status:      goal.NewChangeGoalStatusUseCase(goalRepo, tracker, ext.Clock),
			Summary:     goal.NewActiveSummaryUseCase(tracker, ext.Clock),
			Statistics:  goal.NewGoalStatisticsUseCase(goalRepo, transactionRepo, ext.Clock),
			History:     goal.NewGoalHistoryUseCase(goalRepo, transactionRepo, ext.Clock),
			Suggestions: goal.NewGoalSuggestionsUseCase(goalRepo, ext.Clock),
		}, ext.Clock),
		Report: controller.NewReportController(controller.ReportUseCases{
			List:       report.NewListReportsUseCase(reportRepo),
			Get:        report.NewGetReportUseCase(reportRepo, generator),
			Generate:   report.NewGenerateReportUseCase(generator, ext.Cache),
			Delete:     report.NewDeleteReportUseCase(reportRepo, ext.Cache),
			Compare:    report.NewCompareReportsUseCase(reportRepo, generator, ext.Clock),
			Yearly:     report.NewYearlySummaryUseCase(reportRepo),
			Categories: report.NewCategoryBreakdownUseCase(aggregator),
			Export: report.NewExportReportUseCase(reportRepo, ext.Archive,
				export.NewJSONExporter(),
				export.NewXLSXExporter(),
			),
		}, ext.Clock),
		Dashboard: controller.NewDashboardController(
			dashboard.NewGetOverviewUseCase(aggregator, tracker),
			dashboard.NewStatsUseCase(aggregator, categoryRepo, ext.Cache, cfg.Redis.CacheTTL),
			ext.Clock,
		),
	}

	loginRateLimiter := middleware.NewRateLimiter(5, 0)
	if cfg.Server.Environment == "test" || cfg.Server.Environment == "e2e" {
		loginRateLimiter.Disable()
	}

	inj.Router = router.NewRouter(controllers, loginRateLimiter, middleware.NewAuthMiddleware(tokenService))
	return inj, nil
}

// resolveExternals fills every nil integration from config. An unreachable optional
// service is logged and replaced by its no-op form.
func (inj *Injector) resolveExternals(ctx context.Context, ext *Externals) {
	cfg := inj.Config

	if ext.Clock == nil {
		ext.Clock = adapter.SystemClock(cfg.Scheduler.Location())
	}

	if ext.Cache == nil {
		ext.Cache = cache.NewNoopCache()
		if cfg.Redis.URL != "" {
			client, err := cache.NewRedisClient(ctx, cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				slog.Warn("redis unavailable, read cache disabled", "error", err)
			} else {
				ext.Cache = cache.NewRedisCache(client)
				inj.closers = append(inj.closers, client.Close)
				slog.Info("redis read cache enabled")
			}
		}
	}

	if ext.Events == nil {
		ext.Events = messaging.NewNoopPublisher()
		if cfg.Messaging.AMQPURL != "" {
			publisher, err := messaging.NewAMQPPublisher(cfg.Messaging.AMQPURL, cfg.Messaging.Exchange)
			if err != nil {
				slog.Warn("amqp unavailable, events disabled", "error", err)
			} else {
				ext.Events = publisher
				inj.closers = append(inj.closers, publisher.Close)
				slog.Info("amqp event publishing enabled", "exchange", cfg.Messaging.Exchange)
			}
		}
	}

	if ext.Archive == nil && cfg.Storage.Bucket != "" {
		archive, err := storage.NewS3Archive(ctx, cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.Prefix, cfg.Storage.Endpoint)
		if err != nil {
			slog.Warn("s3 unavailable, report archiving disabled", "error", err)
		} else {
			ext.Archive = archive
			slog.Info("report archiving enabled", "bucket", cfg.Storage.Bucket)
		}
	}

	if ext.Narrator == nil {
		narrator := adapters.NewGeminiNarrator(cfg.AI.GeminiAPIKey, cfg.AI.Model)
		if narrator.IsAvailable() {
			slog.Info("report narratives enabled", "model", cfg.AI.Model)
		}
		ext.Narrator = narrator
	}

	if ext.EmailSender == nil {
		if cfg.Email.ResendAPIKey != "" {
			client := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
			if cfg.Email.ResendBaseURL != "" {
				if err := client.SetBaseURL(cfg.Email.ResendBaseURL); err != nil {
					slog.Warn("ignoring resend base url", "error", err)
				}
			}
			ext.EmailSender = client
		} else {
			slog.Info("RESEND_API_KEY not set, emails are logged instead of sent")
			ext.EmailSender = email.NewLogSender()
		}
	}
}

// Close releases the external connections opened by the injector.
func (inj *Injector) Close() error {
	var errs []error
	for i := len(inj.closers) - 1; i >= 0; i-- {
		if err := inj.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
