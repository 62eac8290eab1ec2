package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JayR61/congregation-connect/internal/handler"
	"github.com/JayR61/congregation-connect/internal/repository"
	"github.com/JayR61/congregation-connect/internal/service"
	"github.com/JayR61/congregation-connect/pkg/config"
	"github.com/JayR61/congregation-connect/pkg/jobs"
	"github.com/JayR61/congregation-connect/pkg/kv"
)

const notificationQueue = "reminder-notifications"

// App holds every long-lived component behind the API and the CLI.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Backend kv.Store
	Store   *repository.Store

	Metrics    *service.MetricsService
	Auth       *service.AuthService
	Programmes *service.ProgrammeService
	Attendance *service.AttendanceService
	Feedback   *service.FeedbackService
	KPIs       *service.KPIService
	Reminders  *service.ReminderService
	Statistics *service.StatisticsService
	Exports    *service.ExportService
	Catalog    *service.CatalogService
	Resources  *service.ResourceService

	Notifications *jobs.Queue
	Runner        *service.ReminderRunner

	runnerDone <-chan struct{}
	cancel     context.CancelFunc
}

// New opens the configured key-value backend and wires the services on it.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	backend, err := kv.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return NewWithBackend(cfg, logger, backend), nil
}

// Option adjusts how NewWithBackend wires the application.
type Option func(*options)

type options struct {
	notifier service.Notifier
}

// WithNotifier replaces the configured reminder delivery channel.
func WithNotifier(n service.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// NewWithBackend wires the services on an already opened backend.
func NewWithBackend(cfg *config.Config, logger *zap.Logger, backend kv.Store, opts ...Option) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	store := repository.NewStore(backend, logger)
	if metrics != nil {
		store = store.WithObserver(metrics)
	}

	programmes := repository.NewProgrammeRepository(store)
	attendance := repository.NewAttendanceRepository(store)
	reminders := repository.NewReminderRepository(store)
	feedback := repository.NewFeedbackRepository(store)
	kpis := repository.NewKPIRepository(store)
	resources := repository.NewResourceRepository(store)
	catalog := repository.NewCatalogRepository(store)

	validate := service.NewValidator()

	notifier := o.notifier
	if notifier == nil {
		notifier = newNotifier(cfg, logger)
	}
	queue := jobs.NewQueue(notificationQueue, service.NewReminderNotificationHandler(notifier), jobs.QueueConfig{
		Workers:    cfg.Reminders.NotifyWorkers,
		MaxRetries: cfg.Reminders.NotifyRetries,
		Logger:     logger,
	})

	reminderParams := service.ReminderServiceParams{
		Reminders:  reminders,
		Programmes: programmes,
		Dispatcher: queue,
		Validator:  validate,
		Logger:     logger,
	}
	if metrics != nil {
		reminderParams.Metrics = metrics
	}
	reminderSvc := service.NewReminderService(reminderParams)

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Backend: backend,
		Store:   store,
		Metrics: metrics,
		Auth: service.NewAuthService(logger, service.AuthConfig{
			AccessTokenSecret: cfg.JWT.Secret,
			AccessTokenExpiry: cfg.JWT.Expiration,
			Issuer:            cfg.JWT.Issuer,
		}),
		Programmes: service.NewProgrammeService(service.ProgrammeServiceParams{
			Programmes: programmes,
			Templates:  catalog.Templates,
			Tags:       catalog.Tags,
			TagLinks:   catalog.ProgrammeTags,
			Validator:  validate,
			Logger:     logger,
		}),
		Attendance:    service.NewAttendanceService(attendance, programmes, validate, logger),
		Feedback:      service.NewFeedbackService(feedback, programmes, validate, logger),
		KPIs:          service.NewKPIService(kpis, programmes, validate, logger),
		Reminders:     reminderSvc,
		Statistics:    service.NewStatisticsService(programmes, attendance, feedback, logger),
		Exports:       service.NewExportService(programmes, attendance, reminders, logger),
		Catalog:       service.NewCatalogService(catalog, validate, logger),
		Resources:     service.NewResourceService(resources, programmes, validate, logger),
		Notifications: queue,
	}
	if cfg.Reminders.RunnerEnabled {
		a.Runner = service.NewReminderRunner(reminderSvc, cfg.Reminders.Interval, logger)
	}
	return a
}

// newNotifier picks the reminder delivery channel. Unknown names fall back to
// the log notifier.
func newNotifier(cfg *config.Config, logger *zap.Logger) service.Notifier {
	switch cfg.Reminders.Notifier {
	case "", config.NotifierLog:
		return service.NewLogNotifier(logger)
	case config.NotifierSendGrid:
		sg := cfg.Reminders.SendGrid
		return service.NewSendGridNotifier(service.SendGridConfig{
			APIKey:    sg.APIKey,
			FromEmail: sg.FromEmail,
			FromName:  sg.FromName,
		}, logger)
	default:
		logger.Warn("unknown reminder notifier, using log", zap.String("notifier", cfg.Reminders.Notifier))
		return service.NewLogNotifier(logger)
	}
}

// Start launches the notification workers and, when enabled, the reminder runner.
func (a *App) Start(ctx context.Context) {
	ctx, a.cancel = context.WithCancel(ctx)
	// Workers outlive ctx; Drain and Close stop them.
	a.Notifications.Start(context.WithoutCancel(ctx))
	if a.Runner != nil {
		a.runnerDone = a.Runner.Start(ctx)
	}
}

// Router builds the HTTP engine.
func (a *App) Router() *gin.Engine {
	if a.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	return handler.NewRouter(handler.RouterConfig{
		APIPrefix:      a.Config.APIPrefix,
		EnableDocs:     a.Config.Env != config.EnvProduction,
		AllowedOrigins: a.Config.CORS.AllowedOrigins,
		Logger:         a.Logger,
		Auth:           a.Auth,
		Metrics:        a.Metrics,
		Ready:          a.Notifications.Running,
	}, handler.Handlers{
		Programmes: handler.NewProgrammeHandler(a.Programmes),
		Attendance: handler.NewAttendanceHandler(a.Attendance),
		Feedback:   handler.NewFeedbackHandler(a.Feedback),
		KPIs:       handler.NewKPIHandler(a.KPIs),
		Reminders:  handler.NewReminderHandler(a.Reminders),
		Statistics: handler.NewStatisticsHandler(a.Statistics),
		Exports:    handler.NewExportHandler(a.Exports, a.Programmes),
		Catalog:    handler.NewCatalogHandler(a.Catalog),
		Resources:  handler.NewResourceHandler(a.Resources),
	})
}

// Drain stops the reminder runner, then waits for queued reminder
// notifications to be delivered or dropped.
func (a *App) Drain(ctx context.Context) error {
	if a.cancel != nil {
		a.cancel()
	}
	if a.runnerDone != nil {
		select {
		case <-a.runnerDone:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return a.Notifications.Drain(ctx)
}

// Close stops background work and releases the backend.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	if a.runnerDone != nil {
		<-a.runnerDone
	}
	a.Notifications.Stop()
	_ = a.Logger.Sync()
	return a.Backend.Close()
}
