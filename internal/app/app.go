package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"MaizeReporter/internal/config"
	"MaizeReporter/internal/infrastructure/scheduler"
	"MaizeReporter/internal/infrastructure/search"
	"MaizeReporter/internal/infrastructure/storage"
	"MaizeReporter/internal/infrastructure/whatsapp"
	"MaizeReporter/internal/logging"
	"MaizeReporter/internal/ports"
	"MaizeReporter/internal/report"
	"MaizeReporter/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
}

// New builds a runnable application instance. A missing credential disables
// only that collaborator's step; the run itself still happens.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	var source ports.NarrativeSource
	if cfg.Search.APIKey != "" {
		source = search.NewClient(cfg.Search)
	}

	var store ports.ReportStore
	if cfg.Database.DSN != "" {
		store = storage.NewPostgresRepository(
			cfg.Database.DSN,
			cfg.Database.Retention(),
			baseLogger.With("component", "store"),
		)
	}

	var notifier ports.Notifier
	wa := cfg.Notifications.WhatsApp
	if wa.Instance != "" && wa.Token != "" && wa.Phone != "" {
		notifier = whatsapp.NewNotifier(wa)
	}

	builder := report.NewBuilder(cfg.Content, cfg.Scheduler.Location())

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:   source,
		Builder:  builder,
		Store:    store,
		Notifier: notifier,
		Logger:   baseLogger.With("component", "pipeline"),
	})

	var sched *usecase.Scheduler
	if cfg.Scheduler.Enabled {
		driver := scheduler.NewCronScheduler(cfg.Scheduler.CronExpression, cfg.Scheduler.Location())
		sched = usecase.NewScheduler(driver, pipeline)
	}

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		pipeline:  pipeline,
		scheduler: sched,
	}
}

// Run executes one report cycle, or the cron loop when scheduling is enabled.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	if a.scheduler == nil {
		now := time.Now().In(a.cfg.Scheduler.Location())
		summary := a.pipeline.Run(ctx, now)
		if !summary.Overall() {
			return fmt.Errorf("run finished with failures (store=%t notify=%t)", summary.StoreOK, summary.NotifyOK)
		}
		return nil
	}

	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduler started", "cron", a.cfg.Scheduler.CronExpression)

	<-ctx.Done()
	return a.scheduler.Stop(context.Background())
}
