package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"conectaleads_backend/internal/catalog"
	apphttp "conectaleads_backend/internal/http"
	"conectaleads_backend/internal/http/router"
	"conectaleads_backend/internal/inbox"
	"conectaleads_backend/internal/leads"
	"conectaleads_backend/internal/notification"
	"conectaleads_backend/internal/pipelines"
	"conectaleads_backend/internal/scheduler"
	"conectaleads_backend/internal/shopee"
	"conectaleads_backend/internal/tracking"
	"conectaleads_backend/internal/webhook"
	"conectaleads_backend/platform/config"
	"conectaleads_backend/platform/db"
	"conectaleads_backend/platform/events"
	"conectaleads_backend/platform/logger"
	"conectaleads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Score recomputes go through the worker queue so that concurrent
	// interactions on the same lead are applied one at a time
	scoreQueue, closeQueue := initScoreQueue(cfg, log)
	defer closeQueue()

	// Pipelines first: the leads module resolves stages through it
	pipelinesModule := pipelines.NewModule(pool, val)
	leadsModule := leads.NewModule(pool, pipelinesModule.StageProvider(), scoreQueue, eventBus, val, log)

	// Notification module subscribes to domain events and owns the outbound
	// senders; its dispatcher doubles as the inbox reply sender
	notificationModule := notification.NewModule(pool, cfg, eventBus, log)

	inboxModule := inbox.NewModule(pool, leadsModule.Service(), notificationModule.Dispatcher(), eventBus, val, log)
	webhookModule := webhook.NewModule(inboxModule.Service(), cfg, log)
	catalogModule := catalog.NewModule(pool, leadsModule.Service(), val, log)
	trackingModule := tracking.NewModule(pool, val)
	shopeeModule := shopee.NewModule(pool, cfg, eventBus, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			pipelinesModule,
			leadsModule,
			inboxModule,
			webhookModule,
			catalogModule,
			trackingModule,
			shopeeModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initScoreQueue builds the asynq enqueue client when redis is configured.
// Without redis the leads module falls back to inline recomputes.
func initScoreQueue(cfg config.SchedulerConfig, log *logger.Logger) (leads.ScoreQueue, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not set, score recalculation runs inline")
		return nil, func() {}
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize score queue, running inline", "error", err)
		return nil, func() {}
	}

	log.Info("score queue initialized")
	return client, func() {
		if err := client.Close(); err != nil {
			log.Warn("failed to close score queue", "error", err)
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
