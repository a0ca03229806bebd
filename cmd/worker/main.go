package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"conectaleads_backend/internal/leads"
	"conectaleads_backend/internal/notification"
	"conectaleads_backend/internal/pipelines"
	"conectaleads_backend/internal/scheduler"
	"conectaleads_backend/internal/shopee"
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
	log.Info("starting worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	// Same module wiring as the API server, minus the HTTP layer: the worker
	// needs the services behind the scheduled tasks, and the notification
	// subscriptions so events raised here still reach the outbox.
	// The worker passes no score queue: recomputes triggered by events raised
	// here run inline, instead of re-enqueueing onto the queue it is draining.
	pipelinesModule := pipelines.NewModule(pool, val)
	leadsModule := leads.NewModule(pool, pipelinesModule.StageProvider(), nil, eventBus, val, log)
	notificationModule := notification.NewModule(pool, cfg, eventBus, log)
	shopeeModule := shopee.NewModule(pool, cfg, eventBus, val, log)

	periodic, err := scheduler.NewPeriodic(cfg, cfg.IsShopeeEnabled(), log)
	if err != nil {
		log.Error("failed to initialize periodic scheduler", "error", err)
		panic("failed to initialize periodic scheduler: " + err.Error())
	}
	defer periodic.Shutdown()
	go periodic.Run()

	worker, err := scheduler.NewWorker(cfg, leadsModule.Service(), notificationModule.Service(), shopeeModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
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
