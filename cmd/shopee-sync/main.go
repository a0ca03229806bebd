package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"conectaleads_backend/internal/shopee"
	"conectaleads_backend/platform/config"
	"conectaleads_backend/platform/db"
	"conectaleads_backend/platform/events"
	"conectaleads_backend/platform/logger"
	"conectaleads_backend/platform/validator"
)

// One-shot order import: runs a single sync pass over the configured window
// and exits. Useful for cron setups without the asynq worker.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting shopee order sync")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	module := shopee.NewModule(pool, cfg, eventBus, validator.New(), log)

	result, err := module.Service().SyncOrders(ctx)
	if err != nil {
		log.Error("sync failed", "error", err)
		os.Exit(1)
	}
	log.Info("sync finished", "fetched", result.Fetched, "upserted", result.Upserted, "failed", result.Failed)
}
