package scheduler

import (
	"context"
	"fmt"

	"conectaleads_backend/internal/leads/domain"
	"conectaleads_backend/internal/shopee/service"
	"conectaleads_backend/platform/config"
	"conectaleads_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const defaultOutboxBatch = 50

// ScoreRecalculator recomputes one lead's score. Implemented by the leads
// service.
type ScoreRecalculator interface {
	RecalculateScore(ctx context.Context, leadID uuid.UUID, force bool) (domain.Lead, error)
}

// OutboxDispatcher drains due notifications. Implemented by the notification
// service.
type OutboxDispatcher interface {
	DispatchDue(ctx context.Context, batchSize int) (sent, failed int, err error)
}

// OrderSyncer runs a marketplace order sync. Implemented by the Shopee
// service.
type OrderSyncer interface {
	SyncOrders(ctx context.Context) (service.SyncResult, error)
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	scores ScoreRecalculator
	outbox OutboxDispatcher
	orders OrderSyncer
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, scores ScoreRecalculator, outbox OutboxDispatcher, orders OrderSyncer, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		scores: scores,
		outbox: outbox,
		orders: orders,
		log:    log,
	}

	mux.HandleFunc(TaskScoreRecalculate, w.handleScoreRecalculate)
	mux.HandleFunc(TaskOutboxDrain, w.handleOutboxDrain)
	mux.HandleFunc(TaskShopeeSync, w.handleShopeeSync)

	return w, nil
}

func (w *Worker) handleScoreRecalculate(ctx context.Context, task *asynq.Task) error {
	if w.scores == nil {
		return nil
	}

	payload, err := ParseScoreRecalculatePayload(task)
	if err != nil {
		return err
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return err
	}

	_, err = w.scores.RecalculateScore(ctx, leadID, payload.Force)
	return err
}

func (w *Worker) handleOutboxDrain(ctx context.Context, task *asynq.Task) error {
	if w.outbox == nil {
		return nil
	}

	payload, err := ParseOutboxDrainPayload(task)
	if err != nil {
		return err
	}

	batch := payload.BatchSize
	if batch < 1 {
		batch = defaultOutboxBatch
	}

	sent, failed, err := w.outbox.DispatchDue(ctx, batch)
	if err != nil {
		return err
	}
	if sent > 0 || failed > 0 {
		w.log.Info("outbox drained", "sent", sent, "failed", failed)
	}
	return nil
}

func (w *Worker) handleShopeeSync(ctx context.Context, task *asynq.Task) error {
	if w.orders == nil {
		return nil
	}

	_, err := w.orders.SyncOrders(ctx)
	return err
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
