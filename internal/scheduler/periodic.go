package scheduler

import (
	"fmt"

	"conectaleads_backend/platform/config"
	"conectaleads_backend/platform/logger"

	"github.com/hibiken/asynq"
)

const (
	outboxDrainInterval = "@every 1m"
	shopeeSyncInterval  = "@every 6h"
)

// Periodic registers the recurring jobs: the outbox drain every minute and
// the marketplace sync every six hours.
type Periodic struct {
	scheduler *asynq.Scheduler
	log       *logger.Logger
}

func NewPeriodic(cfg config.SchedulerConfig, shopeeEnabled bool, log *logger.Logger) (*Periodic, error) {
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

	scheduler := asynq.NewScheduler(opt, nil)

	drainTask, err := NewOutboxDrainTask(OutboxDrainPayload{})
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(outboxDrainInterval, drainTask, asynq.Queue(queue)); err != nil {
		return nil, err
	}

	if shopeeEnabled {
		syncTask, err := NewShopeeSyncTask()
		if err != nil {
			return nil, err
		}
		if _, err := scheduler.Register(shopeeSyncInterval, syncTask, asynq.Queue(queue)); err != nil {
			return nil, err
		}
	}

	return &Periodic{scheduler: scheduler, log: log}, nil
}

// Run starts the periodic scheduler and blocks until it stops.
func (p *Periodic) Run() {
	if p == nil || p.scheduler == nil {
		return
	}
	if err := p.scheduler.Run(); err != nil {
		p.log.Error("periodic scheduler stopped", "error", err)
	}
}

// Shutdown stops the periodic scheduler.
func (p *Periodic) Shutdown() {
	if p == nil || p.scheduler == nil {
		return
	}
	p.scheduler.Shutdown()
}
