// Package scheduler provides the asynq-backed background job layer: the
// enqueue client, the task catalog, and the worker that runs them.
package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"

	"conectaleads_backend/platform/config"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
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

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueScoreRecalculate queues a recomputation of one lead's score. Tasks
// for the same lead land on the same queue, so the worker serializes them.
func (c *Client) EnqueueScoreRecalculate(ctx context.Context, leadID uuid.UUID, force bool) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewScoreRecalculateTask(ScoreRecalculatePayload{
		LeadID: leadID.String(),
		Force:  force,
	})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

// EnqueueOutboxDrain queues one pass over the notification outbox.
func (c *Client) EnqueueOutboxDrain(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewOutboxDrainTask(OutboxDrainPayload{})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

// EnqueueShopeeSync queues a marketplace order sync run.
func (c *Client) EnqueueShopeeSync(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewShopeeSyncTask()
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
