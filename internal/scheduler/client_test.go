package scheduler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
)

type stubSchedulerConfig struct {
	redisURL string
}

func (c stubSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c stubSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c stubSchedulerConfig) GetAsynqQueueName() string { return "default" }
func (c stubSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestNewClient_RequiresRedisURL(t *testing.T) {
	if _, err := NewClient(stubSchedulerConfig{}); err == nil {
		t.Fatal("expected error when redis url is empty")
	}
}

func TestEnqueueScoreRecalculate_WritesToQueue(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(stubSchedulerConfig{redisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	leadID := uuid.MustParse("0b2a8f6e-23a1-4f8c-9f60-1a2b3c4d5e6f")
	if err := client.EnqueueScoreRecalculate(ctx, leadID, false); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	found := false
	for _, key := range mr.Keys() {
		if strings.HasPrefix(key, "asynq:") {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected asynq keys in redis after enqueue")
	}
}

func TestParseScoreRecalculatePayload_RoundTrip(t *testing.T) {
	task, err := NewScoreRecalculateTask(ScoreRecalculatePayload{LeadID: "abc", Force: true})
	if err != nil {
		t.Fatalf("new task: %v", err)
	}

	payload, err := ParseScoreRecalculatePayload(task)
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if payload.LeadID != "abc" || !payload.Force {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}
