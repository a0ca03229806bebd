package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskScoreRecalculate = "leads.score.recalculate"

const TaskOutboxDrain = "notification.outbox.drain"

const TaskShopeeSync = "shopee.orders.sync"

type ScoreRecalculatePayload struct {
	LeadID string `json:"leadId"`
	Force  bool   `json:"force"`
}

type OutboxDrainPayload struct {
	BatchSize int `json:"batchSize,omitempty"`
}

func NewScoreRecalculateTask(payload ScoreRecalculatePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskScoreRecalculate, data), nil
}

func ParseScoreRecalculatePayload(task *asynq.Task) (ScoreRecalculatePayload, error) {
	var payload ScoreRecalculatePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ScoreRecalculatePayload{}, err
	}
	return payload, nil
}

func NewOutboxDrainTask(payload OutboxDrainPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOutboxDrain, data), nil
}

func ParseOutboxDrainPayload(task *asynq.Task) (OutboxDrainPayload, error) {
	var payload OutboxDrainPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return OutboxDrainPayload{}, err
	}
	return payload, nil
}

func NewShopeeSyncTask() (*asynq.Task, error) {
	return asynq.NewTask(TaskShopeeSync, nil), nil
}
