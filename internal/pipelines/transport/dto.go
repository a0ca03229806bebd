package transport

import (
	"time"

	"conectaleads_backend/internal/leads/domain"

	"github.com/google/uuid"
)

type StageInput struct {
	Key  string `json:"key" validate:"required,min=1,max=50"`
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreatePipelineRequest struct {
	Name   string       `json:"name" validate:"required,min=1,max=100"`
	Stages []StageInput `json:"stages,omitempty" validate:"omitempty,dive"`
}

type RenameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type AddStageRequest struct {
	Key  string `json:"key" validate:"required,min=1,max=50"`
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type ReorderStagesRequest struct {
	StageIDs []uuid.UUID `json:"stageIds" validate:"required,min=1"`
}

type StageResponse struct {
	ID         uuid.UUID `json:"id"`
	PipelineID uuid.UUID `json:"pipelineId"`
	Key        string    `json:"key"`
	Name       string    `json:"name"`
	OrderIndex int       `json:"orderIndex"`
}

func ToStageResponse(s domain.Stage) StageResponse {
	return StageResponse{
		ID:         s.ID,
		PipelineID: s.PipelineID,
		Key:        s.Key,
		Name:       s.Name,
		OrderIndex: s.OrderIndex,
	}
}

func ToStageResponses(stages []domain.Stage) []StageResponse {
	out := make([]StageResponse, 0, len(stages))
	for _, s := range stages {
		out = append(out, ToStageResponse(s))
	}
	return out
}

type PipelineResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Stages    []StageResponse `json:"stages,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func ToPipelineResponse(p domain.Pipeline, stages []domain.Stage) PipelineResponse {
	return PipelineResponse{
		ID:        p.ID,
		Name:      p.Name,
		Stages:    ToStageResponses(stages),
		CreatedAt: p.CreatedAt,
	}
}
