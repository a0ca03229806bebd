// Package service implements pipeline and stage administration: creating
// boards, managing their stage lists, and keeping stage order consistent.
package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"conectaleads_backend/internal/leads/domain"
	"conectaleads_backend/internal/leads/pipeline"
	"conectaleads_backend/internal/pipelines/repository"
	"conectaleads_backend/platform/apperr"

	"github.com/google/uuid"
)

var stageKeyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

type Service struct {
	repo *repository.Repository
}

func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

type StageInput struct {
	Key  string
	Name string
}

// CreatePipeline creates a board with the given stages, in the given order.
// With no stages supplied the default flat stage set is materialized so the
// new board is immediately usable.
func (s *Service) CreatePipeline(ctx context.Context, name string, stages []StageInput) (domain.Pipeline, []domain.Stage, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Pipeline{}, nil, apperr.Validation("pipeline name is required").WithOp("pipelines.CreatePipeline")
	}

	if len(stages) == 0 {
		for _, stage := range pipeline.DefaultStages() {
			stages = append(stages, StageInput{Key: stage.Key, Name: stage.Name})
		}
	}

	seen := make(map[string]bool, len(stages))
	for _, stage := range stages {
		if !stageKeyPattern.MatchString(stage.Key) {
			return domain.Pipeline{}, nil, apperr.Validation("stage key must be lowercase snake_case").WithOp("pipelines.CreatePipeline")
		}
		if seen[stage.Key] {
			return domain.Pipeline{}, nil, apperr.Validation("duplicate stage key: " + stage.Key).WithOp("pipelines.CreatePipeline")
		}
		seen[stage.Key] = true
	}

	created, err := s.repo.CreatePipeline(ctx, strings.TrimSpace(name))
	if err != nil {
		return domain.Pipeline{}, nil, apperr.Wrap(apperr.KindInternal, "failed to create pipeline", err).WithOp("pipelines.CreatePipeline")
	}

	createdStages := make([]domain.Stage, 0, len(stages))
	for index, stage := range stages {
		row, err := s.repo.CreateStage(ctx, repository.CreateStageParams{
			PipelineID: created.ID,
			Key:        stage.Key,
			Name:       stage.Name,
			OrderIndex: index,
		})
		if err != nil {
			return domain.Pipeline{}, nil, apperr.Wrap(apperr.KindInternal, "failed to create stage", err).WithOp("pipelines.CreatePipeline")
		}
		createdStages = append(createdStages, row)
	}

	return created, createdStages, nil
}

func (s *Service) ListPipelines(ctx context.Context) ([]domain.Pipeline, error) {
	pipelines, err := s.repo.ListPipelines(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list pipelines", err).WithOp("pipelines.ListPipelines")
	}
	return pipelines, nil
}

// GetPipeline returns the pipeline and its stages in board order.
func (s *Service) GetPipeline(ctx context.Context, id uuid.UUID) (domain.Pipeline, []domain.Stage, error) {
	p, err := s.repo.GetPipeline(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Pipeline{}, nil, apperr.NotFound("pipeline not found")
	}
	if err != nil {
		return domain.Pipeline{}, nil, apperr.Wrap(apperr.KindInternal, "failed to fetch pipeline", err).WithOp("pipelines.GetPipeline")
	}

	stages, err := s.repo.ListStages(ctx, id)
	if err != nil {
		return domain.Pipeline{}, nil, apperr.Wrap(apperr.KindInternal, "failed to fetch stages", err).WithOp("pipelines.GetPipeline")
	}

	return p, pipeline.SortStages(stages), nil
}

func (s *Service) RenamePipeline(ctx context.Context, id uuid.UUID, name string) (domain.Pipeline, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Pipeline{}, apperr.Validation("pipeline name is required").WithOp("pipelines.RenamePipeline")
	}

	p, err := s.repo.RenamePipeline(ctx, id, strings.TrimSpace(name))
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Pipeline{}, apperr.NotFound("pipeline not found")
	}
	if err != nil {
		return domain.Pipeline{}, apperr.Wrap(apperr.KindInternal, "failed to rename pipeline", err).WithOp("pipelines.RenamePipeline")
	}
	return p, nil
}

func (s *Service) DeletePipeline(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeletePipeline(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("pipeline not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete pipeline", err).WithOp("pipelines.DeletePipeline")
	}
	return nil
}

// AddStage appends a stage at the end of the board.
func (s *Service) AddStage(ctx context.Context, pipelineID uuid.UUID, input StageInput) (domain.Stage, error) {
	if !stageKeyPattern.MatchString(input.Key) {
		return domain.Stage{}, apperr.Validation("stage key must be lowercase snake_case").WithOp("pipelines.AddStage")
	}

	existing, err := s.repo.ListStages(ctx, pipelineID)
	if err != nil {
		return domain.Stage{}, apperr.Wrap(apperr.KindInternal, "failed to fetch stages", err).WithOp("pipelines.AddStage")
	}

	nextIndex := 0
	for _, stage := range existing {
		if stage.OrderIndex >= nextIndex {
			nextIndex = stage.OrderIndex + 1
		}
	}

	stage, err := s.repo.CreateStage(ctx, repository.CreateStageParams{
		PipelineID: pipelineID,
		Key:        input.Key,
		Name:       input.Name,
		OrderIndex: nextIndex,
	})
	if errors.Is(err, repository.ErrDuplicateKey) {
		return domain.Stage{}, apperr.Conflict("stage key already exists in pipeline")
	}
	if err != nil {
		return domain.Stage{}, apperr.Wrap(apperr.KindInternal, "failed to create stage", err).WithOp("pipelines.AddStage")
	}
	return stage, nil
}

func (s *Service) RenameStage(ctx context.Context, stageID uuid.UUID, name string) (domain.Stage, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Stage{}, apperr.Validation("stage name is required").WithOp("pipelines.RenameStage")
	}

	stage, err := s.repo.RenameStage(ctx, stageID, strings.TrimSpace(name))
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Stage{}, apperr.NotFound("stage not found")
	}
	if err != nil {
		return domain.Stage{}, apperr.Wrap(apperr.KindInternal, "failed to rename stage", err).WithOp("pipelines.RenameStage")
	}
	return stage, nil
}

// ReorderStages applies a full new ordering. The ID list must be a permutation
// of the pipeline's stages; partial reorders are rejected so order_index never
// ends up with gaps or duplicates.
func (s *Service) ReorderStages(ctx context.Context, pipelineID uuid.UUID, orderedIDs []uuid.UUID) ([]domain.Stage, error) {
	existing, err := s.repo.ListStages(ctx, pipelineID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to fetch stages", err).WithOp("pipelines.ReorderStages")
	}
	if len(orderedIDs) != len(existing) {
		return nil, apperr.Validation("reorder must include every stage exactly once").WithOp("pipelines.ReorderStages")
	}

	known := make(map[uuid.UUID]bool, len(existing))
	for _, stage := range existing {
		known[stage.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !known[id] || seen[id] {
			return nil, apperr.Validation("reorder must include every stage exactly once").WithOp("pipelines.ReorderStages")
		}
		seen[id] = true
	}

	if err := s.repo.ReorderStages(ctx, pipelineID, orderedIDs); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to reorder stages", err).WithOp("pipelines.ReorderStages")
	}

	stages, err := s.repo.ListStages(ctx, pipelineID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to fetch stages", err).WithOp("pipelines.ReorderStages")
	}
	return stages, nil
}

func (s *Service) DeleteStage(ctx context.Context, stageID uuid.UUID) error {
	err := s.repo.DeleteStage(ctx, stageID)
	if errors.Is(err, repository.ErrStageInUse) {
		return apperr.Conflict("stage has leads assigned; move them first")
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("stage not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete stage", err).WithOp("pipelines.DeleteStage")
	}
	return nil
}
