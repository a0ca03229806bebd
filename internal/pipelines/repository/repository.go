package repository

import (
	"context"
	"errors"

	"conectaleads_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("pipeline not found")
	ErrStageInUse   = errors.New("stage has leads assigned")
	ErrDuplicateKey = errors.New("stage key already exists in pipeline")
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CreatePipeline(ctx context.Context, name string) (domain.Pipeline, error) {
	var p domain.Pipeline
	err := r.pool.QueryRow(ctx, `
		INSERT INTO pipelines (name) VALUES ($1)
		RETURNING id, name, created_at
	`, name).Scan(&p.ID, &p.Name, &p.CreatedAt)
	return p, err
}

func (r *Repository) GetPipeline(ctx context.Context, id uuid.UUID) (domain.Pipeline, error) {
	var p domain.Pipeline
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM pipelines WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Pipeline{}, ErrNotFound
	}
	return p, err
}

func (r *Repository) ListPipelines(ctx context.Context) ([]domain.Pipeline, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at FROM pipelines ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pipelines := make([]domain.Pipeline, 0)
	for rows.Next() {
		var p domain.Pipeline
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		pipelines = append(pipelines, p)
	}
	return pipelines, rows.Err()
}

func (r *Repository) RenamePipeline(ctx context.Context, id uuid.UUID, name string) (domain.Pipeline, error) {
	var p domain.Pipeline
	err := r.pool.QueryRow(ctx, `
		UPDATE pipelines SET name = $2 WHERE id = $1
		RETURNING id, name, created_at
	`, id, name).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Pipeline{}, ErrNotFound
	}
	return p, err
}

// DeletePipeline removes a pipeline and its stages. Leads that referenced the
// pipeline fall back to the flat stage model; their legacy stage key is kept.
func (r *Repository) DeletePipeline(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE leads SET pipeline_id = NULL, pipeline_stage_id = NULL, updated_at = now()
		WHERE pipeline_id = $1
		   OR pipeline_stage_id IN (SELECT id FROM pipeline_stages WHERE pipeline_id = $1)
	`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM pipeline_stages WHERE pipeline_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM pipelines WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

// ListStages returns the pipeline's stages ordered by order_index. Implements
// the leads service's StageProvider.
func (r *Repository) ListStages(ctx context.Context, pipelineID uuid.UUID) ([]domain.Stage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, pipeline_id, key, name, order_index
		FROM pipeline_stages
		WHERE pipeline_id = $1
		ORDER BY order_index
	`, pipelineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stages := make([]domain.Stage, 0)
	for rows.Next() {
		var s domain.Stage
		if err := rows.Scan(&s.ID, &s.PipelineID, &s.Key, &s.Name, &s.OrderIndex); err != nil {
			return nil, err
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}

type CreateStageParams struct {
	PipelineID uuid.UUID
	Key        string
	Name       string
	OrderIndex int
}

func (r *Repository) CreateStage(ctx context.Context, params CreateStageParams) (domain.Stage, error) {
	var s domain.Stage
	err := r.pool.QueryRow(ctx, `
		INSERT INTO pipeline_stages (pipeline_id, key, name, order_index)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (pipeline_id, key) DO NOTHING
		RETURNING id, pipeline_id, key, name, order_index
	`, params.PipelineID, params.Key, params.Name, params.OrderIndex).Scan(
		&s.ID, &s.PipelineID, &s.Key, &s.Name, &s.OrderIndex,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Stage{}, ErrDuplicateKey
	}
	return s, err
}

func (r *Repository) RenameStage(ctx context.Context, stageID uuid.UUID, name string) (domain.Stage, error) {
	var s domain.Stage
	err := r.pool.QueryRow(ctx, `
		UPDATE pipeline_stages SET name = $2 WHERE id = $1
		RETURNING id, pipeline_id, key, name, order_index
	`, stageID, name).Scan(&s.ID, &s.PipelineID, &s.Key, &s.Name, &s.OrderIndex)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Stage{}, ErrNotFound
	}
	return s, err
}

// ReorderStages rewrites order_index for every stage of the pipeline in one
// transaction. orderedIDs must contain each stage exactly once; the caller
// validates that.
func (r *Repository) ReorderStages(ctx context.Context, pipelineID uuid.UUID, orderedIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for index, stageID := range orderedIDs {
		tag, err := tx.Exec(ctx, `
			UPDATE pipeline_stages SET order_index = $3
			WHERE id = $1 AND pipeline_id = $2
		`, stageID, pipelineID, index)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
	}

	return tx.Commit(ctx)
}

// DeleteStage removes a stage. Fails with ErrStageInUse while any lead still
// sits on it; the caller moves leads off first. The in-use check and the
// delete run in one transaction with the stage row locked, so a lead moved
// onto the stage concurrently cannot end up referencing a deleted stage.
func (r *Repository) DeleteStage(ctx context.Context, stageID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
		SELECT id FROM pipeline_stages WHERE id = $1 FOR UPDATE
	`, stageID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	var inUse int
	if err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM leads WHERE pipeline_stage_id = $1 AND deleted_at IS NULL
	`, stageID).Scan(&inUse); err != nil {
		return err
	}
	if inUse > 0 {
		return ErrStageInUse
	}

	// Soft-deleted leads may still point at the stage; detach them so the
	// foreign key lets the delete through.
	if _, err := tx.Exec(ctx, `
		UPDATE leads SET pipeline_stage_id = NULL
		WHERE pipeline_stage_id = $1 AND deleted_at IS NOT NULL
	`, stageID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM pipeline_stages WHERE id = $1`, stageID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
