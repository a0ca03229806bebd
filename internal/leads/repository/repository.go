package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"conectaleads_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

const leadColumns = `id, name, phone, email, source, score, score_overridden, stage,
	pipeline_id, pipeline_stage_id, last_message_intent, last_contact_at, created_at, updated_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanLead(row pgx.Row) (domain.Lead, error) {
	var lead domain.Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Phone, &lead.Email, &lead.Source,
		&lead.Score, &lead.ScoreOverridden, &lead.Stage,
		&lead.PipelineID, &lead.PipelineStageID, &lead.LastMessageIntent, &lead.LastContactAt,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	return lead, err
}

type CreateLeadParams struct {
	Name   string
	Phone  string
	Email  *string
	Source *string
	Stage  string
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (domain.Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		INSERT INTO leads (name, phone, email, source, stage)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+leadColumns+`
	`, params.Name, params.Phone, params.Email, params.Source, params.Stage))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM leads WHERE id = $1 AND deleted_at IS NULL
	`, id))
}

func (r *Repository) GetByPhone(ctx context.Context, phone string) (domain.Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM leads
		WHERE phone = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`, phone))
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (domain.Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM leads
		WHERE email = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`, email))
}

type ListLeadsParams struct {
	PipelineID *uuid.UUID
	Stage      *string
	Search     string
	Limit      int
	Offset     int
}

// List returns leads ordered by creation time descending, the order the
// kanban board expects within its buckets.
func (r *Repository) List(ctx context.Context, params ListLeadsParams) ([]domain.Lead, int, error) {
	if params.Limit <= 0 {
		params.Limit = 50
	}

	where := ` WHERE deleted_at IS NULL`
	args := []interface{}{}
	arg := 1

	if params.PipelineID != nil {
		where += ` AND pipeline_id = $` + strconv.Itoa(arg)
		args = append(args, *params.PipelineID)
		arg++
	}
	if params.Stage != nil {
		where += ` AND stage = $` + strconv.Itoa(arg)
		args = append(args, *params.Stage)
		arg++
	}
	if params.Search != "" {
		where += ` AND (name ILIKE '%' || $` + strconv.Itoa(arg) + ` || '%' OR phone ILIKE '%' || $` + strconv.Itoa(arg) + ` || '%')`
		args = append(args, params.Search)
		arg++
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + leadColumns + ` FROM leads` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(arg) + ` OFFSET $` + strconv.Itoa(arg+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}

	return leads, total, nil
}

// ListForBoard returns every non-deleted lead of a pipeline (or all
// pipeline-less leads when pipelineID is nil), newest first.
func (r *Repository) ListForBoard(ctx context.Context, pipelineID *uuid.UUID) ([]domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE deleted_at IS NULL`
	args := []interface{}{}
	if pipelineID != nil {
		query += ` AND pipeline_id = $1`
		args = append(args, *pipelineID)
	} else {
		query += ` AND pipeline_id IS NULL`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

type UpdateLeadParams struct {
	Name   *string
	Phone  *string
	Email  *string
	Source *string
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateLeadParams) (domain.Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		UPDATE leads SET
			name = COALESCE($2, name),
			phone = COALESCE($3, phone),
			email = COALESCE($4, email),
			source = COALESCE($5, source),
			updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+leadColumns+`
	`, id, params.Name, params.Phone, params.Email, params.Source))
}

// UpdateStage persists a stage move as one UPDATE so the legacy flat key and
// the pipeline references always change together.
func (r *Repository) UpdateStage(ctx context.Context, id uuid.UUID, stage string, pipelineID, pipelineStageID *uuid.UUID) (domain.Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		UPDATE leads SET stage = $2, pipeline_id = $3, pipeline_stage_id = $4, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+leadColumns+`
	`, id, stage, pipelineID, pipelineStageID))
}

// UpdateScore persists a recomputed score and the override flag state.
func (r *Repository) UpdateScore(ctx context.Context, id uuid.UUID, score int, overridden bool) (domain.Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		UPDATE leads SET score = $2, score_overridden = $3, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+leadColumns+`
	`, id, score, overridden))
}

// TouchLastContact records that the lead was contacted at the given time.
func (r *Repository) TouchLastContact(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE leads SET last_contact_at = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, id, at)
	return err
}

// SetLastMessageIntent records the detected intent of the lead's most recent
// inbound message.
func (r *Repository) SetLastMessageIntent(ctx context.Context, id uuid.UUID, intent *string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE leads SET last_message_intent = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, id, intent)
	return err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
