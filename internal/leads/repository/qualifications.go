package repository

import (
	"context"
	"errors"

	"conectaleads_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetQualification returns the lead's qualification, or nil when the lead was
// never qualified. Absence is not an error; the scoring engine treats it as
// zero contribution.
func (r *Repository) GetQualification(ctx context.Context, leadID uuid.UUID) (*domain.Qualification, error) {
	var q domain.Qualification
	err := r.pool.QueryRow(ctx, `
		SELECT id, lead_id, urgency, interest_type, category_interest, budget_range, notes, created_at, updated_at
		FROM lead_qualifications WHERE lead_id = $1
	`, leadID).Scan(
		&q.ID, &q.LeadID, &q.Urgency, &q.InterestType,
		&q.CategoryInterest, &q.BudgetRange, &q.Notes,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

type UpsertQualificationParams struct {
	LeadID           uuid.UUID
	Urgency          string
	InterestType     string
	CategoryInterest string
	BudgetRange      string
	Notes            string
}

// UpsertQualification creates the lead's qualification lazily on first write
// and updates it afterwards. One row per lead.
func (r *Repository) UpsertQualification(ctx context.Context, params UpsertQualificationParams) (domain.Qualification, error) {
	var q domain.Qualification
	err := r.pool.QueryRow(ctx, `
		INSERT INTO lead_qualifications (lead_id, urgency, interest_type, category_interest, budget_range, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (lead_id) DO UPDATE SET
			urgency = EXCLUDED.urgency,
			interest_type = EXCLUDED.interest_type,
			category_interest = EXCLUDED.category_interest,
			budget_range = EXCLUDED.budget_range,
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING id, lead_id, urgency, interest_type, category_interest, budget_range, notes, created_at, updated_at
	`, params.LeadID, params.Urgency, params.InterestType, params.CategoryInterest, params.BudgetRange, params.Notes).Scan(
		&q.ID, &q.LeadID, &q.Urgency, &q.InterestType,
		&q.CategoryInterest, &q.BudgetRange, &q.Notes,
		&q.CreatedAt, &q.UpdatedAt,
	)
	return q, err
}
