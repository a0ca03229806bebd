package repository

import (
	"context"

	"conectaleads_backend/internal/leads/domain"

	"github.com/google/uuid"
)

type AppendInteractionParams struct {
	LeadID  uuid.UUID
	Type    string
	Channel *string
	Content string
}

// AppendInteraction adds one row to the lead's interaction log. The log is
// append-only; there is deliberately no update or delete counterpart.
func (r *Repository) AppendInteraction(ctx context.Context, params AppendInteractionParams) (domain.Interaction, error) {
	var interaction domain.Interaction
	err := r.pool.QueryRow(ctx, `
		INSERT INTO lead_interactions (lead_id, type, channel, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, lead_id, type, channel, content, created_at
	`, params.LeadID, params.Type, params.Channel, params.Content).Scan(
		&interaction.ID, &interaction.LeadID, &interaction.Type,
		&interaction.Channel, &interaction.Content, &interaction.CreatedAt,
	)
	return interaction, err
}

// ListInteractions returns the lead's full interaction history, newest first.
func (r *Repository) ListInteractions(ctx context.Context, leadID uuid.UUID) ([]domain.Interaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, type, channel, content, created_at
		FROM lead_interactions
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Interaction, 0)
	for rows.Next() {
		var interaction domain.Interaction
		if err := rows.Scan(
			&interaction.ID, &interaction.LeadID, &interaction.Type,
			&interaction.Channel, &interaction.Content, &interaction.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, interaction)
	}
	return items, rows.Err()
}
