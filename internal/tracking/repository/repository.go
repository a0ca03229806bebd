package repository

import (
	"context"
	"strconv"
	"time"

	"conectaleads_backend/internal/tracking/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type InsertEventParams struct {
	Type        string
	SessionID   string
	Path        string
	Referrer    string
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
	UTMContent  string
	UTMTerm     string
	Data        map[string]interface{}
}

// Insert appends one tracking event. Data marshals through pgx's jsonb
// support.
func (r *Repository) Insert(ctx context.Context, params InsertEventParams) (domain.Event, error) {
	var event domain.Event
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tracking_events
			(type, session_id, path, referrer, utm_source, utm_medium, utm_campaign, utm_content, utm_term, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, type, session_id, path, referrer,
			utm_source, utm_medium, utm_campaign, utm_content, utm_term, data, created_at
	`, params.Type, params.SessionID, params.Path, params.Referrer,
		params.UTMSource, params.UTMMedium, params.UTMCampaign, params.UTMContent, params.UTMTerm,
		params.Data,
	).Scan(
		&event.ID, &event.Type, &event.SessionID, &event.Path, &event.Referrer,
		&event.UTMSource, &event.UTMMedium, &event.UTMCampaign, &event.UTMContent, &event.UTMTerm,
		&event.Data, &event.CreatedAt,
	)
	return event, err
}

type ListParams struct {
	Type      *string
	SessionID *string
	Since     *time.Time
	Limit     int
	Offset    int
}

// List returns events newest first for the admin analytics view.
func (r *Repository) List(ctx context.Context, params ListParams) ([]domain.Event, error) {
	if params.Limit <= 0 {
		params.Limit = 100
	}

	query := `SELECT id, type, session_id, path, referrer,
		utm_source, utm_medium, utm_campaign, utm_content, utm_term, data, created_at
		FROM tracking_events WHERE 1=1`
	args := []interface{}{}
	arg := 1

	if params.Type != nil {
		query += ` AND type = $` + strconv.Itoa(arg)
		args = append(args, *params.Type)
		arg++
	}
	if params.SessionID != nil {
		query += ` AND session_id = $` + strconv.Itoa(arg)
		args = append(args, *params.SessionID)
		arg++
	}
	if params.Since != nil {
		query += ` AND created_at >= $` + strconv.Itoa(arg)
		args = append(args, *params.Since)
		arg++
	}
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(arg) + ` OFFSET $` + strconv.Itoa(arg+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.ID, &event.Type, &event.SessionID, &event.Path, &event.Referrer,
			&event.UTMSource, &event.UTMMedium, &event.UTMCampaign, &event.UTMContent, &event.UTMTerm,
			&event.Data, &event.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// CountByType aggregates event counts per type since the given time, the
// input for the admin dashboard's funnel widget.
func (r *Repository) CountByType(ctx context.Context, since time.Time) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT type, COUNT(*) FROM tracking_events
		WHERE created_at >= $1
		GROUP BY type
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, err
		}
		counts[eventType] = count
	}
	return counts, rows.Err()
}
