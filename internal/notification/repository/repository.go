package repository

import (
	"context"
	"time"

	"conectaleads_backend/internal/notification/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const notificationColumns = `id, channel, recipient, subject, body, status, attempts, next_attempt_at, created_at, sent_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Enqueue writes one pending outbox entry, due immediately.
func (r *Repository) Enqueue(ctx context.Context, channel, recipient, subject, body string) (domain.Notification, error) {
	var n domain.Notification
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notification_outbox (channel, recipient, subject, body, status, next_attempt_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING `+notificationColumns+`
	`, channel, recipient, subject, body, domain.StatusPending).Scan(
		&n.ID, &n.Channel, &n.Recipient, &n.Subject, &n.Body,
		&n.Status, &n.Attempts, &n.NextAttemptAt, &n.CreatedAt, &n.SentAt,
	)
	return n, err
}

// ClaimDue atomically flips up to limit due pending entries to `sending` and
// returns them. SKIP LOCKED keeps concurrent workers from claiming the same
// rows; a crashed worker's claims are re-queued by MarkRetry's caller on the
// next run.
func (r *Repository) ClaimDue(ctx context.Context, limit int) ([]domain.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE notification_outbox SET status = $1
		WHERE id IN (
			SELECT id FROM notification_outbox
			WHERE status = $2 AND next_attempt_at <= now()
			ORDER BY next_attempt_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING `+notificationColumns+`
	`, domain.StatusSending, domain.StatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID, &n.Channel, &n.Recipient, &n.Subject, &n.Body,
			&n.Status, &n.Attempts, &n.NextAttemptAt, &n.CreatedAt, &n.SentAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE notification_outbox SET status = $2, sent_at = now()
		WHERE id = $1
	`, id, domain.StatusSent)
	return err
}

// MarkRetry reschedules a failed attempt, or marks the entry failed for good
// once attempts are exhausted.
func (r *Repository) MarkRetry(ctx context.Context, id uuid.UUID, attempts, maxAttempts int, backoff time.Duration) error {
	if attempts >= maxAttempts {
		_, err := r.pool.Exec(ctx, `
			UPDATE notification_outbox SET status = $2, attempts = $3
			WHERE id = $1
		`, id, domain.StatusFailed, attempts)
		return err
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE notification_outbox SET status = $2, attempts = $3, next_attempt_at = now() + $4
		WHERE id = $1
	`, id, domain.StatusPending, attempts, backoff)
	return err
}

// RequeueStuck returns `sending` rows older than the grace period to
// `pending`, recovering claims lost to a crashed worker.
func (r *Repository) RequeueStuck(ctx context.Context, olderThan time.Duration) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE notification_outbox SET status = $1
		WHERE status = $2 AND next_attempt_at <= now() - $3
	`, domain.StatusPending, domain.StatusSending, olderThan)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
