package repository

import (
	"context"
	"errors"
	"strconv"

	"conectaleads_backend/internal/inbox/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("conversation not found")

const conversationColumns = `id, lead_id, channel, external_id, status, last_message_at, created_at, updated_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanConversation(row pgx.Row) (domain.Conversation, error) {
	var c domain.Conversation
	err := row.Scan(
		&c.ID, &c.LeadID, &c.Channel, &c.ExternalID,
		&c.Status, &c.LastMessageAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Conversation{}, ErrNotFound
	}
	return c, err
}

// FindOrCreate returns the open conversation for a channel/external-id pair,
// creating one when none exists. A closed conversation is reopened rather
// than duplicated, so one contact keeps one thread per channel.
func (r *Repository) FindOrCreate(ctx context.Context, channel, externalID string, leadID *uuid.UUID) (domain.Conversation, error) {
	conv, err := scanConversation(r.pool.QueryRow(ctx, `
		SELECT `+conversationColumns+` FROM conversations
		WHERE channel = $1 AND external_id = $2
	`, channel, externalID))
	if err == nil {
		if conv.Status == domain.StatusClosed {
			return scanConversation(r.pool.QueryRow(ctx, `
				UPDATE conversations SET status = $2, updated_at = now()
				WHERE id = $1
				RETURNING `+conversationColumns+`
			`, conv.ID, domain.StatusOpen))
		}
		return conv, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return domain.Conversation{}, err
	}

	return scanConversation(r.pool.QueryRow(ctx, `
		INSERT INTO conversations (lead_id, channel, external_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (channel, external_id) DO UPDATE SET status = $4, updated_at = now()
		RETURNING `+conversationColumns+`
	`, leadID, channel, externalID, domain.StatusOpen))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.Conversation, error) {
	return scanConversation(r.pool.QueryRow(ctx, `
		SELECT `+conversationColumns+` FROM conversations WHERE id = $1
	`, id))
}

type ListParams struct {
	Status  *string
	Channel *string
	Limit   int
	Offset  int
}

// List returns conversations ordered by most recent activity first.
func (r *Repository) List(ctx context.Context, params ListParams) ([]domain.Conversation, error) {
	if params.Limit <= 0 {
		params.Limit = 50
	}

	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE 1=1`
	args := []interface{}{}
	arg := 1
	if params.Status != nil {
		query += ` AND status = $` + strconv.Itoa(arg)
		args = append(args, *params.Status)
		arg++
	}
	if params.Channel != nil {
		query += ` AND channel = $` + strconv.Itoa(arg)
		args = append(args, *params.Channel)
		arg++
	}
	query += ` ORDER BY last_message_at DESC NULLS LAST LIMIT $` + strconv.Itoa(arg) + ` OFFSET $` + strconv.Itoa(arg+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := make([]domain.Conversation, 0)
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, conv)
	}
	return conversations, rows.Err()
}

func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, status string) (domain.Conversation, error) {
	return scanConversation(r.pool.QueryRow(ctx, `
		UPDATE conversations SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+conversationColumns+`
	`, id, status))
}

func (r *Repository) AttachLead(ctx context.Context, id, leadID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE conversations SET lead_id = $2, updated_at = now()
		WHERE id = $1 AND lead_id IS NULL
	`, id, leadID)
	return err
}

// AppendMessage adds one message and bumps the conversation's activity
// timestamp in the same transaction.
func (r *Repository) AppendMessage(ctx context.Context, conversationID uuid.UUID, direction, body string) (domain.Message, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Message{}, err
	}
	defer tx.Rollback(ctx)

	var msg domain.Message
	err = tx.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, direction, body)
		VALUES ($1, $2, $3)
		RETURNING id, conversation_id, direction, body, created_at
	`, conversationID, direction, body).Scan(
		&msg.ID, &msg.ConversationID, &msg.Direction, &msg.Body, &msg.CreatedAt,
	)
	if err != nil {
		return domain.Message{}, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE conversations SET last_message_at = $2, updated_at = now()
		WHERE id = $1
	`, conversationID, msg.CreatedAt); err != nil {
		return domain.Message{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

// ListMessages returns the conversation's messages oldest first, the order
// the inbox thread renders them.
func (r *Repository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, conversation_id, direction, body, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]domain.Message, 0)
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Direction, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
