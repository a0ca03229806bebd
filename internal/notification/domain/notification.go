// Package domain holds the notification outbox data model.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Outbox entry statuses.
const (
	StatusPending = "pending"
	StatusSending = "sending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Delivery channels.
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
)

// Notification is one queued outbound notification. Entries are written by
// event subscribers and drained by the worker, giving at-least-once delivery
// across process restarts.
type Notification struct {
	ID            uuid.UUID
	Channel       string
	Recipient     string
	Subject       string
	Body          string
	Status        string
	Attempts      int
	NextAttemptAt time.Time
	CreatedAt     time.Time
	SentAt        *time.Time
}
