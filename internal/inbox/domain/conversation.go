// Package domain holds the conversation data model for the admin inbox.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation statuses.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Message directions.
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Conversation groups the messages exchanged with one contact on one channel.
// ExternalID is the channel-side identifier (Telegram chat id, phone number,
// email address) used to route inbound messages to the right thread.
type Conversation struct {
	ID            uuid.UUID
	LeadID        *uuid.UUID
	Channel       string
	ExternalID    string
	Status        string
	LastMessageAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Message is one message within a conversation.
type Message struct {
	ID             uuid.UUID
	ConversationID uuid.UUID
	Direction      string
	Body           string
	CreatedAt      time.Time
}
