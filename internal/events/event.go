// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"conectaleads_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead is created, whether by an inbound
// channel event or manual admin entry.
type LeadCreated struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	Name   string    `json:"name"`
	Phone  string    `json:"phone"`
	Source string    `json:"source,omitempty"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// InteractionRecorded is published after an interaction row is appended to a
// lead's history. Scoring listens to this to keep scores current.
type InteractionRecorded struct {
	BaseEvent
	LeadID          uuid.UUID `json:"leadId"`
	InteractionID   uuid.UUID `json:"interactionId"`
	InteractionType string    `json:"interactionType"`
	Channel         string    `json:"channel,omitempty"`
}

func (e InteractionRecorded) EventName() string { return "leads.interaction.recorded" }

// LeadQualified is published when a lead's qualification answers are created
// or updated.
type LeadQualified struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
}

func (e LeadQualified) EventName() string { return "leads.lead.qualified" }

// LeadStageChanged is published when a lead moves to a different stage.
type LeadStageChanged struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	OldStage string    `json:"oldStage"`
	NewStage string    `json:"newStage"`
}

func (e LeadStageChanged) EventName() string { return "leads.stage.changed" }

// LeadScoreRecalculated is published after a score recomputation is persisted.
type LeadScoreRecalculated struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	OldScore int       `json:"oldScore"`
	NewScore int       `json:"newScore"`
}

func (e LeadScoreRecalculated) EventName() string { return "leads.score.recalculated" }

// =============================================================================
// Inbox Domain Events
// =============================================================================

// InboundMessageReceived is published when a message arrives on any channel,
// via webhook relay or the admin inbox.
type InboundMessageReceived struct {
	BaseEvent
	ConversationID uuid.UUID  `json:"conversationId"`
	MessageID      uuid.UUID  `json:"messageId"`
	LeadID         *uuid.UUID `json:"leadId,omitempty"`
	Channel        string     `json:"channel"`
	Preview        string     `json:"preview,omitempty"`
}

func (e InboundMessageReceived) EventName() string { return "inbox.message.received" }

// =============================================================================
// Shopee Domain Events
// =============================================================================

// ShopeeOrdersSynced is published after a sync run finishes.
type ShopeeOrdersSynced struct {
	BaseEvent
	Fetched  int `json:"fetched"`
	Upserted int `json:"upserted"`
	Failed   int `json:"failed"`
}

func (e ShopeeOrdersSynced) EventName() string { return "shopee.orders.synced" }
