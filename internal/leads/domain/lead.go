// Package domain holds the pure lead-management data model shared by the
// scoring engine, the pipeline model, and the persistence layer. Nothing in
// this package performs I/O.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Urgency values recorded during qualification. The bot historically stored
// the literal answer "Quero comprar hoje" alongside the short code, so both
// spellings mean high urgency.
const (
	UrgencyNone     = "none"
	UrgencyNormal   = "normal"
	UrgencyHigh     = "high"
	UrgencyBuyToday = "Quero comprar hoje"
)

// Interest type values recorded during qualification.
const (
	InterestGeneral  = "general"
	InterestSpecific = "specific"
)

// Message intents detected from inbound conversation messages.
const (
	IntentPriceInquiry = "price_inquiry"
)

// Interaction types. Interactions are an append-only log; rows are never
// edited after creation.
const (
	InteractionOfferClick    = "offer_click"
	InteractionWhatsAppClick = "whatsapp_click"
	InteractionCall          = "call"
	InteractionEmail         = "email"
	InteractionMessage       = "message"
	InteractionMeeting       = "meeting"
	InteractionNote          = "note"
)

// Interaction channels.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelTelegram = "telegram"
	ChannelPhone    = "phone"
	ChannelEmail    = "email"
	ChannelSMS      = "sms"
)

// Lead is a prospective customer tracked through the sales pipeline.
// Phone is the primary external matching key.
type Lead struct {
	ID                uuid.UUID
	Name              string
	Phone             string
	Email             *string
	Source            *string
	Score             int
	ScoreOverridden   bool
	Stage             string
	PipelineID        *uuid.UUID
	PipelineStageID   *uuid.UUID
	LastMessageIntent *string
	LastContactAt     *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Qualification holds the structured answers characterizing a lead's purchase
// intent. Created lazily; a lead may have none.
type Qualification struct {
	ID               uuid.UUID
	LeadID           uuid.UUID
	Urgency          string
	InterestType     string
	CategoryInterest string
	BudgetRange      string
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HighUrgency reports whether the qualification records the "buy today"
// urgency, under either spelling.
func (q Qualification) HighUrgency() bool {
	return q.Urgency == UrgencyHigh || q.Urgency == UrgencyBuyToday
}

// Interaction is one logged touchpoint with a lead.
type Interaction struct {
	ID        uuid.UUID
	LeadID    uuid.UUID
	Type      string
	Channel   *string
	Content   string
	CreatedAt time.Time
}

// Pipeline is a named, ordered sequence of stages.
type Pipeline struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Stage is one step within a pipeline. Key is the short code used by legacy
// flat-stage consumers; OrderIndex is unique per pipeline.
type Stage struct {
	ID         uuid.UUID
	PipelineID uuid.UUID
	Key        string
	Name       string
	OrderIndex int
}
