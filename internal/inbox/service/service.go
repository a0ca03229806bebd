// Package service implements the admin inbox use cases: ingesting inbound
// messages from any channel, threading them into conversations, and replying.
package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"conectaleads_backend/internal/events"
	"conectaleads_backend/internal/inbox/domain"
	"conectaleads_backend/internal/inbox/intent"
	"conectaleads_backend/internal/inbox/repository"
	leadsdomain "conectaleads_backend/internal/leads/domain"
	leadssvc "conectaleads_backend/internal/leads/service"
	"conectaleads_backend/platform/apperr"
	"conectaleads_backend/platform/logger"

	"github.com/google/uuid"
)

// LeadDirectory is the slice of the leads service the inbox needs: matching
// inbound senders to leads and feeding the scoring inputs.
type LeadDirectory interface {
	FindOrCreateByPhone(ctx context.Context, phoneNumber, name, source string) (leadsdomain.Lead, bool, error)
	RecordInteraction(ctx context.Context, leadID uuid.UUID, input leadssvc.RecordInteractionInput) (leadsdomain.Interaction, error)
	SetMessageIntent(ctx context.Context, leadID uuid.UUID, messageIntent string) error
}

// Sender delivers an outbound reply on the conversation's channel. Channels
// without a configured sender still store the reply; delivery is best-effort.
type Sender interface {
	Send(ctx context.Context, channel, externalID, body string) error
}

type Service struct {
	repo   *repository.Repository
	leads  LeadDirectory
	sender Sender
	bus    events.Bus
	log    *logger.Logger
}

func New(repo *repository.Repository, leads LeadDirectory, sender Sender, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, leads: leads, sender: sender, bus: bus, log: log}
}

type InboundMessage struct {
	Channel    string
	ExternalID string
	FromName   string
	Phone      string
	Body       string
	Source     string
}

// Ingest threads an inbound message into its conversation. When the sender's
// phone is known the message is tied to a lead: a `message` interaction is
// appended and, if the text reads like a price inquiry, the lead's last
// message intent is set so the next score recompute picks up the +25 rule.
func (s *Service) Ingest(ctx context.Context, msg InboundMessage) (domain.Message, error) {
	if msg.Body == "" {
		return domain.Message{}, apperr.Validation("message body is required").WithOp("inbox.Ingest")
	}
	if msg.ExternalID == "" {
		return domain.Message{}, apperr.Validation("external id is required").WithOp("inbox.Ingest")
	}

	var leadID *uuid.UUID
	if msg.Phone != "" {
		lead, _, err := s.leads.FindOrCreateByPhone(ctx, msg.Phone, msg.FromName, msg.Source)
		if err != nil {
			return domain.Message{}, err
		}
		leadID = &lead.ID
	}

	conv, err := s.repo.FindOrCreate(ctx, msg.Channel, msg.ExternalID, leadID)
	if err != nil {
		return domain.Message{}, apperr.Wrap(apperr.KindInternal, "failed to open conversation", err).WithOp("inbox.Ingest")
	}
	if conv.LeadID == nil && leadID != nil {
		if err := s.repo.AttachLead(ctx, conv.ID, *leadID); err != nil {
			s.log.DatabaseError("inbox.AttachLead", err)
		}
		conv.LeadID = leadID
	}

	stored, err := s.repo.AppendMessage(ctx, conv.ID, domain.DirectionInbound, msg.Body)
	if err != nil {
		return domain.Message{}, apperr.Wrap(apperr.KindInternal, "failed to store message", err).WithOp("inbox.Ingest")
	}

	if conv.LeadID != nil {
		// Intent first, so the interaction-triggered recompute sees it.
		if detected := intent.Detect(msg.Body); detected != intent.None {
			if err := s.leads.SetMessageIntent(ctx, *conv.LeadID, detected); err != nil {
				s.log.Error("failed to set message intent", "error", err, "leadId", *conv.LeadID)
			}
		}
		channel := msg.Channel
		if _, err := s.leads.RecordInteraction(ctx, *conv.LeadID, leadssvc.RecordInteractionInput{
			Type:    leadsdomain.InteractionMessage,
			Channel: &channel,
			Content: msg.Body,
		}); err != nil {
			s.log.Error("failed to record message interaction", "error", err, "leadId", *conv.LeadID)
		}
	}

	s.bus.Publish(ctx, events.InboundMessageReceived{
		BaseEvent:      events.NewBaseEvent(),
		ConversationID: conv.ID,
		MessageID:      stored.ID,
		LeadID:         conv.LeadID,
		Channel:        msg.Channel,
		Preview:        previewOf(msg.Body),
	})

	return stored, nil
}

const previewLimit = 120

// previewOf shortens a message body for notification payloads, never cutting
// through the middle of a multi-byte character.
func previewOf(body string) string {
	if len(body) <= previewLimit {
		return body
	}
	cut := previewLimit
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut]
}

func (s *Service) List(ctx context.Context, params repository.ListParams) ([]domain.Conversation, error) {
	conversations, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list conversations", err).WithOp("inbox.List")
	}
	return conversations, nil
}

// Get returns the conversation and its full message thread.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Conversation, []domain.Message, error) {
	conv, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Conversation{}, nil, apperr.NotFound("conversation not found")
	}
	if err != nil {
		return domain.Conversation{}, nil, apperr.Wrap(apperr.KindInternal, "failed to fetch conversation", err).WithOp("inbox.Get")
	}

	messages, err := s.repo.ListMessages(ctx, id)
	if err != nil {
		return domain.Conversation{}, nil, apperr.Wrap(apperr.KindInternal, "failed to fetch messages", err).WithOp("inbox.Get")
	}
	return conv, messages, nil
}

// Reply stores an outbound message and attempts delivery on the
// conversation's channel. Storage is authoritative; a delivery failure is
// logged, not surfaced, matching how the channel relays behave.
func (s *Service) Reply(ctx context.Context, id uuid.UUID, body string) (domain.Message, error) {
	if body == "" {
		return domain.Message{}, apperr.Validation("reply body is required").WithOp("inbox.Reply")
	}

	conv, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Message{}, apperr.NotFound("conversation not found")
	}
	if err != nil {
		return domain.Message{}, apperr.Wrap(apperr.KindInternal, "failed to fetch conversation", err).WithOp("inbox.Reply")
	}
	if conv.Status == domain.StatusClosed {
		return domain.Message{}, apperr.Conflict("conversation is closed")
	}

	msg, err := s.repo.AppendMessage(ctx, conv.ID, domain.DirectionOutbound, body)
	if err != nil {
		return domain.Message{}, apperr.Wrap(apperr.KindInternal, "failed to store reply", err).WithOp("inbox.Reply")
	}

	if s.sender != nil {
		if err := s.sender.Send(ctx, conv.Channel, conv.ExternalID, body); err != nil {
			s.log.Error("reply delivery failed", "error", err, "conversationId", conv.ID, "channel", conv.Channel)
		}
	}

	return msg, nil
}

func (s *Service) Close(ctx context.Context, id uuid.UUID) (domain.Conversation, error) {
	conv, err := s.repo.SetStatus(ctx, id, domain.StatusClosed)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Conversation{}, apperr.NotFound("conversation not found")
	}
	if err != nil {
		return domain.Conversation{}, apperr.Wrap(apperr.KindInternal, "failed to close conversation", err).WithOp("inbox.Close")
	}
	return conv, nil
}

func (s *Service) Reopen(ctx context.Context, id uuid.UUID) (domain.Conversation, error) {
	conv, err := s.repo.SetStatus(ctx, id, domain.StatusOpen)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Conversation{}, apperr.NotFound("conversation not found")
	}
	if err != nil {
		return domain.Conversation{}, apperr.Wrap(apperr.KindInternal, "failed to reopen conversation", err).WithOp("inbox.Reopen")
	}
	return conv, nil
}
