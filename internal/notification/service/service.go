// Package service implements the notification pipeline: domain events write
// an outbox, the worker drains it through the channel senders.
package service

import (
	"context"
	"fmt"
	"time"

	"conectaleads_backend/internal/events"
	"conectaleads_backend/internal/notification/domain"
	"conectaleads_backend/internal/notification/repository"
	"conectaleads_backend/platform/logger"
)

const (
	maxAttempts  = 5
	retryBackoff = 2 * time.Minute
	stuckAfter   = 10 * time.Minute
)

// EmailSender delivers one rendered notification email.
type EmailSender interface {
	SendNotification(ctx context.Context, toEmail, subject, heading, body string) error
}

// WhatsAppSender delivers one WhatsApp text message.
type WhatsAppSender interface {
	Send(ctx context.Context, to, body string) error
}

type Service struct {
	repo       *repository.Repository
	email      EmailSender
	whatsapp   WhatsAppSender
	adminEmail string
	log        *logger.Logger
}

func New(repo *repository.Repository, email EmailSender, whatsapp WhatsAppSender, adminEmail string, log *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		email:      email,
		whatsapp:   whatsapp,
		adminEmail: adminEmail,
		log:        log,
	}
}

// Enqueue writes one outbox entry for later delivery.
func (s *Service) Enqueue(ctx context.Context, channel, recipient, subject, body string) error {
	if recipient == "" {
		return nil
	}
	if _, err := s.repo.Enqueue(ctx, channel, recipient, subject, body); err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

// DispatchDue drains one batch of due outbox entries. Called by the worker's
// periodic task; safe to run concurrently thanks to the claiming query.
func (s *Service) DispatchDue(ctx context.Context, batchSize int) (sent, failed int, err error) {
	if requeued, err := s.repo.RequeueStuck(ctx, stuckAfter); err != nil {
		s.log.DatabaseError("notification.RequeueStuck", err)
	} else if requeued > 0 {
		s.log.Warn("requeued stuck notifications", "count", requeued)
	}

	due, err := s.repo.ClaimDue(ctx, batchSize)
	if err != nil {
		return 0, 0, fmt.Errorf("claim due notifications: %w", err)
	}

	for _, n := range due {
		if err := s.deliver(ctx, n); err != nil {
			failed++
			s.log.Error("notification delivery failed",
				"error", err, "notificationId", n.ID, "channel", n.Channel, "attempt", n.Attempts+1)
			if err := s.repo.MarkRetry(ctx, n.ID, n.Attempts+1, maxAttempts, retryBackoff); err != nil {
				s.log.DatabaseError("notification.MarkRetry", err)
			}
			continue
		}
		sent++
		if err := s.repo.MarkSent(ctx, n.ID); err != nil {
			s.log.DatabaseError("notification.MarkSent", err)
		}
	}

	return sent, failed, nil
}

func (s *Service) deliver(ctx context.Context, n domain.Notification) error {
	switch n.Channel {
	case domain.ChannelEmail:
		return s.email.SendNotification(ctx, n.Recipient, n.Subject, n.Subject, n.Body)
	case domain.ChannelWhatsApp:
		return s.whatsapp.Send(ctx, n.Recipient, n.Body)
	default:
		return fmt.Errorf("unsupported channel %q", n.Channel)
	}
}

// SubscribeAll wires the notification-producing event subscriptions. Outbox
// writes happen synchronously in the handler; delivery stays asynchronous.
func (s *Service) SubscribeAll(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.LeadCreated)
		if !ok {
			return nil
		}
		body := fmt.Sprintf("Novo lead: %s (%s)", e.Name, e.Phone)
		if e.Source != "" {
			body += fmt.Sprintf("\nOrigem: %s", e.Source)
		}
		return s.Enqueue(ctx, domain.ChannelEmail, s.adminEmail, "Novo lead recebido", body)
	}))

	bus.Subscribe(events.InboundMessageReceived{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.InboundMessageReceived)
		if !ok {
			return nil
		}
		body := fmt.Sprintf("Nova mensagem no canal %s:\n%s", e.Channel, e.Preview)
		return s.Enqueue(ctx, domain.ChannelEmail, s.adminEmail, "Nova mensagem na caixa de entrada", body)
	}))

	bus.Subscribe(events.LeadStageChanged{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.LeadStageChanged)
		if !ok {
			return nil
		}
		// Only closing moves are notable enough to notify on.
		if e.NewStage != "won" && e.NewStage != "lost" {
			return nil
		}
		body := fmt.Sprintf("Lead %s movido de %s para %s", e.LeadID, e.OldStage, e.NewStage)
		return s.Enqueue(ctx, domain.ChannelEmail, s.adminEmail, "Lead fechado", body)
	}))
}
