// Package notification provides the outbound notification bounded context:
// event-driven outbox writes and worker-driven delivery.
package notification

import (
	"conectaleads_backend/internal/email"
	"conectaleads_backend/internal/events"
	"conectaleads_backend/internal/notification/repository"
	"conectaleads_backend/internal/notification/service"
	"conectaleads_backend/internal/whatsapp"
	"conectaleads_backend/platform/config"
	"conectaleads_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module bundles the notification pipeline. It registers no HTTP routes; the
// outbox is drained by the worker binary.
type Module struct {
	service    *service.Service
	dispatcher *Dispatcher
}

// Config is the slice of application config the notification module reads.
type Config interface {
	config.EmailConfig
	config.WhatsAppConfig
}

// NewModule creates the notification pipeline and wires its event
// subscriptions.
func NewModule(pool *pgxpool.Pool, cfg Config, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	emailSender := email.NewSMTPSender(cfg)
	whatsappClient := whatsapp.NewClient(cfg)

	svc := service.New(repo, emailSender, whatsappClient, cfg.GetEmailFromAddress(), log)
	svc.SubscribeAll(bus)

	return &Module{
		service:    svc,
		dispatcher: NewDispatcher(emailSender, whatsappClient),
	}
}

// Service returns the notification service for the worker's outbox task.
func (m *Module) Service() *service.Service {
	return m.service
}

// Dispatcher returns the reply dispatcher for the inbox module.
func (m *Module) Dispatcher() *Dispatcher {
	return m.dispatcher
}
