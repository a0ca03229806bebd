// Package webhook provides the inbound relay bounded context module. It turns
// channel callbacks (Telegram, WhatsApp, email, SMS) into inbox messages.
package webhook

import (
	apphttp "conectaleads_backend/internal/http"
	inboxsvc "conectaleads_backend/internal/inbox/service"
	"conectaleads_backend/platform/config"
	"conectaleads_backend/platform/logger"
)

// Module is the webhook relay module implementing http.Module.
type Module struct {
	handler *Handler
	cfg     config.WebhookConfig
}

// NewModule creates and initializes the webhook module.
func NewModule(inbox *inboxsvc.Service, cfg config.WebhookConfig, log *logger.Logger) *Module {
	return &Module{
		handler: NewHandler(inbox, log),
		cfg:     cfg,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "webhook"
}

// RegisterRoutes mounts the relay endpoints. They are public by design:
// upstream gateways cannot hold JWTs, so a shared secret guards them instead.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Public.Group("/webhooks")
	group.POST("/telegram", telegramSecret(m.cfg), m.handler.Telegram)
	group.POST("/whatsapp", sharedSecret(m.cfg), m.handler.WhatsApp)
	group.POST("/email", sharedSecret(m.cfg), m.handler.Email)
	group.POST("/sms", sharedSecret(m.cfg), m.handler.SMS)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
