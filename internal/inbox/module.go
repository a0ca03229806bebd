// Package inbox provides the admin inbox bounded context module:
// conversations and messages across all inbound channels.
package inbox

import (
	"conectaleads_backend/internal/events"
	apphttp "conectaleads_backend/internal/http"
	"conectaleads_backend/internal/inbox/handler"
	"conectaleads_backend/internal/inbox/repository"
	"conectaleads_backend/internal/inbox/service"
	"conectaleads_backend/platform/logger"
	"conectaleads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the inbox bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the inbox module. The sender is optional;
// without one, replies are stored but not delivered.
func NewModule(pool *pgxpool.Pool, leads service.LeadDirectory, sender service.Sender, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, leads, sender, eventBus, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "inbox"
}

// Service returns the inbox service for the webhook relays.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts inbox routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/inbox/conversations")
	m.handler.RegisterRoutes(group)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
