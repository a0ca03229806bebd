// Package shopee provides the marketplace order-sync bounded context:
// signed API calls, windowed order pulls, and idempotent local upserts.
package shopee

import (
	apphttp "conectaleads_backend/internal/http"
	"conectaleads_backend/internal/shopee/client"
	"conectaleads_backend/internal/shopee/handler"
	"conectaleads_backend/internal/shopee/repository"
	"conectaleads_backend/internal/shopee/service"
	"conectaleads_backend/platform/config"
	"conectaleads_backend/platform/events"
	"conectaleads_backend/platform/logger"
	"conectaleads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the Shopee order-sync bounded context module implementing
// http.Module.
type Module struct {
	service *service.Service
	handler *handler.Handler
}

// NewModule creates and initializes the Shopee module.
func NewModule(pool *pgxpool.Pool, cfg config.ShopeeConfig, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	apiClient := client.New(cfg)
	svc := service.New(repo, apiClient, cfg, bus, log)

	return &Module{
		service: svc,
		handler: handler.New(svc, val),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "shopee"
}

// RegisterRoutes mounts the admin order views and the on-demand sync trigger.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/admin/shopee"))
}

// Service returns the sync service for the worker's scheduled runs.
func (m *Module) Service() *service.Service {
	return m.service
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
