// Package catalog provides the storefront catalog bounded context module:
// categories, offers, price history, and click attribution.
package catalog

import (
	"conectaleads_backend/internal/catalog/handler"
	"conectaleads_backend/internal/catalog/repository"
	"conectaleads_backend/internal/catalog/service"
	apphttp "conectaleads_backend/internal/http"
	"conectaleads_backend/platform/logger"
	"conectaleads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, leads service.LeadRecorder, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, leads, log)

	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// RegisterRoutes mounts storefront routes publicly and management routes
// behind auth.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.Public.Group("/catalog"))
	m.handler.RegisterAdminRoutes(ctx.Protected.Group("/admin/catalog"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
