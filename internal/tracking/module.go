// Package tracking provides the storefront analytics bounded context module:
// append-only event ingestion and admin reads.
package tracking

import (
	apphttp "conectaleads_backend/internal/http"
	"conectaleads_backend/internal/tracking/handler"
	"conectaleads_backend/internal/tracking/repository"
	"conectaleads_backend/internal/tracking/service"
	"conectaleads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the tracking bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the tracking module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "tracking"
}

// RegisterRoutes mounts ingestion publicly and the analytics reads behind
// auth.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.Public.Group("/tracking"))
	m.handler.RegisterAdminRoutes(ctx.Protected.Group("/admin/tracking"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
