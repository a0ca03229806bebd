// Package pipelines provides the pipeline administration bounded context
// module: boards and their stage lists.
package pipelines

import (
	apphttp "conectaleads_backend/internal/http"
	"conectaleads_backend/internal/pipelines/handler"
	"conectaleads_backend/internal/pipelines/repository"
	"conectaleads_backend/internal/pipelines/service"
	"conectaleads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the pipelines bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
}

// NewModule creates and initializes the pipelines module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{
		handler: handler.New(svc, val),
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "pipelines"
}

// StageProvider exposes the stage repository for the leads module's board
// resolution.
func (m *Module) StageProvider() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts pipeline routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/pipelines")
	m.handler.RegisterRoutes(group)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
