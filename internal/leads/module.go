// Package leads provides the lead management bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"context"

	"conectaleads_backend/internal/events"
	apphttp "conectaleads_backend/internal/http"
	"conectaleads_backend/internal/leads/handler"
	"conectaleads_backend/internal/leads/repository"
	"conectaleads_backend/internal/leads/service"
	"conectaleads_backend/platform/logger"
	"conectaleads_backend/platform/validator"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScoreQueue hands score recomputes to the background worker, which runs them
// one at a time. Implemented by the scheduler client; nil means recomputes run
// inline on the event bus (worker process, or no redis configured).
type ScoreQueue interface {
	EnqueueScoreRecalculate(ctx context.Context, leadID uuid.UUID, force bool) error
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module with all its dependencies.
// Stage lookups for pipeline boards go through the StageProvider, implemented
// by the pipelines module's repository.
func NewModule(pool *pgxpool.Pool, stages service.StageProvider, queue ScoreQueue, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, stages, eventBus, log)

	// Interactions and qualification changes feed the score. Manual
	// overrides are sticky, so these recomputes never force.
	recalculate := func(ctx context.Context, leadID uuid.UUID) error {
		if queue != nil {
			if err := queue.EnqueueScoreRecalculate(ctx, leadID, false); err == nil {
				return nil
			} else {
				log.Error("failed to enqueue score recalculation, running inline", "leadId", leadID, "error", err)
			}
		}
		_, err := svc.RecalculateScore(ctx, leadID, false)
		return err
	}
	recompute := events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		switch e := event.(type) {
		case events.InteractionRecorded:
			return recalculate(ctx, e.LeadID)
		case events.LeadQualified:
			return recalculate(ctx, e.LeadID)
		}
		return nil
	})
	eventBus.Subscribe(events.InteractionRecorded{}.EventName(), recompute)
	eventBus.Subscribe(events.LeadQualified{}.EventName(), recompute)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead service for use by other modules (webhooks, inbox,
// tracking, scheduler jobs).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// All leads routes require authentication
	leadsGroup := ctx.Protected.Group("/leads")
	m.handler.RegisterRoutes(leadsGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
