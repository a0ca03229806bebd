// Package service implements storefront event ingestion and the admin
// analytics reads.
package service

import (
	"context"
	"time"

	"conectaleads_backend/internal/tracking/domain"
	"conectaleads_backend/internal/tracking/repository"
	"conectaleads_backend/platform/apperr"
)

type Service struct {
	repo *repository.Repository
}

func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

type TrackInput struct {
	Type        string
	SessionID   string
	Path        string
	Referrer    string
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
	UTMContent  string
	UTMTerm     string
	Data        map[string]interface{}
}

// Track appends one event. Ingestion is deliberately permissive: the
// storefront must never break because an event payload grew a field.
func (s *Service) Track(ctx context.Context, input TrackInput) (domain.Event, error) {
	if input.Type == "" {
		return domain.Event{}, apperr.Validation("event type is required").WithOp("tracking.Track")
	}
	if input.SessionID == "" {
		return domain.Event{}, apperr.Validation("session id is required").WithOp("tracking.Track")
	}

	event, err := s.repo.Insert(ctx, repository.InsertEventParams{
		Type:        input.Type,
		SessionID:   input.SessionID,
		Path:        input.Path,
		Referrer:    input.Referrer,
		UTMSource:   input.UTMSource,
		UTMMedium:   input.UTMMedium,
		UTMCampaign: input.UTMCampaign,
		UTMContent:  input.UTMContent,
		UTMTerm:     input.UTMTerm,
		Data:        input.Data,
	})
	if err != nil {
		return domain.Event{}, apperr.Wrap(apperr.KindInternal, "failed to store event", err).WithOp("tracking.Track")
	}
	return event, nil
}

func (s *Service) List(ctx context.Context, params repository.ListParams) ([]domain.Event, error) {
	events, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list events", err).WithOp("tracking.List")
	}
	return events, nil
}

// Summary returns per-type event counts over the trailing window.
func (s *Service) Summary(ctx context.Context, window time.Duration) (map[string]int, error) {
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}
	counts, err := s.repo.CountByType(ctx, time.Now().UTC().Add(-window))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to summarize events", err).WithOp("tracking.Summary")
	}
	return counts, nil
}
