// Package service implements the storefront catalog use cases: categories,
// offers with price history, and offer click attribution.
package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"conectaleads_backend/internal/catalog/domain"
	"conectaleads_backend/internal/catalog/repository"
	leadsdomain "conectaleads_backend/internal/leads/domain"
	leadssvc "conectaleads_backend/internal/leads/service"
	"conectaleads_backend/platform/apperr"
	"conectaleads_backend/platform/logger"

	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// LeadRecorder is the slice of the leads service the catalog needs for click
// attribution.
type LeadRecorder interface {
	FindOrCreateByPhone(ctx context.Context, phoneNumber, name, source string) (leadsdomain.Lead, bool, error)
	RecordInteraction(ctx context.Context, leadID uuid.UUID, input leadssvc.RecordInteractionInput) (leadsdomain.Interaction, error)
}

type Service struct {
	repo  *repository.Repository
	leads LeadRecorder
	log   *logger.Logger
}

func New(repo *repository.Repository, leads LeadRecorder, log *logger.Logger) *Service {
	return &Service{repo: repo, leads: leads, log: log}
}

func (s *Service) UpsertCategory(ctx context.Context, slug, name string) (domain.Category, error) {
	if !slugPattern.MatchString(slug) {
		return domain.Category{}, apperr.Validation("slug must be lowercase kebab-case").WithOp("catalog.UpsertCategory")
	}
	if strings.TrimSpace(name) == "" {
		return domain.Category{}, apperr.Validation("category name is required").WithOp("catalog.UpsertCategory")
	}

	cat, err := s.repo.UpsertCategory(ctx, slug, strings.TrimSpace(name))
	if err != nil {
		return domain.Category{}, apperr.Wrap(apperr.KindInternal, "failed to save category", err).WithOp("catalog.UpsertCategory")
	}
	return cat, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list categories", err).WithOp("catalog.ListCategories")
	}
	return categories, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeleteCategory(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("category not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete category", err).WithOp("catalog.DeleteCategory")
	}
	return nil
}

type CreateOfferInput struct {
	CategoryID  uuid.UUID
	Slug        string
	Title       string
	Description string
	PriceCents  int64
	URL         string
}

// CreateOffer publishes an offer and seeds its price history with the launch
// price.
func (s *Service) CreateOffer(ctx context.Context, input CreateOfferInput) (domain.Offer, error) {
	if !slugPattern.MatchString(input.Slug) {
		return domain.Offer{}, apperr.Validation("slug must be lowercase kebab-case").WithOp("catalog.CreateOffer")
	}
	if input.PriceCents <= 0 {
		return domain.Offer{}, apperr.Validation("price must be positive").WithOp("catalog.CreateOffer")
	}

	offer, err := s.repo.CreateOffer(ctx, repository.CreateOfferParams{
		CategoryID:  input.CategoryID,
		Slug:        input.Slug,
		Title:       input.Title,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Currency:    "BRL",
		URL:         input.URL,
	})
	if err != nil {
		return domain.Offer{}, apperr.Wrap(apperr.KindInternal, "failed to create offer", err).WithOp("catalog.CreateOffer")
	}

	if err := s.repo.AppendPricePoint(ctx, offer.ID, offer.PriceCents, offer.Currency); err != nil {
		s.log.DatabaseError("catalog.AppendPricePoint", err)
	}

	return offer, nil
}

func (s *Service) GetOfferBySlug(ctx context.Context, slug string) (domain.Offer, []domain.PricePoint, error) {
	offer, err := s.repo.GetOfferBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Offer{}, nil, apperr.NotFound("offer not found")
	}
	if err != nil {
		return domain.Offer{}, nil, apperr.Wrap(apperr.KindInternal, "failed to fetch offer", err).WithOp("catalog.GetOfferBySlug")
	}

	history, err := s.repo.ListPriceHistory(ctx, offer.ID)
	if err != nil {
		return domain.Offer{}, nil, apperr.Wrap(apperr.KindInternal, "failed to fetch price history", err).WithOp("catalog.GetOfferBySlug")
	}
	return offer, history, nil
}

func (s *Service) ListOffers(ctx context.Context, categoryID *uuid.UUID, includeInactive bool) ([]domain.Offer, error) {
	offers, err := s.repo.ListOffers(ctx, categoryID, includeInactive)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list offers", err).WithOp("catalog.ListOffers")
	}
	return offers, nil
}

type UpdateOfferInput struct {
	Title       *string
	Description *string
	PriceCents  *int64
	URL         *string
	Active      *bool
}

// UpdateOffer edits an offer; a price change appends a price history point.
func (s *Service) UpdateOffer(ctx context.Context, id uuid.UUID, input UpdateOfferInput) (domain.Offer, error) {
	if input.PriceCents != nil && *input.PriceCents <= 0 {
		return domain.Offer{}, apperr.Validation("price must be positive").WithOp("catalog.UpdateOffer")
	}

	before, err := s.repo.GetOffer(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Offer{}, apperr.NotFound("offer not found")
	}
	if err != nil {
		return domain.Offer{}, apperr.Wrap(apperr.KindInternal, "failed to fetch offer", err).WithOp("catalog.UpdateOffer")
	}

	offer, err := s.repo.UpdateOffer(ctx, id, repository.UpdateOfferParams{
		Title:       input.Title,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		URL:         input.URL,
		Active:      input.Active,
	})
	if err != nil {
		return domain.Offer{}, apperr.Wrap(apperr.KindInternal, "failed to update offer", err).WithOp("catalog.UpdateOffer")
	}

	if offer.PriceCents != before.PriceCents {
		if err := s.repo.AppendPricePoint(ctx, offer.ID, offer.PriceCents, offer.Currency); err != nil {
			s.log.DatabaseError("catalog.AppendPricePoint", err)
		}
	}

	return offer, nil
}

type ClickInput struct {
	Phone string
	Name  string
	// Kind is the interaction recorded: offer_click for generic clicks,
	// whatsapp_click for the "talk on WhatsApp" button.
	Kind string
}

// RecordClick attributes a storefront click to a lead. The phone comes from
// the storefront's lead capture; clicks without one are counted nowhere and
// that is fine, the tracking module still sees the raw event.
func (s *Service) RecordClick(ctx context.Context, offerID uuid.UUID, input ClickInput) error {
	if input.Phone == "" {
		return nil
	}
	if input.Kind != leadsdomain.InteractionOfferClick && input.Kind != leadsdomain.InteractionWhatsAppClick {
		return apperr.Validation("unsupported click kind").WithOp("catalog.RecordClick")
	}

	offer, err := s.repo.GetOffer(ctx, offerID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("offer not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to fetch offer", err).WithOp("catalog.RecordClick")
	}

	lead, _, err := s.leads.FindOrCreateByPhone(ctx, input.Phone, input.Name, "storefront")
	if err != nil {
		return err
	}

	channel := leadsdomain.ChannelWhatsApp
	if input.Kind == leadsdomain.InteractionOfferClick {
		channel = ""
	}
	interaction := leadssvc.RecordInteractionInput{
		Type:    input.Kind,
		Content: offer.Slug,
	}
	if channel != "" {
		interaction.Channel = &channel
	}

	if _, err := s.leads.RecordInteraction(ctx, lead.ID, interaction); err != nil {
		return err
	}
	return nil
}
