package transport

import (
	"time"

	"conectaleads_backend/internal/catalog/domain"

	"github.com/google/uuid"
)

type UpsertCategoryRequest struct {
	Slug string `json:"slug" validate:"required,min=1,max=60"`
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreateOfferRequest struct {
	CategoryID  uuid.UUID `json:"categoryId" validate:"required"`
	Slug        string    `json:"slug" validate:"required,min=1,max=120"`
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description string    `json:"description,omitempty" validate:"max=5000"`
	PriceCents  int64     `json:"priceCents" validate:"required,gt=0"`
	URL         string    `json:"url,omitempty" validate:"omitempty,url,max=500"`
}

type UpdateOfferRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	PriceCents  *int64  `json:"priceCents,omitempty" validate:"omitempty,gt=0"`
	URL         *string `json:"url,omitempty" validate:"omitempty,url,max=500"`
	Active      *bool   `json:"active,omitempty"`
}

type ClickRequest struct {
	Phone string `json:"phone,omitempty" validate:"omitempty,min=5,max=30"`
	Name  string `json:"name,omitempty" validate:"omitempty,max=200"`
	Kind  string `json:"kind" validate:"required,oneof=offer_click whatsapp_click"`
}

type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
	Name string    `json:"name"`
}

func ToCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Slug: c.Slug, Name: c.Name}
}

type OfferResponse struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"categoryId"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Currency    string    `json:"currency"`
	URL         string    `json:"url,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToOfferResponse(o domain.Offer) OfferResponse {
	return OfferResponse{
		ID:          o.ID,
		CategoryID:  o.CategoryID,
		Slug:        o.Slug,
		Title:       o.Title,
		Description: o.Description,
		PriceCents:  o.PriceCents,
		Currency:    o.Currency,
		URL:         o.URL,
		Active:      o.Active,
		CreatedAt:   o.CreatedAt,
	}
}

type PricePointResponse struct {
	PriceCents int64     `json:"priceCents"`
	Currency   string    `json:"currency"`
	RecordedAt time.Time `json:"recordedAt"`
}

type OfferDetailResponse struct {
	Offer        OfferResponse        `json:"offer"`
	PriceHistory []PricePointResponse `json:"priceHistory"`
}

func ToOfferDetailResponse(o domain.Offer, history []domain.PricePoint) OfferDetailResponse {
	out := OfferDetailResponse{Offer: ToOfferResponse(o)}
	out.PriceHistory = make([]PricePointResponse, 0, len(history))
	for _, p := range history {
		out.PriceHistory = append(out.PriceHistory, PricePointResponse{
			PriceCents: p.PriceCents,
			Currency:   p.Currency,
			RecordedAt: p.RecordedAt,
		})
	}
	return out
}
