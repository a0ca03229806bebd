// Package domain holds the storefront catalog data model.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a storefront grouping, addressed by slug.
type Category struct {
	ID        uuid.UUID
	Slug      string
	Name      string
	CreatedAt time.Time
}

// Offer is a published product offer. PriceCents avoids float money; Currency
// is ISO 4217, BRL for the whole storefront today.
type Offer struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Slug        string
	Title       string
	Description string
	PriceCents  int64
	Currency    string
	URL         string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PricePoint is one entry in an offer's price history, appended whenever the
// offer's price changes.
type PricePoint struct {
	ID         uuid.UUID
	OfferID    uuid.UUID
	PriceCents int64
	Currency   string
	RecordedAt time.Time
}
