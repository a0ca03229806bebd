// Package domain holds the Shopee order data model as synced into the local
// database.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order is one marketplace order, keyed externally by OrderSN. Amounts are
// stored in cents to keep money integral.
type Order struct {
	ID              uuid.UUID
	OrderSN         string
	Status          string
	BuyerID         string
	ShopID          string
	TotalCents      int64
	CommissionCents int64
	Currency        string
	EstDeliveryAt   *time.Time
	PlacedAt        time.Time
	SyncedAt        time.Time
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	ProductID       string
	SKU             string
	Name            string
	Quantity        int
	PriceCents      int64
	Currency        string
	CommissionCents int64
}
