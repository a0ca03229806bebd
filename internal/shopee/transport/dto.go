// Package transport defines the request/response DTOs for the Shopee admin
// API.
package transport

import (
	"time"

	"conectaleads_backend/internal/shopee/domain"
	"conectaleads_backend/internal/shopee/service"

	"github.com/google/uuid"
)

type ListOrdersRequest struct {
	Page     int `form:"page" validate:"omitempty,min=1"`
	PageSize int `form:"page_size" validate:"omitempty,min=1,max=200"`
}

type OrderResponse struct {
	ID              uuid.UUID  `json:"id"`
	OrderSN         string     `json:"order_sn"`
	Status          string     `json:"status"`
	BuyerID         string     `json:"buyer_id"`
	ShopID          string     `json:"shop_id"`
	TotalCents      int64      `json:"total_cents"`
	CommissionCents int64      `json:"commission_cents"`
	Currency        string     `json:"currency"`
	EstDeliveryAt   *time.Time `json:"est_delivery_at,omitempty"`
	PlacedAt        time.Time  `json:"placed_at"`
	SyncedAt        time.Time  `json:"synced_at"`
}

func ToOrderResponse(o domain.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		OrderSN:         o.OrderSN,
		Status:          o.Status,
		BuyerID:         o.BuyerID,
		ShopID:          o.ShopID,
		TotalCents:      o.TotalCents,
		CommissionCents: o.CommissionCents,
		Currency:        o.Currency,
		EstDeliveryAt:   o.EstDeliveryAt,
		PlacedAt:        o.PlacedAt,
		SyncedAt:        o.SyncedAt,
	}
}

type OrderItemResponse struct {
	ID              uuid.UUID `json:"id"`
	ProductID       string    `json:"product_id"`
	SKU             string    `json:"sku"`
	Name            string    `json:"name"`
	Quantity        int       `json:"quantity"`
	PriceCents      int64     `json:"price_cents"`
	Currency        string    `json:"currency"`
	CommissionCents int64     `json:"commission_cents"`
}

func ToOrderItemResponse(item domain.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:              item.ID,
		ProductID:       item.ProductID,
		SKU:             item.SKU,
		Name:            item.Name,
		Quantity:        item.Quantity,
		PriceCents:      item.PriceCents,
		Currency:        item.Currency,
		CommissionCents: item.CommissionCents,
	}
}

type SyncResponse struct {
	Fetched  int `json:"fetched"`
	Upserted int `json:"upserted"`
	Failed   int `json:"failed"`
}

func ToSyncResponse(result service.SyncResult) SyncResponse {
	return SyncResponse{Fetched: result.Fetched, Upserted: result.Upserted, Failed: result.Failed}
}
