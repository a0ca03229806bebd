package repository

import (
	"context"
	"time"

	"conectaleads_backend/internal/shopee/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type UpsertOrderParams struct {
	OrderSN         string
	Status          string
	BuyerID         string
	ShopID          string
	TotalCents      int64
	CommissionCents int64
	Currency        string
	EstDeliveryAt   *time.Time
	PlacedAt        time.Time
	Items           []UpsertItemParams
}

type UpsertItemParams struct {
	ProductID       string
	SKU             string
	Name            string
	Quantity        int
	PriceCents      int64
	CommissionCents int64
}

// UpsertOrder writes the order keyed by order_sn and replaces its item rows,
// all in one transaction. Re-running a sync window is idempotent.
func (r *Repository) UpsertOrder(ctx context.Context, params UpsertOrderParams) (uuid.UUID, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback(ctx)

	var orderID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO shopee_orders
			(order_sn, status, buyer_id, shop_id, total_cents, commission_cents, currency, est_delivery_at, placed_at, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (order_sn) DO UPDATE SET
			status = EXCLUDED.status,
			total_cents = EXCLUDED.total_cents,
			commission_cents = EXCLUDED.commission_cents,
			est_delivery_at = EXCLUDED.est_delivery_at,
			synced_at = now()
		RETURNING id
	`, params.OrderSN, params.Status, params.BuyerID, params.ShopID,
		params.TotalCents, params.CommissionCents, params.Currency,
		params.EstDeliveryAt, params.PlacedAt,
	).Scan(&orderID)
	if err != nil {
		return uuid.Nil, err
	}

	// Item lists are small; replacing them wholesale is simpler than
	// diffing against a composite key.
	if _, err := tx.Exec(ctx, `DELETE FROM shopee_order_items WHERE order_id = $1`, orderID); err != nil {
		return uuid.Nil, err
	}
	for _, item := range params.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO shopee_order_items
				(order_id, product_id, sku, name, quantity, price_cents, currency, commission_cents)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, orderID, item.ProductID, item.SKU, item.Name,
			item.Quantity, item.PriceCents, params.Currency, item.CommissionCents,
		); err != nil {
			return uuid.Nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, err
	}
	return orderID, nil
}

// ListOrders returns synced orders newest first for the admin view.
func (r *Repository) ListOrders(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, order_sn, status, buyer_id, shop_id, total_cents, commission_cents,
			currency, est_delivery_at, placed_at, synced_at
		FROM shopee_orders
		ORDER BY placed_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.OrderSN, &o.Status, &o.BuyerID, &o.ShopID,
			&o.TotalCents, &o.CommissionCents, &o.Currency,
			&o.EstDeliveryAt, &o.PlacedAt, &o.SyncedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// ListItems returns the items of one order.
func (r *Repository) ListItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, sku, name, quantity, price_cents, currency, commission_cents
		FROM shopee_order_items
		WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.SKU, &item.Name,
			&item.Quantity, &item.PriceCents, &item.Currency, &item.CommissionCents,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
