// Package service orchestrates Shopee order synchronization.
package service

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"conectaleads_backend/internal/events"
	"conectaleads_backend/internal/shopee/client"
	"conectaleads_backend/internal/shopee/domain"
	"conectaleads_backend/internal/shopee/repository"
	"conectaleads_backend/platform/apperr"
	"conectaleads_backend/platform/config"
	appevents "conectaleads_backend/platform/events"
	"conectaleads_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	detailBatchSize   = 50
	detailWorkers     = 4
	defaultSyncWindow = 168 * time.Hour
)

// Service runs the sync and serves synced orders to the admin API.
type Service struct {
	repo   *repository.Repository
	client *client.Client
	cfg    config.ShopeeConfig
	bus    appevents.Bus
	log    *logger.Logger
}

func New(repo *repository.Repository, client *client.Client, cfg config.ShopeeConfig, bus appevents.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, client: client, cfg: cfg, bus: bus, log: log}
}

// SyncResult summarizes one sync run.
type SyncResult struct {
	Fetched  int `json:"fetched"`
	Upserted int `json:"upserted"`
	Failed   int `json:"failed"`
}

// SyncOrders pulls orders created inside the configured window and upserts
// them. Detail batches are fetched with bounded concurrency; one failed batch
// does not abort the others.
func (s *Service) SyncOrders(ctx context.Context) (SyncResult, error) {
	if !s.cfg.IsShopeeEnabled() {
		return SyncResult{}, apperr.New(apperr.KindConflict, "shopee sync is not configured").WithOp("shopee.SyncOrders")
	}

	window := s.cfg.GetShopeeSyncWindow()
	if window <= 0 {
		window = defaultSyncWindow
	}
	to := time.Now().UTC()
	from := to.Add(-window)

	sns, err := s.client.ListOrderSNs(ctx, from, to)
	if err != nil {
		return SyncResult{}, apperr.Wrap(apperr.KindInternal, "failed to list orders upstream", err).WithOp("shopee.SyncOrders")
	}

	var mu sync.Mutex
	result := SyncResult{Fetched: len(sns)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailWorkers)
	for start := 0; start < len(sns); start += detailBatchSize {
		end := start + detailBatchSize
		if end > len(sns) {
			end = len(sns)
		}
		batch := sns[start:end]

		g.Go(func() error {
			details, err := s.client.GetOrderDetails(gctx, batch)
			if err != nil {
				s.log.Error("shopee detail batch failed", "error", err, "batch_size", len(batch))
				mu.Lock()
				result.Failed += len(batch)
				mu.Unlock()
				return nil
			}
			for _, detail := range details {
				if _, err := s.repo.UpsertOrder(gctx, toUpsertParams(detail, s.cfg.GetShopeeShopID())); err != nil {
					s.log.Error("shopee order upsert failed", "error", err, "order_sn", detail.OrderSN)
					mu.Lock()
					result.Failed++
					mu.Unlock()
					continue
				}
				mu.Lock()
				result.Upserted++
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, apperr.Wrap(apperr.KindInternal, "sync aborted", err).WithOp("shopee.SyncOrders")
	}

	s.log.SyncRun("shopee", result.Fetched, result.Upserted, result.Failed)
	s.bus.Publish(ctx, events.ShopeeOrdersSynced{
		BaseEvent: events.NewBaseEvent(),
		Fetched:   result.Fetched,
		Upserted:  result.Upserted,
		Failed:    result.Failed,
	})
	return result, nil
}

// ListOrders returns synced orders for the admin view.
func (s *Service) ListOrders(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	orders, err := s.repo.ListOrders(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list orders", err).WithOp("shopee.ListOrders")
	}
	return orders, nil
}

// ListItems returns the item lines of one synced order.
func (s *Service) ListItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	items, err := s.repo.ListItems(ctx, orderID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list order items", err).WithOp("shopee.ListItems")
	}
	return items, nil
}

func toUpsertParams(detail client.OrderDetail, shopID string) repository.UpsertOrderParams {
	params := repository.UpsertOrderParams{
		OrderSN:         detail.OrderSN,
		Status:          detail.OrderStatus,
		BuyerID:         strconv.FormatInt(detail.BuyerUserID, 10),
		ShopID:          shopID,
		TotalCents:      toCents(detail.TotalAmount),
		CommissionCents: commissionCents(detail),
		Currency:        detail.Currency,
		PlacedAt:        time.Unix(detail.PayTime, 0).UTC(),
	}
	if detail.ShipByDate > 0 {
		t := time.Unix(detail.ShipByDate, 0).UTC()
		params.EstDeliveryAt = &t
	}
	for _, item := range detail.ItemList {
		params.Items = append(params.Items, repository.UpsertItemParams{
			ProductID:       strconv.FormatInt(item.ItemID, 10),
			SKU:             item.ModelSKU,
			Name:            item.ItemName,
			Quantity:        item.ModelQuantityPurchased,
			PriceCents:      toCents(item.ModelDiscountedPrice),
			CommissionCents: toCents(item.CommissionFee),
		})
	}
	return params
}

// commissionCents derives commission from escrow when the API reports it at
// order level, falling back to the sum of per-item fees.
func commissionCents(detail client.OrderDetail) int64 {
	if detail.EscrowAmount > 0 && detail.TotalAmount >= detail.EscrowAmount {
		return toCents(detail.TotalAmount - detail.EscrowAmount)
	}
	var sum int64
	for _, item := range detail.ItemList {
		sum += toCents(item.CommissionFee)
	}
	return sum
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
