// Package client implements the Shopee Open Platform v2 API calls used by
// the order sync.
package client

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"conectaleads_backend/platform/config"
)

const (
	pathOrderList   = "/api/v2/order/get_order_list"
	pathOrderDetail = "/api/v2/order/get_order_detail"

	// Shopee caps both list page size and detail batch size at 50.
	pageSize = 50
)

// Client is a minimal Shopee Open Platform API client covering the order
// endpoints the sync needs.
type Client struct {
	baseURL     string
	partnerID   string
	partnerKey  string
	shopID      string
	accessToken string
	http        *http.Client
	now         func() time.Time
}

func New(cfg config.ShopeeConfig) *Client {
	return &Client{
		baseURL:     cfg.GetShopeeBaseURL(),
		partnerID:   cfg.GetShopeePartnerID(),
		partnerKey:  cfg.GetShopeePartnerKey(),
		shopID:      cfg.GetShopeeShopID(),
		accessToken: cfg.GetShopeeAccessToken(),
		http:        &http.Client{Timeout: 30 * time.Second},
		now:         time.Now,
	}
}

// sign computes the shop-level request signature: HMAC-SHA256 over
// partner_id + path + timestamp + access_token + shop_id, hex-encoded.
func (c *Client) sign(path string, timestamp int64) string {
	base := c.partnerID + path + strconv.FormatInt(timestamp, 10) + c.accessToken + c.shopID
	mac := hmac.New(sha256.New, []byte(c.partnerKey))
	mac.Write([]byte(base))
	return hex.EncodeToString(mac.Sum(nil))
}

type apiEnvelope struct {
	Error    string          `json:"error"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

func (c *Client) request(ctx context.Context, path string, payload, out interface{}) error {
	timestamp := c.now().Unix()

	query := url.Values{}
	query.Set("partner_id", c.partnerID)
	query.Set("timestamp", strconv.FormatInt(timestamp, 10))
	query.Set("sign", c.sign(path, timestamp))
	query.Set("shop_id", c.shopID)
	query.Set("access_token", c.accessToken)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("shopee marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path+"?"+query.Encode(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("shopee request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("shopee call %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("shopee read %s: %w", path, err)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("shopee decode %s: %w", path, err)
	}
	if resp.StatusCode >= 300 || envelope.Error != "" {
		msg := envelope.Message
		if msg == "" {
			msg = envelope.Error
		}
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("shopee %s: %s", path, msg)
	}

	if out != nil && len(envelope.Response) > 0 {
		if err := json.Unmarshal(envelope.Response, out); err != nil {
			return fmt.Errorf("shopee decode %s response: %w", path, err)
		}
	}
	return nil
}

type orderListResponse struct {
	More       bool   `json:"more"`
	NextCursor string `json:"next_cursor"`
	OrderList  []struct {
		OrderSN string `json:"order_sn"`
	} `json:"order_list"`
}

// ListOrderSNs returns the serial numbers of orders created inside the
// window, following the cursor until the API reports no more pages.
func (c *Client) ListOrderSNs(ctx context.Context, from, to time.Time) ([]string, error) {
	sns := make([]string, 0)
	cursor := ""

	for {
		payload := map[string]interface{}{
			"time_range_field": "create_time",
			"time_from":        from.Unix(),
			"time_to":          to.Unix(),
			"page_size":        pageSize,
		}
		if cursor != "" {
			payload["cursor"] = cursor
		}

		var out orderListResponse
		if err := c.request(ctx, pathOrderList, payload, &out); err != nil {
			return nil, err
		}
		for _, entry := range out.OrderList {
			sns = append(sns, entry.OrderSN)
		}
		if !out.More || out.NextCursor == "" {
			return sns, nil
		}
		cursor = out.NextCursor
	}
}

// OrderDetail is the subset of the detail response the sync persists.
type OrderDetail struct {
	OrderSN      string  `json:"order_sn"`
	OrderStatus  string  `json:"order_status"`
	BuyerUserID  int64   `json:"buyer_user_id"`
	TotalAmount  float64 `json:"total_amount"`
	EscrowAmount float64 `json:"escrow_amount"`
	Currency     string  `json:"currency"`
	PayTime      int64   `json:"pay_time"`
	ShipByDate   int64   `json:"ship_by_date"`
	ItemList     []struct {
		ItemID                 int64   `json:"item_id"`
		ItemName               string  `json:"item_name"`
		ModelSKU               string  `json:"model_sku"`
		ModelQuantityPurchased int     `json:"model_quantity_purchased"`
		ModelOriginalPrice     float64 `json:"model_original_price"`
		ModelDiscountedPrice   float64 `json:"model_discounted_price"`
		CommissionFee          float64 `json:"commission_fee"`
	} `json:"item_list"`
}

type orderDetailResponse struct {
	OrderList []OrderDetail `json:"order_list"`
}

// GetOrderDetails fetches full detail for up to 50 serial numbers.
func (c *Client) GetOrderDetails(ctx context.Context, orderSNs []string) ([]OrderDetail, error) {
	if len(orderSNs) == 0 {
		return nil, nil
	}
	if len(orderSNs) > pageSize {
		return nil, fmt.Errorf("shopee detail batch exceeds %d orders", pageSize)
	}

	var out orderDetailResponse
	err := c.request(ctx, pathOrderDetail, map[string]interface{}{
		"order_sn_list": orderSNs,
		"response_optional_fields": []string{
			"order_status", "buyer_user_id", "item_list", "total_amount",
			"escrow_amount", "pay_time", "ship_by_date",
		},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.OrderList, nil
}
