// Package whatsapp sends outbound messages through the WhatsApp gateway's
// HTTP API.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"conectaleads_backend/platform/config"
)

// Client posts messages to the gateway. A client built without an API URL is
// disabled and drops sends silently, mirroring the email sender.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	enabled bool
}

func NewClient(cfg config.WhatsAppConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.GetWhatsAppAPIURL(), "/"),
		token:   cfg.GetWhatsAppAPIToken(),
		http:    &http.Client{Timeout: 15 * time.Second},
		enabled: cfg.IsWhatsAppEnabled(),
	}
}

type sendRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// Send delivers one text message to the phone number in E.164 form.
func (c *Client) Send(ctx context.Context, to, body string) error {
	if !c.enabled {
		return nil
	}

	payload, err := json.Marshal(sendRequest{To: to, Body: body})
	if err != nil {
		return fmt.Errorf("whatsapp marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp send: gateway returned %d: %s", resp.StatusCode, snippet)
	}
	return nil
}
