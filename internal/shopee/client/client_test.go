package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(baseURL string) *Client {
	return &Client{
		baseURL:     baseURL,
		partnerID:   "123456",
		partnerKey:  "secret-partner-key",
		shopID:      "789",
		accessToken: "token-abc",
		http:        &http.Client{Timeout: 5 * time.Second},
		now:         func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func TestSign_MatchesHMACOfBaseString(t *testing.T) {
	c := testClient("")

	got := c.sign("/api/v2/order/get_order_list", 1700000000)

	base := "123456/api/v2/order/get_order_list1700000000token-abc789"
	mac := hmac.New(sha256.New, []byte("secret-partner-key"))
	mac.Write([]byte(base))
	want := hex.EncodeToString(mac.Sum(nil))

	if got != want {
		t.Fatalf("sign mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestListOrderSNs_FollowsCursor(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("sign") == "" {
			t.Error("request must carry a signature")
		}

		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}

		if calls == 1 {
			if _, ok := payload["cursor"]; ok {
				t.Error("first page must not send a cursor")
			}
			w.Write([]byte(`{"response":{"more":true,"next_cursor":"c2","order_list":[{"order_sn":"A1"},{"order_sn":"A2"}]}}`))
			return
		}
		if payload["cursor"] != "c2" {
			t.Errorf("second page cursor = %v, expected c2", payload["cursor"])
		}
		w.Write([]byte(`{"response":{"more":false,"order_list":[{"order_sn":"A3"}]}}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	sns, err := c.ListOrderSNs(context.Background(), time.Unix(0, 0), time.Unix(1700000000, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sns) != 3 || sns[0] != "A1" || sns[2] != "A3" {
		t.Fatalf("unexpected order sns: %v", sns)
	}
	if calls != 2 {
		t.Fatalf("expected 2 pages fetched, got %d", calls)
	}
}

func TestRequest_SurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"error_auth","message":"Invalid access_token"}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	_, err := c.ListOrderSNs(context.Background(), time.Unix(0, 0), time.Unix(1, 0))
	if err == nil {
		t.Fatal("expected error from API error envelope")
	}
}

func TestGetOrderDetails_RejectsOversizedBatch(t *testing.T) {
	c := testClient("")
	batch := make([]string, 51)
	for i := range batch {
		batch[i] = "SN"
	}
	if _, err := c.GetOrderDetails(context.Background(), batch); err == nil {
		t.Fatal("expected error for batch above the API limit")
	}
}
