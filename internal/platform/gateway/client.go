package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	cfgpkg "github.com/freshtiffin/mealbox/pkg/config"
)

// CreateOrderRequest opens a gateway-side order for a computed total.
// Receipt is the locally generated idempotency key: re-submitting the same
// receipt must not open a second gateway order.
type CreateOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// GatewayOrder is the gateway's view of an opened order.
type GatewayOrder struct {
	Ref      string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Client creates gateway-side orders. Network timeout/retry policy lives
// here at the boundary, not in the reconciliation core.
type Client interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*GatewayOrder, error)
}

// HTTPClient talks to the gateway's REST API using the configured merchant
// credentials. Constructed from explicit config; no process-wide state.
type HTTPClient struct {
	cfg  cfgpkg.GatewayConfig
	http *http.Client
}

func NewHTTPClient(cfg *cfgpkg.Config) *HTTPClient {
	return &HTTPClient{
		cfg:  cfg.Gateway,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*GatewayOrder, error) {
	if c.cfg.BaseURL == "" {
		return nil, fmt.Errorf("gateway base_url not configured")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway order request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("gateway order request returned %d", resp.StatusCode)
	}

	var order GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode gateway order: %w", err)
	}
	if order.Ref == "" {
		return nil, fmt.Errorf("gateway order missing id")
	}
	return &order, nil
}
