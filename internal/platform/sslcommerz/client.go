// Package sslcommerz implements the payment-gateway collaborator against the
// SSLCommerz session API. Only session creation happens server-to-server;
// the gateway drives the rest of the flow through redirect callbacks.
package sslcommerz

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tuitionnetwork/tuition-api/internal/config"
)

// Gateway endpoints for sandbox and live modes.
const (
	sandboxSessionURL = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
	liveSessionURL    = "https://securepay.sslcommerz.com/gwprocess/v4/api.php"
)

// SessionRequest carries the customer and transaction details needed to open
// a gateway payment session.
type SessionRequest struct {
	TransactionID string
	Amount        float64
	ProductName   string
	CustomerName  string
	CustomerEmail string
	SuccessURL    string
	FailURL       string
	CancelURL     string
}

// Client opens payment sessions against SSLCommerz.
type Client struct {
	storeID       string
	storePassword string
	sessionURL    string
	httpClient    *http.Client
	logger        *slog.Logger
}

// NewClient creates a gateway client for the configured store credentials.
func NewClient(cfg config.PaymentConfig, logger *slog.Logger) *Client {
	sessionURL := sandboxSessionURL
	if cfg.Live {
		sessionURL = liveSessionURL
	}
	return &Client{
		storeID:       cfg.StoreID,
		storePassword: cfg.StorePassword,
		sessionURL:    sessionURL,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		logger:        logger.With("component", "sslcommerz_client"),
	}
}

// CreateSession opens a payment session and returns the gateway page URL the
// customer should be redirected to.
func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (string, error) {
	form := url.Values{}
	form.Set("store_id", c.storeID)
	form.Set("store_passwd", c.storePassword)
	form.Set("tran_id", req.TransactionID)
	form.Set("total_amount", strconv.FormatFloat(req.Amount, 'f', 2, 64))
	form.Set("currency", "BDT")
	form.Set("success_url", req.SuccessURL)
	form.Set("fail_url", req.FailURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("product_name", req.ProductName)
	form.Set("product_category", "Tuition")
	form.Set("product_profile", "general")
	form.Set("shipping_method", "NO")
	form.Set("cus_name", req.CustomerName)
	form.Set("cus_email", req.CustomerEmail)
	form.Set("cus_add1", "Dhaka")
	form.Set("cus_city", "Dhaka")
	form.Set("cus_country", "Bangladesh")
	form.Set("cus_phone", "01711111111")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sessionURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gateway session request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway session request returned status %d", resp.StatusCode)
	}

	var session struct {
		Status         string `json:"status"`
		FailedReason   string `json:"failedreason"`
		GatewayPageURL string `json:"GatewayPageURL"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", fmt.Errorf("failed to decode gateway response: %w", err)
	}

	if session.GatewayPageURL == "" {
		c.logger.Warn("gateway rejected session",
			"status", session.Status,
			"reason", session.FailedReason,
			"transaction_id", req.TransactionID)
		return "", fmt.Errorf("gateway rejected session: %s", session.Status)
	}

	return session.GatewayPageURL, nil
}
