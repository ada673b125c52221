package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// HTTPClient calls the billing endpoints over HTTPS.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for the billing endpoints at baseURL.
// PRE: baseURL is a reachable endpoint root without a trailing slash
// POST: Returns a ready-to-use client with a bounded request timeout
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateCheckoutSession requests a hosted checkout session.
// PRE: req carries a user, course and price
// POST: Returns the session id and redirect URL
func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error) {
	var session CheckoutSession
	err := c.post(ctx, "/create-checkout-session", req, &session)
	return session, err
}

// CreatePortalSession requests a hosted billing-portal session.
// PRE: req carries the user
// POST: Returns the portal redirect URL
func (c *HTTPClient) CreatePortalSession(ctx context.Context, req PortalRequest) (PortalSession, error) {
	var session PortalSession
	err := c.post(ctx, "/create-portal-session", req, &session)
	return session, err
}

// ListInvoices fetches the user's billing history.
// PRE: userID is non-empty
// POST: Returns the invoices, newest first as the endpoint orders them
func (c *HTTPClient) ListInvoices(ctx context.Context, userID string) ([]Invoice, error) {
	var out struct {
		Invoices []Invoice `json:"invoices"`
	}
	if err := c.post(ctx, "/get-invoices", map[string]string{"userId": userID}, &out); err != nil {
		return nil, err
	}
	return out.Invoices, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Error("payment_request_failed", "path", path, "error", err)
		return fmt.Errorf("payment endpoint %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Error("payment_request_rejected", "path", path, "status", resp.StatusCode)
		return fmt.Errorf("payment endpoint %s: status %d: %s", path, resp.StatusCode, snippet)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode payment response from %s: %w", path, err)
	}
	return nil
}
