package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopClient is a stand-in billing client for development. It fabricates
// sessions and returns no invoices.
type NoopClient struct{}

// NewNoopClient creates a new NoopClient.
func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

// CreateCheckoutSession fabricates a checkout session.
// PRE: req is a valid CheckoutRequest
// POST: Returns a fake session without contacting any provider
func (c *NoopClient) CreateCheckoutSession(_ context.Context, req CheckoutRequest) (CheckoutSession, error) {
	id := fmt.Sprintf("noop-checkout-%d", time.Now().UnixNano())
	slog.Info("noop_checkout_session", "session_id", id, "course_id", req.CourseID)
	return CheckoutSession{SessionID: id, URL: req.SuccessURL}, nil
}

// CreatePortalSession fabricates a portal session.
// PRE: req is a valid PortalRequest
// POST: Returns a fake portal URL
func (c *NoopClient) CreatePortalSession(_ context.Context, req PortalRequest) (PortalSession, error) {
	slog.Info("noop_portal_session", "user_id", req.UserID)
	return PortalSession{URL: req.ReturnURL}, nil
}

// ListInvoices returns no invoices.
// PRE: userID is non-empty
// POST: Returns an empty invoice list
func (c *NoopClient) ListInvoices(_ context.Context, _ string) ([]Invoice, error) {
	return nil, nil
}
