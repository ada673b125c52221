// Package payment talks to the external billing endpoints. Checkout and
// portal sessions are created by serverless functions owned by the billing
// provider integration; this package only carries the JSON back and forth.
package payment

import (
	"context"
	"time"
)

// CheckoutRequest asks for a hosted checkout session for one course.
type CheckoutRequest struct {
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	CourseID   string `json:"courseId"`
	PriceCents int    `json:"priceCents"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

// CheckoutSession is the hosted session the user is redirected to.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// PortalRequest asks for a hosted billing-portal session.
type PortalRequest struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	ReturnURL string `json:"returnUrl"`
}

// PortalSession is the hosted portal the user is redirected to.
type PortalSession struct {
	URL string `json:"url"`
}

// Invoice is one line of billing history.
type Invoice struct {
	ID          string    `json:"id"`
	AmountCents int       `json:"amountCents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	HostedURL   string    `json:"hostedUrl"`
}

// Client is the interface to the external billing endpoints.
type Client interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
	CreatePortalSession(ctx context.Context, req PortalRequest) (PortalSession, error)
	ListInvoices(ctx context.Context, userID string) ([]Invoice, error)
}
