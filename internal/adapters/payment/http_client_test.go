package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestCreateCheckoutSession verifies the request body and response decoding.
func TestCreateCheckoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/create-checkout-session" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %s", ct)
		}
		var req CheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.CourseID != "advanced-ai" || req.PriceCents != 4900 {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(CheckoutSession{SessionID: "cs_123", URL: "https://pay.example/cs_123"})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	session, err := client.CreateCheckoutSession(context.Background(), CheckoutRequest{
		UserID: "u1", CourseID: "advanced-ai", PriceCents: 4900,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.SessionID != "cs_123" || session.URL == "" {
		t.Errorf("session = %+v", session)
	}
}

// TestListInvoices verifies the invoice envelope decoding.
func TestListInvoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get-invoices" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"invoices":[{"id":"in_1","amountCents":4900,"currency":"usd","status":"paid"}]}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	invoices, err := client.ListInvoices(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(invoices) != 1 || invoices[0].ID != "in_1" || invoices[0].AmountCents != 4900 {
		t.Errorf("invoices = %+v", invoices)
	}
}

// TestPostErrorStatus verifies non-200 responses surface as errors.
func TestPostErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "provider unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	_, err := client.CreatePortalSession(context.Background(), PortalRequest{UserID: "u1"})
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
}
