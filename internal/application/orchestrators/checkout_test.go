package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	emailAdapter "learnhub/internal/adapters/email"
	"learnhub/internal/adapters/payment"
	"learnhub/internal/domain/course"
	"learnhub/internal/domain/outbox"
)

type mockCheckoutCourseStore struct {
	courses map[string]course.Course
}

// GetByID returns a seeded course.
// PRE: id is non-empty
// POST: Returns the course or an error if unseeded
func (m *mockCheckoutCourseStore) GetByID(_ context.Context, id string) (course.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return course.Course{}, context.DeadlineExceeded
}

type mockPaymentClient struct {
	session payment.CheckoutSession
	err     error
}

// CreateCheckoutSession returns the seeded session.
// PRE: req is valid
// POST: Returns the session or the configured error
func (m *mockPaymentClient) CreateCheckoutSession(_ context.Context, _ payment.CheckoutRequest) (payment.CheckoutSession, error) {
	return m.session, m.err
}

// CreatePortalSession is unused in these tests.
func (m *mockPaymentClient) CreatePortalSession(_ context.Context, _ payment.PortalRequest) (payment.PortalSession, error) {
	return payment.PortalSession{}, nil
}

// ListInvoices is unused in these tests.
func (m *mockPaymentClient) ListInvoices(_ context.Context, _ string) ([]payment.Invoice, error) {
	return nil, nil
}

type mockCheckoutSender struct {
	sent []emailAdapter.SendRequest
	err  error
}

// Send records the request.
// PRE: req is valid
// POST: Request recorded or the configured error returned
func (m *mockCheckoutSender) Send(_ context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	if m.err != nil {
		return emailAdapter.SendResult{}, m.err
	}
	m.sent = append(m.sent, req)
	return emailAdapter.SendResult{MessageID: "msg-1"}, nil
}

// SendBatch is unused in these tests.
func (m *mockCheckoutSender) SendBatch(_ context.Context, _ []emailAdapter.SendRequest) ([]emailAdapter.SendResult, error) {
	return nil, nil
}

type mockCheckoutOutbox struct {
	entries []outbox.Entry
}

// Save records the entry.
// PRE: entry is validated
// POST: Entry recorded
func (m *mockCheckoutOutbox) Save(_ context.Context, e outbox.Entry) error {
	m.entries = append(m.entries, e)
	return nil
}

func checkoutDeps(client payment.Client, sender emailAdapter.Sender, box *mockCheckoutOutbox) CheckoutDeps {
	return CheckoutDeps{
		CourseStore: &mockCheckoutCourseStore{courses: map[string]course.Course{
			"advanced-ai": {ID: "advanced-ai", Title: "Advanced AI", PriceCents: 4900},
			"go-basics":   {ID: "go-basics", Title: "Go Basics"},
		}},
		PaymentClient: client,
		EmailSender:   sender,
		OutboxStore:   box,
	}
}

// TestExecuteCheckout verifies the happy path sends the receipt directly.
func TestExecuteCheckout(t *testing.T) {
	sender := &mockCheckoutSender{}
	box := &mockCheckoutOutbox{}
	client := &mockPaymentClient{session: payment.CheckoutSession{SessionID: "cs_1", URL: "https://pay.example/cs_1"}}

	session, err := ExecuteCheckout(context.Background(), CheckoutInput{
		UserID: "u1", Email: "j@x.dev", CourseID: "advanced-ai",
	}, checkoutDeps(client, sender, box))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.SessionID != "cs_1" {
		t.Errorf("session = %+v", session)
	}
	if len(sender.sent) != 1 || !strings.Contains(sender.sent[0].Subject, "Advanced AI") {
		t.Errorf("receipt = %+v", sender.sent)
	}
	if len(box.entries) != 0 {
		t.Error("successful receipt must not reach the outbox")
	}
}

// TestExecuteCheckout_ReceiptFailureQueues verifies a failed receipt email
// lands in the outbox without failing the checkout.
func TestExecuteCheckout_ReceiptFailureQueues(t *testing.T) {
	sender := &mockCheckoutSender{err: errors.New("provider down")}
	box := &mockCheckoutOutbox{}
	client := &mockPaymentClient{session: payment.CheckoutSession{SessionID: "cs_2"}}

	_, err := ExecuteCheckout(context.Background(), CheckoutInput{
		UserID: "u1", Email: "j@x.dev", CourseID: "advanced-ai",
	}, checkoutDeps(client, sender, box))
	if err != nil {
		t.Fatalf("checkout must survive receipt failure: %v", err)
	}
	if len(box.entries) != 1 {
		t.Fatalf("outbox entries = %d, want 1", len(box.entries))
	}
	e := box.entries[0]
	if e.ActionType != outbox.ActionTypeReceiptEmail || e.Status != outbox.StatusPending {
		t.Errorf("entry = %+v", e)
	}
	if !strings.Contains(e.Payload, "cs_2") {
		t.Errorf("payload missing session id: %s", e.Payload)
	}
}

// TestExecuteCheckout_FreeCourse verifies free courses skip checkout.
func TestExecuteCheckout_FreeCourse(t *testing.T) {
	client := &mockPaymentClient{}
	_, err := ExecuteCheckout(context.Background(), CheckoutInput{
		UserID: "u1", CourseID: "go-basics",
	}, checkoutDeps(client, nil, nil))
	if err != ErrCourseIsFree {
		t.Errorf("err = %v, want ErrCourseIsFree", err)
	}
}

// TestExecuteCheckout_PaymentFailure verifies provider errors surface.
func TestExecuteCheckout_PaymentFailure(t *testing.T) {
	client := &mockPaymentClient{err: errors.New("gateway timeout")}
	_, err := ExecuteCheckout(context.Background(), CheckoutInput{
		UserID: "u1", CourseID: "advanced-ai",
	}, checkoutDeps(client, nil, nil))
	if err == nil {
		t.Fatal("expected error from payment failure")
	}
}
