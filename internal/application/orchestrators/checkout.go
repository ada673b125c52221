package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	emailAdapter "learnhub/internal/adapters/email"
	"learnhub/internal/adapters/payment"
	"learnhub/internal/domain/course"
	"learnhub/internal/domain/outbox"

	"github.com/google/uuid"
)

// CourseStoreForCheckout defines the catalog interface needed by Checkout.
type CourseStoreForCheckout interface {
	GetByID(ctx context.Context, id string) (course.Course, error)
}

// OutboxStoreForCheckout defines the outbox interface needed by Checkout.
type OutboxStoreForCheckout interface {
	Save(ctx context.Context, e outbox.Entry) error
}

// CheckoutInput carries input for the checkout orchestrator.
type CheckoutInput struct {
	UserID     string
	Email      string
	CourseID   string
	SuccessURL string
	CancelURL  string
}

// CheckoutDeps holds dependencies for Checkout.
type CheckoutDeps struct {
	CourseStore   CourseStoreForCheckout
	PaymentClient payment.Client
	EmailSender   emailAdapter.Sender    // optional
	OutboxStore   OutboxStoreForCheckout // optional; queues failed receipt emails
}

var ErrCourseIsFree = errors.New("course is free and needs no checkout")

// receiptPayload is the outbox payload for a deferred receipt email.
type receiptPayload struct {
	Email       string `json:"email"`
	CourseID    string `json:"courseId"`
	CourseTitle string `json:"courseTitle"`
	SessionID   string `json:"sessionId"`
	PriceCents  int    `json:"priceCents"`
}

// ExecuteCheckout creates a hosted checkout session for a paid course and
// sends the receipt email. A failed receipt send is queued to the outbox so
// the purchase itself never fails on email trouble.
// PRE: UserID, Email and CourseID are non-empty
// POST: Returns the checkout session; payment failures surface as errors
func ExecuteCheckout(ctx context.Context, input CheckoutInput, deps CheckoutDeps) (payment.CheckoutSession, error) {
	if input.UserID == "" || input.CourseID == "" {
		return payment.CheckoutSession{}, errors.New("user id and course id are required")
	}

	c, err := deps.CourseStore.GetByID(ctx, input.CourseID)
	if err != nil {
		return payment.CheckoutSession{}, ErrCourseNotFound
	}
	if c.IsFree() {
		return payment.CheckoutSession{}, ErrCourseIsFree
	}

	session, err := deps.PaymentClient.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		UserID:     input.UserID,
		Email:      input.Email,
		CourseID:   c.ID,
		PriceCents: c.PriceCents,
		SuccessURL: input.SuccessURL,
		CancelURL:  input.CancelURL,
	})
	if err != nil {
		slog.Error("checkout_session_failed", "course_id", c.ID, "error", err)
		return payment.CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}

	slog.Info("payment_event", "event", "checkout_created", "user_id", input.UserID,
		"course_id", c.ID, "session_id", session.SessionID)

	if err := sendReceiptEmail(ctx, input, c, session, deps); err != nil {
		slog.Warn("receipt_email_failed", "session_id", session.SessionID, "error", err)
		queueReceiptRetry(ctx, input, c, session, deps)
	}
	return session, nil
}

func sendReceiptEmail(ctx context.Context, input CheckoutInput, c course.Course, session payment.CheckoutSession, deps CheckoutDeps) error {
	if deps.EmailSender == nil {
		return nil
	}
	_, err := deps.EmailSender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{input.Email},
		Subject: fmt.Sprintf("Your LearnHub order: %s", c.Title),
		HTML: fmt.Sprintf("<p>Thanks for your purchase of <strong>%s</strong>.</p><p>Order reference: %s</p>",
			c.Title, session.SessionID),
	})
	return err
}

func queueReceiptRetry(ctx context.Context, input CheckoutInput, c course.Course, session payment.CheckoutSession, deps CheckoutDeps) {
	if deps.OutboxStore == nil {
		return
	}
	body, err := json.Marshal(receiptPayload{
		Email:       input.Email,
		CourseID:    c.ID,
		CourseTitle: c.Title,
		SessionID:   session.SessionID,
		PriceCents:  c.PriceCents,
	})
	if err != nil {
		return
	}

	entry := outbox.Entry{
		ID:          uuid.New().String(),
		ActionType:  outbox.ActionTypeReceiptEmail,
		Payload:     string(body),
		Status:      outbox.StatusPending,
		MaxAttempts: 5,
		CreatedAt:   time.Now(),
	}
	if err := deps.OutboxStore.Save(ctx, entry); err != nil {
		slog.Error("receipt_outbox_enqueue_failed", "session_id", session.SessionID, "error", err)
		return
	}
	slog.Info("payment_event", "event", "receipt_queued", "entry_id", entry.ID)
}
