package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	emailAdapter "learnhub/internal/adapters/email"
	outboxStore "learnhub/internal/adapters/storage/outbox"
	domain "learnhub/internal/domain/outbox"
)

// ActionExecutor executes a specific type of external action.
type ActionExecutor interface {
	// Execute runs the external action with the given payload. Returns the
	// external ID (e.g. the provider message id) and any error.
	Execute(ctx context.Context, payload string) (string, error)
}

// OutboxProcessor replays failed external actions with exponential backoff.
type OutboxProcessor struct {
	store     outboxStore.Store
	executors map[string]ActionExecutor
	baseDelay time.Duration
	maxDelay  time.Duration
	batchSize int
}

// NewOutboxProcessor creates a new outbox processor.
func NewOutboxProcessor(store outboxStore.Store, executors map[string]ActionExecutor) *OutboxProcessor {
	return &OutboxProcessor{
		store:     store,
		executors: executors,
		baseDelay: 30 * time.Second,
		maxDelay:  1 * time.Hour,
		batchSize: 10,
	}
}

// ProcessPending processes pending outbox entries with retries.
// PRE: Context is valid
// POST: Pending entries are processed, failed entries marked for retry
func (p *OutboxProcessor) ProcessPending(ctx context.Context) error {
	entries, err := p.store.ListPending(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("list pending outbox entries: %w", err)
	}

	for _, entry := range entries {
		if err := p.processEntry(ctx, entry); err != nil {
			slog.Error("outbox_process_failed", "entry_id", entry.ID, "action_type", entry.ActionType, "error", err.Error())
		}
	}

	return nil
}

// processEntry processes a single outbox entry.
func (p *OutboxProcessor) processEntry(ctx context.Context, entry domain.Entry) error {
	// Respect the backoff window between attempts.
	if !entry.LastAttemptedAt.IsZero() {
		delay := entry.NextRetryDelay(p.baseDelay, p.maxDelay)
		if time.Since(entry.LastAttemptedAt) < delay {
			return nil
		}
	}

	executor, ok := p.executors[entry.ActionType]
	if !ok {
		entry.MarkFailed(fmt.Errorf("no executor registered for action type: %s", entry.ActionType))
		return p.store.Save(ctx, entry)
	}

	entry.MarkAttempt()
	externalID, err := executor.Execute(ctx, entry.Payload)
	if err != nil {
		entry.MarkFailed(err)
		slog.Warn("outbox_action_failed", "entry_id", entry.ID, "attempt", entry.Attempts, "error", err.Error())
	} else {
		entry.MarkSuccess(externalID)
		slog.Info("outbox_action_succeeded", "entry_id", entry.ID, "action_type", entry.ActionType, "external_id", externalID)
	}

	return p.store.Save(ctx, entry)
}

// RunWorker processes the outbox on an interval until the context ends.
// PRE: interval > 0
// POST: Returns when ctx is cancelled
func (p *OutboxProcessor) RunWorker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.ProcessPending(ctx); err != nil {
				slog.Error("outbox_worker_failed", "error", err.Error())
			}
		}
	}
}

// ReceiptEmailExecutor replays queued payment-receipt emails.
type ReceiptEmailExecutor struct {
	Sender emailAdapter.Sender
}

// Execute sends the receipt described by the payload.
// PRE: payload is a JSON receipt payload
// POST: Returns the provider message id on success
func (e *ReceiptEmailExecutor) Execute(ctx context.Context, payload string) (string, error) {
	var receipt receiptPayload
	if err := json.Unmarshal([]byte(payload), &receipt); err != nil {
		return "", fmt.Errorf("decode receipt payload: %w", err)
	}

	result, err := e.Sender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{receipt.Email},
		Subject: fmt.Sprintf("Your LearnHub order: %s", receipt.CourseTitle),
		HTML: fmt.Sprintf("<p>Thanks for your purchase of <strong>%s</strong>.</p><p>Order reference: %s</p>",
			receipt.CourseTitle, receipt.SessionID),
	})
	if err != nil {
		return "", err
	}
	return result.MessageID, nil
}
