package prefs

import (
	"context"

	domain "learnhub/internal/domain/prefs"
)

// Store defines the interface for per-user preference persistence.
// Writes are last-write-wins; there is no history.
type Store interface {
	Get(ctx context.Context, userID, key string) (string, error)
	Set(ctx context.Context, userID, key, value string) error
	Delete(ctx context.Context, userID, key string) error
}

// ErrNotFound is re-exported for call sites that only import the store.
var ErrNotFound = domain.ErrNotFound
