package prefs

import (
	"context"
	"database/sql"
	"time"

	"learnhub/internal/adapters/storage"
	domain "learnhub/internal/domain/prefs"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new PrefsStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a preference value.
// PRE: userID and key are non-empty
// POST: Returns the value, or ErrNotFound if unset
func (s *SQLiteStore) Get(ctx context.Context, userID, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM prefs WHERE user_id = ? AND key = ?", userID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	return value, err
}

// Set stores a preference value, overwriting any previous value.
// PRE: userID and key are non-empty
// POST: Value persisted (last write wins)
func (s *SQLiteStore) Set(ctx context.Context, userID, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prefs (user_id, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		userID, key, value, time.Now().Format(time.RFC3339Nano))
	return err
}

// Delete removes a preference.
// PRE: userID and key are non-empty
// POST: Row removed if present
func (s *SQLiteStore) Delete(ctx context.Context, userID, key string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM prefs WHERE user_id = ? AND key = ?", userID, key)
	return err
}
