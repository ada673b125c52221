package account

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"learnhub/internal/adapters/storage"
	domain "learnhub/internal/domain/account"
)

const dateLayout = time.RFC3339Nano

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new AccountStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const accountColumns = "id, email, password_hash, role, status, created_at, failed_logins, locked_until"

// GetByID retrieves an Account by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM account WHERE id = ?", id)
	entity, err := scanAccount(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	return entity, err
}

// GetByEmail retrieves an Account by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM account WHERE email = ?", email)
	entity, err := scanAccount(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	return entity, err
}

// Save persists an Account to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Account) error {
	lockedUntil := ""
	if !entity.LockedUntil.IsZero() {
		lockedUntil = entity.LockedUntil.Format(dateLayout)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO account (id, email, password_hash, role, status, created_at, failed_logins, locked_until)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   email=excluded.email, password_hash=excluded.password_hash, role=excluded.role,
		   status=excluded.status, failed_logins=excluded.failed_logins, locked_until=excluded.locked_until`,
		entity.ID, entity.Email, entity.PasswordHash, entity.Role, entity.Status,
		entity.CreatedAt.Format(dateLayout), entity.FailedLogins, lockedUntil)
	return err
}

// Count returns the total number of accounts.
// PRE: none
// POST: Returns the count
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account").Scan(&count)
	return count, err
}

// SaveActivationToken persists an activation token.
// PRE: token has been populated
// POST: Token is persisted (insert or update)
func (s *SQLiteStore) SaveActivationToken(ctx context.Context, t domain.ActivationToken) error {
	used := 0
	if t.Used {
		used = 1
	}
	purpose := t.Purpose
	if purpose == "" {
		purpose = domain.TokenPurposeActivation
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activation_token (id, account_id, token, purpose, expires_at, used, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET used=excluded.used`,
		t.ID, t.AccountID, t.Token, purpose, t.ExpiresAt.Format(dateLayout), used, t.CreatedAt.Format(dateLayout))
	return err
}

// GetActivationToken retrieves an activation token by its token value.
// PRE: token is non-empty
// POST: Returns the token or an error if not found
func (s *SQLiteStore) GetActivationToken(ctx context.Context, token string) (domain.ActivationToken, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, account_id, token, purpose, expires_at, used, created_at FROM activation_token WHERE token = ?", token)
	var t domain.ActivationToken
	var expiresAt, createdAt string
	var used int
	err := row.Scan(&t.ID, &t.AccountID, &t.Token, &t.Purpose, &expiresAt, &used, &createdAt)
	if err == sql.ErrNoRows {
		return domain.ActivationToken{}, fmt.Errorf("activation token not found: %w", err)
	}
	if err != nil {
		return domain.ActivationToken{}, err
	}
	t.Used = used != 0
	t.ExpiresAt, _ = time.Parse(dateLayout, expiresAt)
	t.CreatedAt, _ = time.Parse(dateLayout, createdAt)
	return t, nil
}

func scanAccount(scan func(dest ...any) error) (domain.Account, error) {
	var a domain.Account
	var createdAt string
	var lockedUntil sql.NullString
	err := scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.Status, &createdAt, &a.FailedLogins, &lockedUntil)
	if err != nil {
		return domain.Account{}, err
	}
	a.CreatedAt, _ = time.Parse(dateLayout, createdAt)
	if lockedUntil.Valid && lockedUntil.String != "" {
		a.LockedUntil, _ = time.Parse(dateLayout, lockedUntil.String)
	}
	return a, nil
}
