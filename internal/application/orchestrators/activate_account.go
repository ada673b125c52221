package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"learnhub/internal/domain/account"
)

// AccountStoreForActivate defines the store interface needed by ActivateAccount.
type AccountStoreForActivate interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	GetActivationToken(ctx context.Context, token string) (account.ActivationToken, error)
	SaveActivationToken(ctx context.Context, t account.ActivationToken) error
}

// ActivateAccountDeps holds dependencies for ActivateAccount.
type ActivateAccountDeps struct {
	AccountStore AccountStoreForActivate
}

// ExecuteActivateAccount redeems an activation token.
// PRE: token is non-empty
// POST: Account is active and the token is invalidated
// INVARIANT: A token activates at most one account, once
func ExecuteActivateAccount(ctx context.Context, token string, deps ActivateAccountDeps) error {
	if token == "" {
		return account.ErrTokenInvalid
	}

	t, err := deps.AccountStore.GetActivationToken(ctx, token)
	if err != nil || t.Used {
		return account.ErrTokenInvalid
	}
	if t.Purpose != "" && t.Purpose != account.TokenPurposeActivation {
		return account.ErrTokenInvalid
	}
	if t.IsExpired(time.Now()) {
		return account.ErrTokenExpired
	}

	acct, err := deps.AccountStore.GetByID(ctx, t.AccountID)
	if err != nil {
		return account.ErrTokenInvalid
	}
	if err := acct.Activate(); err != nil {
		return err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}
	t.Invalidate()
	if err := deps.AccountStore.SaveActivationToken(ctx, t); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "account_activated", "account_id", acct.ID)
	return nil
}
