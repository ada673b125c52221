package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	emailAdapter "learnhub/internal/adapters/email"
	"learnhub/internal/domain/account"
)

// resetTokenTTL is how long a password-reset link stays valid.
const resetTokenTTL = 1 * time.Hour

// AccountStoreForReset defines the store interface needed by the reset flow.
type AccountStoreForReset interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	SaveActivationToken(ctx context.Context, t account.ActivationToken) error
	GetActivationToken(ctx context.Context, token string) (account.ActivationToken, error)
}

// ResetPasswordDeps holds dependencies for the password-reset flow.
type ResetPasswordDeps struct {
	AccountStore AccountStoreForReset
	EmailSender  emailAdapter.Sender // optional; nil skips the email
	BaseURL      string
}

// ExecuteRequestPasswordReset issues a reset token and emails the link.
// An unknown email succeeds silently so the endpoint cannot be used to
// enumerate accounts.
// PRE: email is non-empty
// POST: A reset token exists for the account, if one matched
func ExecuteRequestPasswordReset(ctx context.Context, email string, deps ResetPasswordDeps) error {
	acct, err := deps.AccountStore.GetByEmail(ctx, email)
	if err != nil {
		slog.Info("auth_event", "event", "reset_requested_unknown_email", "email", email)
		return nil
	}

	token := account.ActivationToken{
		ID:        uuid.New().String(),
		AccountID: acct.ID,
		Token:     newActivationToken(),
		Purpose:   account.TokenPurposeReset,
		ExpiresAt: time.Now().Add(resetTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := deps.AccountStore.SaveActivationToken(ctx, token); err != nil {
		return err
	}

	if deps.EmailSender != nil {
		link := fmt.Sprintf("%s/reset-password?token=%s", deps.BaseURL, token.Token)
		if _, err := deps.EmailSender.Send(ctx, emailAdapter.SendRequest{
			To:      []string{acct.Email},
			Subject: "Reset your LearnHub password",
			HTML: fmt.Sprintf(
				"<p>Someone asked to reset the password for this account.</p><p><a href=%q>Choose a new password</a>. The link expires in 1 hour.</p>",
				link),
		}); err != nil {
			slog.Error("reset_email_failed", "email", acct.Email, "error", err)
			return err
		}
	}

	slog.Info("auth_event", "event", "reset_requested", "account_id", acct.ID)
	return nil
}

// ExecuteResetPassword redeems a reset token and installs the new password.
// PRE: token and newPassword are non-empty
// POST: Password replaced, lockout cleared, token invalidated
// INVARIANT: A token resets at most one password, once
func ExecuteResetPassword(ctx context.Context, token, newPassword string, deps ResetPasswordDeps) error {
	if token == "" {
		return account.ErrTokenInvalid
	}

	t, err := deps.AccountStore.GetActivationToken(ctx, token)
	if err != nil || t.Used {
		return account.ErrTokenInvalid
	}
	if t.Purpose != account.TokenPurposeReset {
		return account.ErrTokenInvalid
	}
	if t.IsExpired(time.Now()) {
		return account.ErrTokenExpired
	}

	acct, err := deps.AccountStore.GetByID(ctx, t.AccountID)
	if err != nil {
		return account.ErrTokenInvalid
	}
	if err := acct.SetPassword(newPassword); err != nil {
		return err
	}
	acct.ResetFailedLogins()

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}
	t.Invalidate()
	if err := deps.AccountStore.SaveActivationToken(ctx, t); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "password_reset", "account_id", acct.ID)
	return nil
}
