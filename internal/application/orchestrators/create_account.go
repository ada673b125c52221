package orchestrators

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	emailAdapter "learnhub/internal/adapters/email"
	"learnhub/internal/domain/account"
	"learnhub/internal/domain/user"

	"github.com/google/uuid"
)

// AccountStoreForCreate defines the store interface needed by CreateAccount.
type AccountStoreForCreate interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	Count(ctx context.Context) (int, error)
	SaveActivationToken(ctx context.Context, t account.ActivationToken) error
}

// UserStoreForCreate defines the profile store interface needed by CreateAccount.
type UserStoreForCreate interface {
	Save(ctx context.Context, u user.User) error
}

// CreateAccountInput carries input for the orchestrator.
type CreateAccountInput struct {
	Email       string
	Password    string
	DisplayName string
	FirstName   string
	Role        string
	// Active skips the activation email (seeded and admin-created accounts).
	Active bool
}

// CreateAccountDeps holds dependencies for CreateAccount.
type CreateAccountDeps struct {
	AccountStore AccountStoreForCreate
	UserStore    UserStoreForCreate
	EmailSender  emailAdapter.Sender // optional; nil skips the activation email
	BaseURL      string              // public origin for the activation link
}

var ErrEmailAlreadyExists = errors.New("an account with this email already exists")

// activationTokenTTL is how long an emailed activation link stays valid.
const activationTokenTTL = 48 * time.Hour

// ExecuteCreateAccount coordinates sign-up: the credential account, the
// profile document it owns, and the activation email.
// PRE: Valid email, password >= 12 chars, valid role
// POST: Account and profile created; pending accounts get an activation token
// INVARIANT: Email must be unique
func ExecuteCreateAccount(ctx context.Context, input CreateAccountInput, deps CreateAccountDeps) (string, error) {
	if input.Email == "" {
		return "", errors.New("email cannot be empty")
	}
	if input.Password == "" {
		return "", errors.New("password cannot be empty")
	}
	if input.Role == "" {
		input.Role = account.RoleUser
	}

	_, err := deps.AccountStore.GetByEmail(ctx, input.Email)
	if err == nil {
		return "", ErrEmailAlreadyExists
	}

	status := account.StatusPendingActivation
	if input.Active {
		status = account.StatusActive
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     input.Email,
		Role:      input.Role,
		Status:    status,
		CreatedAt: time.Now(),
	}
	if err := acct.Validate(); err != nil {
		return "", err
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return "", err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return "", err
	}

	profile := user.User{
		ID:          acct.ID,
		Email:       acct.Email,
		DisplayName: input.DisplayName,
		FirstName:   input.FirstName,
		Role:        acct.Role,
	}
	if err := profile.Validate(); err != nil {
		return "", err
	}
	if err := deps.UserStore.Save(ctx, profile); err != nil {
		return "", err
	}

	if status == account.StatusPendingActivation {
		if err := sendActivationEmail(ctx, acct, deps); err != nil {
			// Account exists; the user can request a new link later.
			slog.Error("activation_email_failed", "email", acct.Email, "error", err)
		}
	}

	slog.Info("auth_event", "event", "account_created", "email", input.Email, "role", acct.Role)
	return acct.ID, nil
}

func sendActivationEmail(ctx context.Context, acct account.Account, deps CreateAccountDeps) error {
	token := account.ActivationToken{
		ID:        uuid.New().String(),
		AccountID: acct.ID,
		Token:     newActivationToken(),
		Purpose:   account.TokenPurposeActivation,
		ExpiresAt: time.Now().Add(activationTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := deps.AccountStore.SaveActivationToken(ctx, token); err != nil {
		return err
	}
	if deps.EmailSender == nil {
		return nil
	}

	link := fmt.Sprintf("%s/activate?token=%s", deps.BaseURL, token.Token)
	_, err := deps.EmailSender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{acct.Email},
		Subject: "Activate your LearnHub account",
		HTML: fmt.Sprintf(
			"<p>Welcome to LearnHub!</p><p><a href=%q>Activate your account</a>. The link expires in 48 hours.</p>",
			link),
	})
	return err
}

func newActivationToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ExecuteSeedAdmin creates a default admin account if no accounts exist.
// PRE: Database is initialized
// POST: Admin account created if count == 0
func ExecuteSeedAdmin(ctx context.Context, deps CreateAccountDeps, email, password string) error {
	count, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = ExecuteCreateAccount(ctx, CreateAccountInput{
		Email:       email,
		Password:    password,
		DisplayName: "Administrator",
		Role:        account.RoleAdmin,
		Active:      true,
	}, deps)
	if err != nil {
		return err
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", email)
	return nil
}
