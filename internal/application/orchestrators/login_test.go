package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	emailAdapter "learnhub/internal/adapters/email"
	"learnhub/internal/domain/account"
	"learnhub/internal/domain/user"
)

type mockAccountStore struct {
	accounts map[string]account.Account // keyed by email
	tokens   map[string]account.ActivationToken
}

// GetByID returns the account with the matching id.
// PRE: id is non-empty
// POST: Returns the account or an error
func (m *mockAccountStore) GetByID(_ context.Context, id string) (account.Account, error) {
	for _, a := range m.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return account.Account{}, errors.New("not found")
}

// GetByEmail returns the seeded account.
// PRE: email is non-empty
// POST: Returns the account or an error
func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	if a, ok := m.accounts[email]; ok {
		return a, nil
	}
	return account.Account{}, errors.New("not found")
}

// Save stores the account by email.
// PRE: account is validated
// POST: Account stored
func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	if m.accounts == nil {
		m.accounts = make(map[string]account.Account)
	}
	m.accounts[a.Email] = a
	return nil
}

// Count returns the number of seeded accounts.
// PRE: none
// POST: Returns count >= 0
func (m *mockAccountStore) Count(_ context.Context) (int, error) {
	return len(m.accounts), nil
}

// SaveActivationToken stores the token.
// PRE: token is populated
// POST: Token stored
func (m *mockAccountStore) SaveActivationToken(_ context.Context, t account.ActivationToken) error {
	if m.tokens == nil {
		m.tokens = make(map[string]account.ActivationToken)
	}
	m.tokens[t.Token] = t
	return nil
}

// GetActivationToken returns the seeded token.
// PRE: token is non-empty
// POST: Returns the token or an error
func (m *mockAccountStore) GetActivationToken(_ context.Context, token string) (account.ActivationToken, error) {
	if t, ok := m.tokens[token]; ok {
		return t, nil
	}
	return account.ActivationToken{}, errors.New("not found")
}

type mockProfileStore struct {
	saved []user.User
}

// Save records the profile.
// PRE: profile is validated
// POST: Profile recorded
func (m *mockProfileStore) Save(_ context.Context, u user.User) error {
	m.saved = append(m.saved, u)
	return nil
}

func activeAccount(t *testing.T, email, password string) account.Account {
	t.Helper()
	a := account.Account{ID: "acc-1", Email: email, Role: account.RoleUser, Status: account.StatusActive, CreatedAt: time.Now()}
	if err := a.SetPassword(password); err != nil {
		t.Fatalf("set password: %v", err)
	}
	return a
}

// TestExecuteLogin verifies a valid credential pair signs in.
func TestExecuteLogin(t *testing.T) {
	store := &mockAccountStore{}
	_ = store.Save(context.Background(), activeAccount(t, "j@x.dev", "correct-horse-battery"))

	res, err := ExecuteLogin(context.Background(), LoginInput{Email: "j@x.dev", Password: "correct-horse-battery"}, LoginDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AccountID != "acc-1" || res.Role != account.RoleUser {
		t.Errorf("result = %+v", res)
	}
}

// TestExecuteLogin_WrongPasswordLocksOut verifies lockout after repeated
// failures.
func TestExecuteLogin_WrongPasswordLocksOut(t *testing.T) {
	store := &mockAccountStore{}
	_ = store.Save(context.Background(), activeAccount(t, "j@x.dev", "correct-horse-battery"))
	deps := LoginDeps{AccountStore: store}

	for i := 0; i < 5; i++ {
		_, err := ExecuteLogin(context.Background(), LoginInput{Email: "j@x.dev", Password: "wrong-password-123"}, deps)
		if err != ErrInvalidCredentials {
			t.Fatalf("attempt %d: err = %v, want ErrInvalidCredentials", i, err)
		}
	}

	_, err := ExecuteLogin(context.Background(), LoginInput{Email: "j@x.dev", Password: "correct-horse-battery"}, deps)
	if err != ErrAccountLocked {
		t.Errorf("err = %v, want ErrAccountLocked after 5 failures", err)
	}
}

// TestExecuteLogin_PendingActivation verifies unactivated accounts are
// blocked with the dedicated error.
func TestExecuteLogin_PendingActivation(t *testing.T) {
	store := &mockAccountStore{}
	a := activeAccount(t, "j@x.dev", "correct-horse-battery")
	a.Status = account.StatusPendingActivation
	_ = store.Save(context.Background(), a)

	_, err := ExecuteLogin(context.Background(), LoginInput{Email: "j@x.dev", Password: "correct-horse-battery"}, LoginDeps{AccountStore: store})
	if err != ErrPendingActivation {
		t.Errorf("err = %v, want ErrPendingActivation", err)
	}
}

type recordingSender struct {
	sent []emailAdapter.SendRequest
}

// Send records the request.
// PRE: req is valid
// POST: Request recorded
func (r *recordingSender) Send(_ context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	r.sent = append(r.sent, req)
	return emailAdapter.SendResult{MessageID: "msg-1"}, nil
}

// SendBatch is unused in these tests.
func (r *recordingSender) SendBatch(_ context.Context, _ []emailAdapter.SendRequest) ([]emailAdapter.SendResult, error) {
	return nil, nil
}

// TestExecuteCreateAccount verifies sign-up creates the account, the profile,
// and the activation email.
func TestExecuteCreateAccount(t *testing.T) {
	store := &mockAccountStore{}
	profiles := &mockProfileStore{}
	sender := &recordingSender{}
	deps := CreateAccountDeps{AccountStore: store, UserStore: profiles, EmailSender: sender, BaseURL: "https://learnhub.dev"}

	id, err := ExecuteCreateAccount(context.Background(), CreateAccountInput{
		Email: "new@x.dev", Password: "a-long-enough-password", FirstName: "Jane", DisplayName: "Jane Doe",
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("empty account id")
	}

	acct := store.accounts["new@x.dev"]
	if !acct.IsPendingActivation() {
		t.Error("new account must be pending activation")
	}
	if len(profiles.saved) != 1 || profiles.saved[0].ID != id || profiles.saved[0].FirstName != "Jane" {
		t.Errorf("profile = %+v", profiles.saved)
	}
	if len(sender.sent) != 1 || len(store.tokens) != 1 {
		t.Errorf("activation email/token missing: sent=%d tokens=%d", len(sender.sent), len(store.tokens))
	}

	// Duplicate email is rejected.
	if _, err := ExecuteCreateAccount(context.Background(), CreateAccountInput{
		Email: "new@x.dev", Password: "a-long-enough-password",
	}, deps); err != ErrEmailAlreadyExists {
		t.Errorf("err = %v, want ErrEmailAlreadyExists", err)
	}
}

// TestExecuteActivateAccount verifies token redemption is one-shot.
func TestExecuteActivateAccount(t *testing.T) {
	store := &mockAccountStore{}
	profiles := &mockProfileStore{}
	deps := CreateAccountDeps{AccountStore: store, UserStore: profiles}

	_, err := ExecuteCreateAccount(context.Background(), CreateAccountInput{
		Email: "new@x.dev", Password: "a-long-enough-password",
	}, deps)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	var tokenValue string
	for tok := range store.tokens {
		tokenValue = tok
	}

	actDeps := ActivateAccountDeps{AccountStore: store}
	if err := ExecuteActivateAccount(context.Background(), tokenValue, actDeps); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if store.accounts["new@x.dev"].Status != account.StatusActive {
		t.Error("account not activated")
	}

	if err := ExecuteActivateAccount(context.Background(), tokenValue, actDeps); err != account.ErrTokenInvalid {
		t.Errorf("second redemption: err = %v, want ErrTokenInvalid", err)
	}
}

// TestExecuteSeedAdmin verifies seeding only happens on an empty database.
func TestExecuteSeedAdmin(t *testing.T) {
	store := &mockAccountStore{}
	deps := CreateAccountDeps{AccountStore: store, UserStore: &mockProfileStore{}}

	if err := ExecuteSeedAdmin(context.Background(), deps, "admin@learnhub.dev", "an-admin-password"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if store.accounts["admin@learnhub.dev"].Role != account.RoleAdmin {
		t.Error("admin not seeded")
	}
	if store.accounts["admin@learnhub.dev"].Status != account.StatusActive {
		t.Error("seeded admin must be active")
	}

	if err := ExecuteSeedAdmin(context.Background(), deps, "other@learnhub.dev", "another-password-1"); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if _, ok := store.accounts["other@learnhub.dev"]; ok {
		t.Error("second seed must be a no-op")
	}
}
