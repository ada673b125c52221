package account

import (
	"context"

	domain "learnhub/internal/domain/account"
)

// Store defines the interface for account persistence.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	Save(ctx context.Context, a domain.Account) error
	Count(ctx context.Context) (int, error)

	SaveActivationToken(ctx context.Context, t domain.ActivationToken) error
	GetActivationToken(ctx context.Context, token string) (domain.ActivationToken, error)
}
