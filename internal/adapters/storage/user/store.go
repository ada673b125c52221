package user

import (
	"context"

	domain "learnhub/internal/domain/user"
)

// Store defines the interface for user profile and enrollment persistence.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	Save(ctx context.Context, u domain.User) error
	CountByRole(ctx context.Context, role string) (int, error)

	// Enrollment list operations. Enroll is idempotent; enrolling an already
	// enrolled user is not an error.
	Enroll(ctx context.Context, userID, courseID string) error
	Unenroll(ctx context.Context, userID, courseID string) error
	ListEnrolled(ctx context.Context, userID string) ([]string, error)
	IsEnrolled(ctx context.Context, userID, courseID string) (bool, error)

	// Favorite list operations.
	AddFavorite(ctx context.Context, userID, courseID string) error
	RemoveFavorite(ctx context.Context, userID, courseID string) error
	ListFavorites(ctx context.Context, userID string) ([]string, error)
}
