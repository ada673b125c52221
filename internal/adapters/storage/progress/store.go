package progress

import (
	"context"

	domain "learnhub/internal/domain/progress"
)

// Store defines the interface for per-course progress persistence.
type Store interface {
	// Get returns the progress row for one user+course, including history
	// samples. A missing row returns a zero-valued CourseProgress, not an
	// error — never opening a course is a valid state.
	Get(ctx context.Context, userID, courseID string) (domain.CourseProgress, error)

	Save(ctx context.Context, p domain.CourseProgress) error

	// ListByUser returns all progress rows for a user, history included.
	ListByUser(ctx context.Context, userID string) ([]domain.CourseProgress, error)

	// SaveSample upserts one per-day history sample (last write for a day wins).
	SaveSample(ctx context.Context, userID, courseID string, sample domain.Sample) error
}
