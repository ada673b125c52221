package projections

import (
	"context"

	"learnhub/internal/adapters/storage/course"
	domainCourse "learnhub/internal/domain/course"
	domainProgress "learnhub/internal/domain/progress"
	domainUser "learnhub/internal/domain/user"
)

// CourseStore interface for catalog queries.
type CourseStore interface {
	GetByID(ctx context.Context, id string) (domainCourse.Course, error)
	List(ctx context.Context, filter course.ListFilter) ([]domainCourse.Course, error)
	Count(ctx context.Context, filter course.ListFilter) (int, error)
	ListLessons(ctx context.Context, courseID string) ([]domainCourse.Lesson, error)
	ListResources(ctx context.Context, courseID string) ([]domainCourse.Resource, error)
	ListAssignments(ctx context.Context, courseID string) ([]domainCourse.Assignment, error)
}

// UserStore interface for profile and enrollment queries.
type UserStore interface {
	GetByID(ctx context.Context, id string) (domainUser.User, error)
	CountByRole(ctx context.Context, role string) (int, error)
	ListEnrolled(ctx context.Context, userID string) ([]string, error)
	ListFavorites(ctx context.Context, userID string) ([]string, error)
}

// ProgressStore interface for progress queries.
type ProgressStore interface {
	Get(ctx context.Context, userID, courseID string) (domainProgress.CourseProgress, error)
	ListByUser(ctx context.Context, userID string) ([]domainProgress.CourseProgress, error)
}
