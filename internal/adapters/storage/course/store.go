package course

import (
	"context"

	domain "learnhub/internal/domain/course"
)

// ListFilter carries catalog query parameters. Zero values mean "no filter".
type ListFilter struct {
	Category   string
	Difficulty string
	Search     string // matched against title and category, case-insensitive
	Sort       string // title, price, rating, students (empty means title)
	Dir        string // asc or desc
	Limit      int
	Offset     int
}

// Store defines the interface for course catalog persistence.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Course, error)
	Save(ctx context.Context, c domain.Course) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Course, error)
	Count(ctx context.Context, filter ListFilter) (int, error)

	// AddStudents adjusts the denormalized enrolled-student counter.
	AddStudents(ctx context.Context, courseID string, delta int) error

	ListLessons(ctx context.Context, courseID string) ([]domain.Lesson, error)
	SaveLesson(ctx context.Context, l domain.Lesson) error
	ListResources(ctx context.Context, courseID string) ([]domain.Resource, error)
	SaveResource(ctx context.Context, r domain.Resource) error
	ListAssignments(ctx context.Context, courseID string) ([]domain.Assignment, error)
	SaveAssignment(ctx context.Context, a domain.Assignment) error
}
