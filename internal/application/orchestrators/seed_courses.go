package orchestrators

import (
	"context"
	"log/slog"
	"time"

	courseStore "learnhub/internal/adapters/storage/course"
	"learnhub/internal/domain/course"
)

// CourseStoreForSeed defines the store interface needed by SeedCourses.
type CourseStoreForSeed interface {
	Count(ctx context.Context, filter courseStore.ListFilter) (int, error)
	Save(ctx context.Context, c course.Course) error
	SaveLesson(ctx context.Context, l course.Lesson) error
}

// SeedCoursesDeps holds dependencies for SeedCourses.
type SeedCoursesDeps struct {
	CourseStore CourseStoreForSeed
}

// ExecuteSeedCourses creates a starter catalog if no courses exist. It is
// idempotent: a non-empty catalog is left alone.
func ExecuteSeedCourses(ctx context.Context, deps SeedCoursesDeps) error {
	n, err := deps.CourseStore.Count(ctx, courseStore.ListFilter{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil // Already seeded
	}

	now := time.Now()
	courses := []course.Course{
		{
			ID:          "go-fundamentals",
			Title:       "Go Fundamentals",
			Description: "Learn the Go language from the ground up: syntax, types, methods, and the standard library.",
			Category:    "programming",
			Difficulty:  "beginner",
			PriceCents:  0,
			Rating:      4.7,
			CreatedAt:   now,
		},
		{
			ID:          "concurrent-go",
			Title:       "Concurrent Go",
			Description: "Goroutines, channels, and the patterns that keep concurrent programs correct.",
			Category:    "programming",
			Difficulty:  "intermediate",
			PriceCents:  4900,
			Rating:      4.8,
			CreatedAt:   now,
		},
		{
			ID:          "web-services",
			Title:       "Building Web Services",
			Description: "HTTP servers, middleware, sessions, and persistence for production services.",
			Category:    "web",
			Difficulty:  "intermediate",
			PriceCents:  5900,
			Rating:      4.6,
			CreatedAt:   now,
		},
	}
	for _, c := range courses {
		if err := c.Validate(); err != nil {
			return err
		}
		if err := deps.CourseStore.Save(ctx, c); err != nil {
			return err
		}
	}

	lessons := []course.Lesson{
		{ID: "gf-01", CourseID: "go-fundamentals", Title: "Hello, Go", Notes: "Install the toolchain and write your first program.", DurationMinutes: 20, Position: 1},
		{ID: "gf-02", CourseID: "go-fundamentals", Title: "Types and Structs", Notes: "Value types, struct composition, and methods.", DurationMinutes: 35, Position: 2},
		{ID: "cg-01", CourseID: "concurrent-go", Title: "Goroutines", Notes: "Lightweight threads and the go statement.", DurationMinutes: 30, Position: 1},
	}
	for _, l := range lessons {
		if err := deps.CourseStore.SaveLesson(ctx, l); err != nil {
			return err
		}
	}

	slog.Info("catalog_event", "event", "catalog_seeded", "courses", len(courses))
	return nil
}
