package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"learnhub/internal/domain/course"
	"learnhub/internal/domain/progress"
)

// UserStoreForEnroll defines the store interface needed by the enrollment
// orchestrators.
type UserStoreForEnroll interface {
	IsEnrolled(ctx context.Context, userID, courseID string) (bool, error)
	Enroll(ctx context.Context, userID, courseID string) error
	Unenroll(ctx context.Context, userID, courseID string) error
}

// CourseStoreForEnroll defines the catalog interface needed by the enrollment
// orchestrators.
type CourseStoreForEnroll interface {
	GetByID(ctx context.Context, id string) (course.Course, error)
	AddStudents(ctx context.Context, courseID string, delta int) error
}

// ProgressStoreForEnroll defines the progress interface needed by enrollment.
type ProgressStoreForEnroll interface {
	Save(ctx context.Context, p progress.CourseProgress) error
}

// EnrollCourseInput carries input for the enrollment orchestrators.
type EnrollCourseInput struct {
	UserID   string
	CourseID string
}

// EnrollCourseDeps holds dependencies for EnrollCourse and UnenrollCourse.
type EnrollCourseDeps struct {
	UserStore     UserStoreForEnroll
	CourseStore   CourseStoreForEnroll
	ProgressStore ProgressStoreForEnroll
}

var ErrCourseNotFound = errors.New("course not found")

// ExecuteEnrollCourse adds a course to the user's enrollment list.
// PRE: UserID and CourseID are non-empty
// POST: User is enrolled with a zero progress row; the course's student
// counter grows by one for a first-time enrollment only
// INVARIANT: Re-enrolling is a no-op, never an error
func ExecuteEnrollCourse(ctx context.Context, input EnrollCourseInput, deps EnrollCourseDeps) error {
	if input.UserID == "" || input.CourseID == "" {
		return errors.New("user id and course id are required")
	}

	if _, err := deps.CourseStore.GetByID(ctx, input.CourseID); err != nil {
		return ErrCourseNotFound
	}

	already, err := deps.UserStore.IsEnrolled(ctx, input.UserID, input.CourseID)
	if err != nil {
		return err
	}
	if already {
		return nil
	}

	if err := deps.UserStore.Enroll(ctx, input.UserID, input.CourseID); err != nil {
		return err
	}
	if err := deps.CourseStore.AddStudents(ctx, input.CourseID, 1); err != nil {
		slog.Warn("enroll_counter_failed", "course_id", input.CourseID, "error", err)
	}

	// Seed the progress row so the course appears under "not started".
	p := progress.CourseProgress{UserID: input.UserID, CourseID: input.CourseID}
	if err := deps.ProgressStore.Save(ctx, p); err != nil {
		slog.Warn("enroll_progress_seed_failed", "course_id", input.CourseID, "error", err)
	}

	slog.Info("enrollment_event", "event", "enrolled", "user_id", input.UserID, "course_id", input.CourseID)
	return nil
}

// ExecuteUnenrollCourse removes a course from the user's enrollment list.
// PRE: UserID and CourseID are non-empty
// POST: User is no longer enrolled; the student counter shrinks by one if the
// user was enrolled
func ExecuteUnenrollCourse(ctx context.Context, input EnrollCourseInput, deps EnrollCourseDeps) error {
	if input.UserID == "" || input.CourseID == "" {
		return errors.New("user id and course id are required")
	}

	enrolled, err := deps.UserStore.IsEnrolled(ctx, input.UserID, input.CourseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return nil
	}

	if err := deps.UserStore.Unenroll(ctx, input.UserID, input.CourseID); err != nil {
		return err
	}
	if err := deps.CourseStore.AddStudents(ctx, input.CourseID, -1); err != nil {
		slog.Warn("unenroll_counter_failed", "course_id", input.CourseID, "error", err)
	}

	slog.Info("enrollment_event", "event", "unenrolled", "user_id", input.UserID, "course_id", input.CourseID)
	return nil
}
