package navigation

import (
	"context"

	courseStore "learnhub/internal/adapters/storage/course"
	"learnhub/internal/domain/course"
)

// EnrollmentLister is the slice of the user store the resolver needs.
type EnrollmentLister interface {
	ListEnrolled(ctx context.Context, userID string) ([]string, error)
}

// CatalogLister is the slice of the course store the resolver needs.
type CatalogLister interface {
	List(ctx context.Context, filter courseStore.ListFilter) ([]course.Course, error)
}

// ResolveAmbientCourseID picks the course id to use when a course-only route
// arrives with no active course in the session. Preference order: the
// session's recorded course, the user's first enrolled course, the first
// catalog course. Returns "" when nothing resolves; store errors degrade to
// the next fallback rather than propagating.
func ResolveAmbientCourseID(ctx context.Context, st NavState, userID string, enrollments EnrollmentLister, catalog CatalogLister) string {
	if st.CourseID != "" {
		return st.CourseID
	}
	if userID != "" && enrollments != nil {
		if ids, err := enrollments.ListEnrolled(ctx, userID); err == nil && len(ids) > 0 {
			return ids[0]
		}
	}
	if catalog != nil {
		if courses, err := catalog.List(ctx, courseStore.ListFilter{Limit: 1}); err == nil && len(courses) > 0 {
			return courses[0].ID
		}
	}
	return ""
}
