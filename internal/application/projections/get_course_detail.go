package projections

import (
	"context"
	"log/slog"

	domainCourse "learnhub/internal/domain/course"
	domainProgress "learnhub/internal/domain/progress"
)

// GetCourseDetailResult carries one course page: the document, its child
// rows, and the viewer's own standing in it.
type GetCourseDetailResult struct {
	Course      domainCourse.Course
	Lessons     []domainCourse.Lesson
	Resources   []domainCourse.Resource
	Assignments []domainCourse.Assignment
	Enrolled    bool
	Progress    domainProgress.CourseProgress
}

// GetCourseDetailDeps holds dependencies for GetCourseDetail.
type GetCourseDetailDeps struct {
	CourseStore   CourseStore
	UserStore     UserStore
	ProgressStore ProgressStore
}

// EnrollmentChecker is implemented by user stores that can answer membership
// directly; when the provided UserStore also satisfies it the projection
// avoids loading the whole enrollment list.
type EnrollmentChecker interface {
	IsEnrolled(ctx context.Context, userID, courseID string) (bool, error)
}

// QueryGetCourseDetail loads a course page for a viewer.
// PRE: courseID is non-empty
// POST: Returns the course or the store's not-found error; child rows and
// viewer standing degrade to zero values on failure
func QueryGetCourseDetail(ctx context.Context, viewerID, courseID string, deps GetCourseDetailDeps) (GetCourseDetailResult, error) {
	c, err := deps.CourseStore.GetByID(ctx, courseID)
	if err != nil {
		return GetCourseDetailResult{}, err
	}

	result := GetCourseDetailResult{Course: c}
	if result.Lessons, err = deps.CourseStore.ListLessons(ctx, courseID); err != nil {
		slog.Warn("course_lessons_failed", "course_id", courseID, "error", err)
	}
	if result.Resources, err = deps.CourseStore.ListResources(ctx, courseID); err != nil {
		slog.Warn("course_resources_failed", "course_id", courseID, "error", err)
	}
	if result.Assignments, err = deps.CourseStore.ListAssignments(ctx, courseID); err != nil {
		slog.Warn("course_assignments_failed", "course_id", courseID, "error", err)
	}

	if viewerID == "" {
		return result, nil
	}

	if checker, ok := deps.UserStore.(EnrollmentChecker); ok {
		result.Enrolled, _ = checker.IsEnrolled(ctx, viewerID, courseID)
	} else if ids, err := deps.UserStore.ListEnrolled(ctx, viewerID); err == nil {
		for _, id := range ids {
			if id == courseID {
				result.Enrolled = true
				break
			}
		}
	}
	if p, err := deps.ProgressStore.Get(ctx, viewerID, courseID); err == nil {
		result.Progress = p
	}
	return result, nil
}
