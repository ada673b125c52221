package projections

import (
	"context"
	"testing"

	domainCourse "learnhub/internal/domain/course"
	domainProgress "learnhub/internal/domain/progress"
)

// TestQueryGetCourseDetail verifies the course page assembly for an enrolled
// viewer.
func TestQueryGetCourseDetail(t *testing.T) {
	courses := &mockCourseStore{
		courses: []domainCourse.Course{{ID: "advanced-ai", Title: "Advanced AI"}},
		lessons: []domainCourse.Lesson{{ID: "l1", CourseID: "advanced-ai", Title: "Intro", DurationMinutes: 20}},
	}
	users := &mockUserStore{enrolled: []string{"advanced-ai"}}
	progress := &mockProgressStore{rows: map[string]domainProgress.CourseProgress{
		"advanced-ai": {UserID: "u1", CourseID: "advanced-ai", Progress: 55},
	}}

	res, err := QueryGetCourseDetail(context.Background(), "u1", "advanced-ai", GetCourseDetailDeps{
		CourseStore: courses, UserStore: users, ProgressStore: progress,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Course.Title != "Advanced AI" {
		t.Errorf("title=%q", res.Course.Title)
	}
	if len(res.Lessons) != 1 {
		t.Errorf("lessons=%d want 1", len(res.Lessons))
	}
	if !res.Enrolled {
		t.Error("viewer is enrolled")
	}
	if res.Progress.Progress != 55 {
		t.Errorf("progress=%v want 55", res.Progress.Progress)
	}
}

// TestQueryGetCourseDetail_Anonymous verifies signed-out viewers get the
// course without viewer standing.
func TestQueryGetCourseDetail_Anonymous(t *testing.T) {
	courses := &mockCourseStore{courses: []domainCourse.Course{{ID: "go-basics"}}}

	res, err := QueryGetCourseDetail(context.Background(), "", "go-basics", GetCourseDetailDeps{
		CourseStore: courses, UserStore: &mockUserStore{}, ProgressStore: &mockProgressStore{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Enrolled || res.Progress.Progress != 0 {
		t.Error("anonymous viewer must carry no standing")
	}
}

// TestQueryGetCourseDetail_MissingCourse verifies the store error surfaces.
func TestQueryGetCourseDetail_MissingCourse(t *testing.T) {
	_, err := QueryGetCourseDetail(context.Background(), "u1", "nope", GetCourseDetailDeps{
		CourseStore: &mockCourseStore{}, UserStore: &mockUserStore{}, ProgressStore: &mockProgressStore{},
	})
	if err == nil {
		t.Error("expected error for missing course")
	}
}
