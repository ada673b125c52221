package projections

import (
	"context"
	"testing"
	"time"

	domainCourse "learnhub/internal/domain/course"
	domainProgress "learnhub/internal/domain/progress"
	domainUser "learnhub/internal/domain/user"
)

// TestQueryGetDashboard_StudentView verifies the learner overview panel.
func TestQueryGetDashboard_StudentView(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	users := &mockUserStore{
		user:      domainUser.User{ID: "u1", Email: "j@x.dev", FirstName: "Jane", Role: domainUser.RoleUser},
		enrolled:  []string{"advanced-ai", "go-basics"},
		favorites: []string{"go-basics"},
	}
	courses := &mockCourseStore{courses: []domainCourse.Course{
		{ID: "advanced-ai", Title: "Advanced AI"},
		{ID: "go-basics", Title: "Go Basics"},
	}}
	progress := &mockProgressStore{list: []domainProgress.CourseProgress{
		{CourseID: "advanced-ai", Progress: 30, LastAccessed: now.Add(-time.Hour)},
		{CourseID: "go-basics", Progress: 100, Completed: true, LastAccessed: now.AddDate(0, 0, -3)},
	}}

	res := QueryGetDashboard(context.Background(), "u1", GetDashboardDeps{
		UserStore: users, CourseStore: courses, ProgressStore: progress,
		Now: func() time.Time { return now },
	})

	if res.GreetingName != "Jane" {
		t.Errorf("greeting=%q want Jane", res.GreetingName)
	}
	if res.EnrolledCount != 2 || res.FavoriteCount != 1 {
		t.Errorf("enrolled=%d favorites=%d want 2/1", res.EnrolledCount, res.FavoriteCount)
	}
	if res.Progress.CompletedCourses != 1 {
		t.Errorf("completed=%d want 1", res.Progress.CompletedCourses)
	}
	if res.StudentCount != 0 || res.CatalogSize != 0 {
		t.Error("learner view must not include cohort counts")
	}
	if len(res.RecentCourses) != 2 {
		t.Fatalf("recent=%d want 2", len(res.RecentCourses))
	}
	if res.RecentCourses[0].CourseID != "advanced-ai" {
		t.Errorf("recent[0]=%s want most recently accessed first", res.RecentCourses[0].CourseID)
	}
	if res.RecentCourses[0].Title != "Advanced AI" {
		t.Errorf("recent[0] title=%q want resolved from catalog", res.RecentCourses[0].Title)
	}
}

// TestQueryGetDashboard_MentorCounts verifies mentors get cohort counts.
func TestQueryGetDashboard_MentorCounts(t *testing.T) {
	users := &mockUserStore{user: domainUser.User{ID: "m1", Email: "m@x.dev", Role: domainUser.RoleMentor}}
	courses := &mockCourseStore{courses: []domainCourse.Course{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	res := QueryGetDashboard(context.Background(), "m1", GetDashboardDeps{
		UserStore: users, CourseStore: courses, ProgressStore: &mockProgressStore{},
	})
	if res.StudentCount != 7 {
		t.Errorf("students=%d want 7", res.StudentCount)
	}
	if res.CatalogSize != 3 {
		t.Errorf("catalog=%d want 3", res.CatalogSize)
	}
}

// TestQueryGetDashboard_ProgressFailureDegrades verifies a progress store
// failure leaves the rest of the panel intact.
func TestQueryGetDashboard_ProgressFailureDegrades(t *testing.T) {
	users := &mockUserStore{
		user:     domainUser.User{ID: "u1", Email: "j@x.dev", DisplayName: "Jane Doe", Role: domainUser.RoleUser},
		enrolled: []string{"advanced-ai"},
	}
	progress := &mockProgressStore{err: context.DeadlineExceeded}

	res := QueryGetDashboard(context.Background(), "u1", GetDashboardDeps{
		UserStore: users, CourseStore: &mockCourseStore{}, ProgressStore: progress,
	})
	if res.GreetingName != "Jane Doe" {
		t.Errorf("greeting=%q want display-name fallback", res.GreetingName)
	}
	if res.EnrolledCount != 1 {
		t.Errorf("enrolled=%d want 1 despite progress failure", res.EnrolledCount)
	}
	if res.Progress.TotalCourses != 0 || len(res.RecentCourses) != 0 {
		t.Error("failed progress sub-query must degrade to zero values")
	}
}
