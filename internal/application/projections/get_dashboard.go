package projections

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"learnhub/internal/adapters/storage/course"
	domainUser "learnhub/internal/domain/user"
)

// DashboardCourse is one recently-accessed course on the overview panel.
type DashboardCourse struct {
	CourseID     string
	Title        string
	Progress     float64
	LastAccessed time.Time
}

// GetDashboardResult carries the overview panel data. Fields degrade
// independently: a failing sub-query leaves its field zero-valued and the
// rest of the panel intact.
type GetDashboardResult struct {
	GreetingName  string
	Role          string
	EnrolledCount int
	FavoriteCount int
	Progress      GetProgressSummaryResult
	RecentCourses []DashboardCourse
	StudentCount  int // mentors and admins only
	CatalogSize   int // mentors and admins only
}

// GetDashboardDeps holds dependencies for GetDashboard.
type GetDashboardDeps struct {
	UserStore     UserStore
	CourseStore   CourseStore
	ProgressStore ProgressStore
	Now           func() time.Time
}

// recentCourseLimit caps the recently-accessed list on the overview panel.
const recentCourseLimit = 4

// QueryGetDashboard assembles the overview panel for a user.
// PRE: userID is non-empty
// POST: Returns the panel; sub-query failures degrade field-by-field
func QueryGetDashboard(ctx context.Context, userID string, deps GetDashboardDeps) GetDashboardResult {
	var result GetDashboardResult

	u, err := deps.UserStore.GetByID(ctx, userID)
	if err != nil {
		slog.Warn("dashboard_profile_failed", "error", err)
	} else {
		result.GreetingName = u.GreetingName()
		result.Role = u.Role
	}

	if ids, err := deps.UserStore.ListEnrolled(ctx, userID); err == nil {
		result.EnrolledCount = len(ids)
	} else {
		slog.Warn("dashboard_enrollments_failed", "error", err)
	}
	if ids, err := deps.UserStore.ListFavorites(ctx, userID); err == nil {
		result.FavoriteCount = len(ids)
	}

	summary, err := QueryGetProgressSummary(ctx, userID, GetProgressSummaryDeps{
		ProgressStore: deps.ProgressStore,
		Now:           deps.Now,
	})
	if err != nil {
		slog.Warn("dashboard_progress_failed", "error", err)
	} else {
		result.Progress = summary
		result.RecentCourses = recentCourses(ctx, summary, deps.CourseStore)
	}

	if u.IsMentorOrAdmin() {
		if n, err := deps.UserStore.CountByRole(ctx, domainUser.RoleUser); err == nil {
			result.StudentCount = n
		}
		if n, err := deps.CourseStore.Count(ctx, course.ListFilter{}); err == nil {
			result.CatalogSize = n
		}
	}

	return result
}

func recentCourses(ctx context.Context, summary GetProgressSummaryResult, courses CourseStore) []DashboardCourse {
	views := make([]CourseProgressView, 0, len(summary.Courses))
	for _, v := range summary.Courses {
		if !v.LastAccessed.IsZero() {
			views = append(views, v)
		}
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].LastAccessed.After(views[j].LastAccessed)
	})
	if len(views) > recentCourseLimit {
		views = views[:recentCourseLimit]
	}

	recents := make([]DashboardCourse, 0, len(views))
	for _, v := range views {
		dc := DashboardCourse{CourseID: v.CourseID, Progress: v.Progress, LastAccessed: v.LastAccessed}
		if c, err := courses.GetByID(ctx, v.CourseID); err == nil {
			dc.Title = c.Title
		}
		recents = append(recents, dc)
	}
	return recents
}
