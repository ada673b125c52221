package web

import (
	"net/http"

	"learnhub/internal/adapters/http/middleware"
	"learnhub/internal/application/orchestrators"
	"learnhub/internal/application/projections"
)

// handleDashboard serves the overview panel for the signed-in user.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "sign in to view your dashboard")
		return
	}

	result := projections.QueryGetDashboard(r.Context(), sess.AccountID, projections.GetDashboardDeps{
		UserStore:     stores.UserStore,
		CourseStore:   stores.CourseStore,
		ProgressStore: stores.ProgressStore,
		Now:           timeNow,
	})

	recents := make([]map[string]any, 0, len(result.RecentCourses))
	for _, c := range result.RecentCourses {
		recents = append(recents, map[string]any{
			"courseId":     c.CourseID,
			"title":        c.Title,
			"progress":     c.Progress,
			"lastAccessed": c.LastAccessed,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"greetingName":  result.GreetingName,
		"role":          result.Role,
		"enrolledCount": result.EnrolledCount,
		"favoriteCount": result.FavoriteCount,
		"progress":      progressSummaryJSON(result.Progress),
		"recentCourses": recents,
		"studentCount":  result.StudentCount,
		"catalogSize":   result.CatalogSize,
	})
}

// handleProgressSummary serves the aggregated progress panel.
func handleProgressSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "sign in to view your progress")
		return
	}

	summary, err := projections.QueryGetProgressSummary(r.Context(), sess.AccountID, projections.GetProgressSummaryDeps{
		ProgressStore: stores.ProgressStore,
		Now:           timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progressSummaryJSON(summary))
}

func progressSummaryJSON(s projections.GetProgressSummaryResult) map[string]any {
	courses := make([]map[string]any, 0, len(s.Courses))
	for _, c := range s.Courses {
		courses = append(courses, map[string]any{
			"courseId":         c.CourseID,
			"progress":         c.Progress,
			"timeSpentMinutes": c.TimeSpentMinutes,
			"modulesCompleted": c.ModulesCompleted,
			"lastAccessed":     c.LastAccessed,
			"bucket":           c.Bucket,
		})
	}
	series := make([]map[string]any, 0, len(s.Series))
	for _, sr := range s.Series {
		points := make([]map[string]any, 0, len(sr.Points))
		for _, p := range sr.Points {
			points = append(points, map[string]any{"date": p.Date, "progress": p.Progress})
		}
		series = append(series, map[string]any{
			"courseId":  sr.CourseID,
			"points":    points,
			"synthetic": sr.Synthetic,
		})
	}

	return map[string]any{
		"totalCourses":      s.TotalCourses,
		"completedCourses":  s.CompletedCourses,
		"inProgressCourses": s.InProgressCourses,
		"notStartedCourses": s.NotStartedCourses,
		"totalMinutes":      s.TotalMinutes,
		"currentStreakDays": s.CurrentStreakDays,
		"lastActiveDate":    s.LastActiveDate,
		"courses":           courses,
		"series":            series,
	}
}

// handleRecordProgress folds one learning-session update into the store.
func handleRecordProgress(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "sign in to record progress")
		return
	}

	var req struct {
		CourseID         string  `json:"courseId"`
		Progress         float64 `json:"progress"`
		MinutesSpent     int     `json:"minutesSpent"`
		ModulesCompleted int     `json:"modulesCompleted"`
		MarkCompleted    bool    `json:"markCompleted"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := orchestrators.ExecuteRecordProgress(r.Context(), orchestrators.RecordProgressInput{
		UserID:           sess.AccountID,
		CourseID:         req.CourseID,
		Progress:         req.Progress,
		MinutesSpent:     req.MinutesSpent,
		ModulesCompleted: req.ModulesCompleted,
		MarkCompleted:    req.MarkCompleted,
	}, orchestrators.RecordProgressDeps{ProgressStore: stores.ProgressStore, Now: timeNow})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"progress":         result.Progress,
		"timeSpentMinutes": result.TimeSpentMinutes,
		"modulesCompleted": result.ModulesCompleted,
		"completed":        result.Completed,
		"bucket":           result.Bucket(),
	})
}

// handleGetPref reads one preference for the signed-in user.
func handleGetPref(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "sign in to read preferences")
		return
	}

	value, err := stores.PrefsStore.Get(r.Context(), sess.AccountID, r.PathValue("key"))
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"value": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"value": value})
}

// handleSetPref writes one preference for the signed-in user.
func handleSetPref(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "sign in to save preferences")
		return
	}

	var req struct {
		Value string `json:"value"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := stores.PrefsStore.Set(r.Context(), sess.AccountID, r.PathValue("key"), req.Value); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
