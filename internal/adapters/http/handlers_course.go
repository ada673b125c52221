package web

import (
	"net/http"

	"learnhub/internal/adapters/http/middleware"
	"learnhub/internal/application/orchestrators"
	"learnhub/internal/application/projections"
)

// handleCourseDetail serves one course page with the viewer's standing.
func handleCourseDetail(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("id")

	viewerID := ""
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		viewerID = sess.AccountID
	}

	result, err := projections.QueryGetCourseDetail(r.Context(), viewerID, courseID, projections.GetCourseDetailDeps{
		CourseStore:   stores.CourseStore,
		UserStore:     stores.UserStore,
		ProgressStore: stores.ProgressStore,
	})
	if err != nil {
		writeError(w, http.StatusNotFound, "course not found")
		return
	}

	lessons := make([]map[string]any, 0, len(result.Lessons))
	for _, l := range result.Lessons {
		lessons = append(lessons, map[string]any{
			"id":              l.ID,
			"title":           l.Title,
			"durationMinutes": l.DurationMinutes,
			"position":        l.Position,
			"notesHtml":       renderMarkdown(l.Notes),
		})
	}
	resources := make([]map[string]any, 0, len(result.Resources))
	for _, res := range result.Resources {
		resources = append(resources, map[string]any{
			"id": res.ID, "title": res.Title, "url": res.URL, "kind": res.Kind,
		})
	}
	assignments := make([]map[string]any, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		assignments = append(assignments, map[string]any{
			"id": a.ID, "title": a.Title, "dueAt": a.DueAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":              result.Course.ID,
		"title":           result.Course.Title,
		"descriptionHtml": renderMarkdown(result.Course.Description),
		"category":        result.Course.Category,
		"difficulty":      result.Course.Difficulty,
		"priceCents":      result.Course.PriceCents,
		"rating":          result.Course.Rating,
		"students":        result.Course.Students,
		"lessons":         lessons,
		"resources":       resources,
		"assignments":     assignments,
		"enrolled":        result.Enrolled,
		"progress":        result.Progress.Progress,
		"completed":       result.Progress.Completed,
	})
}

func enrollDeps() orchestrators.EnrollCourseDeps {
	return orchestrators.EnrollCourseDeps{
		UserStore:     stores.UserStore,
		CourseStore:   stores.CourseStore,
		ProgressStore: stores.ProgressStore,
	}
}

// handleEnroll adds the course to the signed-in user's programs.
func handleEnroll(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "sign in to enroll")
		return
	}

	input := orchestrators.EnrollCourseInput{UserID: sess.AccountID, CourseID: r.PathValue("id")}
	if err := orchestrators.ExecuteEnrollCourse(r.Context(), input, enrollDeps()); err != nil {
		if err == orchestrators.ErrCourseNotFound {
			writeError(w, http.StatusNotFound, "course not found")
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "enrolled"})
}

// handleUnenroll removes the course from the signed-in user's programs.
func handleUnenroll(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "sign in to manage your programs")
		return
	}

	input := orchestrators.EnrollCourseInput{UserID: sess.AccountID, CourseID: r.PathValue("id")}
	if err := orchestrators.ExecuteUnenrollCourse(r.Context(), input, enrollDeps()); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "unenrolled"})
}

// handleToggleFavorite flips the course's favorite state for the viewer.
func handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "sign in to favorite courses")
		return
	}

	favorite, err := orchestrators.ExecuteToggleFavorite(r.Context(), orchestrators.ToggleFavoriteInput{
		UserID:   sess.AccountID,
		CourseID: r.PathValue("id"),
	}, orchestrators.ToggleFavoriteDeps{UserStore: stores.UserStore})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"favorite": favorite})
}
