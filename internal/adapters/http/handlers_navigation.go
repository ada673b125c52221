package web

import (
	"net/http"

	"learnhub/internal/adapters/http/middleware"
	"learnhub/internal/application/navigation"
	"learnhub/internal/domain/route"
)

// handleNavigate classifies a pathname against the session's ambient state
// and converges the recorded path to the canonical form.
func handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pathname string `json:"pathname"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token := middleware.SessionToken(r)
	sess, authenticated := middleware.GetSessionFromContext(r.Context())
	state := navStates.Get(token)

	ambient := route.Ambient{
		CourseID:      state.CourseID,
		UserID:        sess.AccountID,
		Authenticated: authenticated,
	}

	c := route.Classify(req.Pathname, ambient)

	// A course-only segment with no active course falls back to the explicit
	// resolution chain, then reclassifies.
	if c.Context == route.ContextNone && ambient.CourseID == "" {
		if resolved := navigation.ResolveAmbientCourseID(r.Context(), state, sess.AccountID, stores.UserStore, stores.CourseStore); resolved != "" {
			ambient.CourseID = resolved
			c = route.Classify(req.Pathname, ambient)
		}
	}

	if token != "" && !c.RedirectToLogin {
		navRewriter.Apply(token, c)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"context":         string(c.Context),
		"courseId":        c.CourseID,
		"section":         c.Section,
		"canonicalPath":   c.CanonicalPath,
		"redirectToLogin": c.RedirectToLogin,
	})
}

// handleNavigateSection switches the session to a dashboard section.
func handleNavigateSection(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "sign in to use the dashboard")
		return
	}

	var req struct {
		Section    string `json:"section"`
		SkipScroll bool   `json:"skipScroll"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token := middleware.SessionToken(r)
	result := navigator.NavigateTo(r.Context(), token, sess.AccountID, req.Section,
		navigation.NavigateOptions{SkipScroll: req.SkipScroll})

	writeJSON(w, http.StatusOK, map[string]any{
		"navigated":       result.Navigated,
		"section":         result.Section,
		"title":           result.Title,
		"refreshProgress": result.RefreshProgress,
		"scrollToTop":     result.ScrollToTop,
		"canonicalPath":   route.CanonicalDashboardPath(result.Section, sess.AccountID),
	})
}
