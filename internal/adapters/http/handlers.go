package web

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts markdown to sanitized HTML for JSON payloads.
func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return ""
	}
	return buf.String()
}

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err.Error())
	}
}

// errorBanner is the JSON shape for dismissible error banners.
type errorBanner struct {
	Error string `json:"error"`
}

// writeError writes a dismissible error banner payload.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBanner{Error: msg})
}

// registerRoutes attaches all application routes to the mux.
func registerRoutes(mux *http.ServeMux) {
	// Health and readiness
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/ready", handleReady)

	// Auth
	mux.HandleFunc("POST /api/auth/register", handleRegister)
	mux.HandleFunc("POST /api/auth/login", handleLogin)
	mux.HandleFunc("POST /api/auth/logout", handleLogout)
	mux.HandleFunc("GET /activate", handleActivate)
	mux.HandleFunc("POST /api/auth/change-password", handleChangePassword)
	mux.HandleFunc("POST /api/auth/request-reset", handleRequestReset)
	mux.HandleFunc("POST /api/auth/reset-password", handleResetPassword)
	mux.HandleFunc("GET /api/auth/me", handleMe)

	// Navigation
	mux.HandleFunc("POST /api/navigate", handleNavigate)
	mux.HandleFunc("POST /api/navigate/section", handleNavigateSection)

	// Catalog and courses
	mux.HandleFunc("GET /api/catalog", handleCatalog)
	mux.HandleFunc("GET /api/courses/{id}", handleCourseDetail)
	mux.HandleFunc("POST /api/courses/{id}/enroll", handleEnroll)
	mux.HandleFunc("POST /api/courses/{id}/unenroll", handleUnenroll)
	mux.HandleFunc("POST /api/courses/{id}/favorite", handleToggleFavorite)

	// Dashboard and progress
	mux.HandleFunc("GET /api/dashboard", handleDashboard)
	mux.HandleFunc("GET /api/progress", handleProgressSummary)
	mux.HandleFunc("POST /api/progress", handleRecordProgress)

	// Preferences
	mux.HandleFunc("GET /api/prefs/{key}", handleGetPref)
	mux.HandleFunc("PUT /api/prefs/{key}", handleSetPref)

	// Payments
	mux.HandleFunc("POST /api/payment/checkout", handleCheckout)
	mux.HandleFunc("POST /api/payment/portal", handlePortal)
	mux.HandleFunc("GET /api/payment/invoices", handleInvoices)

	// Admin
	mux.HandleFunc("GET /api/admin/perf", handleAdminPerf)
}

// handleHealth reports process liveness.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady blocks until the bootstrap gate opens or the bounded wait
// expires, then reports readiness.
func handleReady(w http.ResponseWriter, r *http.Request) {
	if readyGate == nil {
		writeJSON(w, http.StatusOK, map[string]bool{"ready": true})
		return
	}
	if err := readyGate.Wait(r.Context(), 0); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]bool{"ready": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ready": true})
}
