package web

import (
	"errors"
	"net/http"
	"time"

	"learnhub/internal/adapters/http/middleware"
	"learnhub/internal/adapters/payment"
	"learnhub/internal/application/orchestrators"
)

// handleCheckout starts a hosted checkout for a paid course. Failures come
// back as explicit banner payloads, never silently.
func handleCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "sign in to purchase courses")
		return
	}
	if paymentClient == nil {
		writeError(w, http.StatusServiceUnavailable, "payments are not configured")
		return
	}

	var req struct {
		CourseID   string `json:"courseId"`
		SuccessURL string `json:"successUrl"`
		CancelURL  string `json:"cancelUrl"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := orchestrators.ExecuteCheckout(r.Context(), orchestrators.CheckoutInput{
		UserID:     sess.AccountID,
		Email:      sess.Email,
		CourseID:   req.CourseID,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	}, orchestrators.CheckoutDeps{
		CourseStore:   stores.CourseStore,
		PaymentClient: paymentClient,
		EmailSender:   emailSender,
		OutboxStore:   stores.OutboxStore,
	})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrCourseNotFound):
			writeError(w, http.StatusNotFound, "course not found")
		case errors.Is(err, orchestrators.ErrCourseIsFree):
			writeError(w, http.StatusBadRequest, "this course is free — enroll directly")
		default:
			writeError(w, http.StatusBadGateway, "payment could not be started. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"sessionId": session.SessionID,
		"url":       session.URL,
	})
}

// handlePortal opens the hosted billing portal for the signed-in user.
func handlePortal(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "sign in to manage billing")
		return
	}
	if paymentClient == nil {
		writeError(w, http.StatusServiceUnavailable, "payments are not configured")
		return
	}

	var req struct {
		ReturnURL string `json:"returnUrl"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := paymentClient.CreatePortalSession(r.Context(), payment.PortalRequest{
		UserID:    sess.AccountID,
		Email:     sess.Email,
		ReturnURL: req.ReturnURL,
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, "billing portal is unavailable. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": session.URL})
}

// handleInvoices lists the signed-in user's billing history.
func handleInvoices(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "sign in to view invoices")
		return
	}
	if paymentClient == nil {
		writeError(w, http.StatusServiceUnavailable, "payments are not configured")
		return
	}

	invoices, err := paymentClient.ListInvoices(r.Context(), sess.AccountID)
	if err != nil {
		writeError(w, http.StatusBadGateway, "invoices are unavailable. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"invoices": invoices})
}

// handleAdminPerf serves the perf collector snapshot to admins.
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r.Context()) {
		writeError(w, http.StatusForbidden, "admin only")
		return
	}
	if perfCollector == nil {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(timeNow().Add(-time.Hour), 20))
}
