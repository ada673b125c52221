package web

import (
	"context"
	"errors"
	"net/http"

	"learnhub/internal/adapters/http/middleware"
	"learnhub/internal/application/navigation"
	"learnhub/internal/application/orchestrators"
	accountDomain "learnhub/internal/domain/account"
)

// authErrorMessage maps auth failures to the user-facing banner text. Errors
// not in the table fall back to a generic message so internals never leak.
func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, orchestrators.ErrInvalidCredentials):
		return "Incorrect email or password. Please try again."
	case errors.Is(err, orchestrators.ErrAccountLocked):
		return "Too many failed attempts. Please try again in a few minutes."
	case errors.Is(err, orchestrators.ErrPendingActivation):
		return "Please activate your account first — check your inbox for the link."
	case errors.Is(err, orchestrators.ErrEmailAlreadyExists):
		return "An account with this email already exists. Try signing in."
	case errors.Is(err, accountDomain.ErrPasswordTooShort):
		return "Passwords must be at least 12 characters."
	case errors.Is(err, accountDomain.ErrTokenExpired):
		return "This link has expired. Request a new one from the sign-in page."
	case errors.Is(err, accountDomain.ErrTokenInvalid):
		return "This link is not valid."
	case errors.Is(err, orchestrators.ErrCurrentPasswordWrong):
		return "Your current password is incorrect."
	case errors.Is(err, orchestrators.ErrNewPasswordSame):
		return "Your new password must be different from the current one."
	default:
		return "Something went wrong. Please try again."
	}
}

// isSwallowedError reports whether an auth failure should produce no banner
// and no log line. Cancelled requests are the user closing the page, not a
// fault.
func isSwallowedError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// handleRegister creates a new account and profile.
func handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
		FirstName   string `json:"firstName"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := orchestrators.ExecuteCreateAccount(r.Context(), orchestrators.CreateAccountInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		FirstName:   req.FirstName,
	}, orchestrators.CreateAccountDeps{
		AccountStore: stores.AccountStore,
		UserStore:    stores.UserStore,
		EmailSender:  emailSender,
		BaseURL:      publicBaseURL,
	})
	if err != nil {
		if isSwallowedError(err) {
			return
		}
		writeError(w, http.StatusBadRequest, authErrorMessage(err))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"accountId": id})
}

// handleLogin signs a user in and issues the session cookie.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, orchestrators.LoginDeps{AccountStore: stores.AccountStore})
	if err != nil {
		if isSwallowedError(err) {
			return
		}
		writeError(w, http.StatusUnauthorized, authErrorMessage(err))
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	// Cache the greeting name in the session's navigation state.
	if profile, err := stores.UserStore.GetByID(r.Context(), result.AccountID); err == nil {
		navStates.Update(token, func(st *navigation.NavState) {
			st.DisplayFirstName = profile.GreetingName()
		})
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"accountId": result.AccountID,
		"role":      result.Role,
	})
}

// handleLogout clears the session and its navigation state.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
		navStates.Drop(token)
	}
	middleware.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// handleActivate redeems an emailed activation token.
func handleActivate(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteActivateAccount(r.Context(), r.URL.Query().Get("token"),
		orchestrators.ActivateAccountDeps{AccountStore: stores.AccountStore})
	if err != nil {
		if isSwallowedError(err) {
			return
		}
		writeError(w, http.StatusBadRequest, authErrorMessage(err))
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleChangePassword updates the signed-in user's password.
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "sign in to change your password")
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := orchestrators.ExecuteChangePassword(r.Context(), orchestrators.ChangePasswordInput{
		AccountID:       sess.AccountID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}, orchestrators.ChangePasswordDeps{AccountStore: stores.AccountStore})
	if err != nil {
		if isSwallowedError(err) {
			return
		}
		writeError(w, http.StatusBadRequest, authErrorMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "changed"})
}

// handleMe returns the signed-in user's profile.
func handleMe(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	profile, err := stores.UserStore.GetByID(r.Context(), sess.AccountID)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":          profile.ID,
		"email":       profile.Email,
		"displayName": profile.DisplayName,
		"firstName":   profile.FirstName,
		"photoUrl":    profile.PhotoURL,
		"role":        profile.Role,
	})
}

// handleRequestReset issues a password-reset email. Always returns 200 so the
// endpoint cannot confirm whether an email is registered.
func handleRequestReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := strictDecode(r, &req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := orchestrators.ExecuteRequestPasswordReset(r.Context(), req.Email, resetDeps()); err != nil {
		if isSwallowedError(err) {
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// handleResetPassword redeems a reset token with a new password.
func handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := orchestrators.ExecuteResetPassword(r.Context(), req.Token, req.NewPassword, resetDeps()); err != nil {
		if isSwallowedError(err) {
			return
		}
		writeError(w, http.StatusBadRequest, authErrorMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func resetDeps() orchestrators.ResetPasswordDeps {
	return orchestrators.ResetPasswordDeps{
		AccountStore: stores.AccountStore,
		EmailSender:  emailSender,
		BaseURL:      publicBaseURL,
	}
}
