package web

import (
	"errors"
	"net/http"

	"fastbreak/internal/adapters/http/middleware"
	"fastbreak/internal/application/orchestrators"
)

// handleLogin handles POST /api/login.
// POST: On success a session cookie is set and the account info returned
func handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
		AuditStore:   stores.AuditStore,
		Now:          timeNow,
	})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrAccountLocked):
			errorJSON(w, http.StatusForbidden, err.Error())
		case errors.Is(err, orchestrators.ErrInvalidCredentials):
			errorJSON(w, http.StatusUnauthorized, err.Error())
		default:
			internalError(w, err)
		}
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Name, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]string{
		"accountId": result.AccountID,
		"name":      result.Name,
		"role":      result.Role,
	})
}

// handleLogout handles POST /api/logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("fastbreak_session"); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleMe handles GET /api/me, returning the current session identity.
func handleMe(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"accountId": sess.AccountID,
		"email":     sess.Email,
		"name":      sess.Name,
		"role":      sess.Role,
	})
}
