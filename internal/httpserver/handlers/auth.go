package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/pitch/internal/auth"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/mw"
	"github.com/MrSnakeDoc/pitch/internal/i18n"
	"github.com/MrSnakeDoc/pitch/internal/store"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	Token     string         `json:"token"`
	Principal auth.Principal `json:"user"`
}

func SignUp(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		if !decodeCredentials(w, r, &c) {
			return
		}
		p, err := d.Auth.SignUp(r.Context(), c.Email, c.Password)
		if err != nil {
			writeAuthError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

// SignIn opens a session. The token is returned and set as an HttpOnly cookie.
func SignIn(d deps.Deps, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		if !decodeCredentials(w, r, &c) {
			return
		}
		token, p, err := d.Auth.SignIn(r.Context(), c.Email, c.Password)
		if err != nil {
			writeAuthError(w, r, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     mw.SessionCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, http.StatusOK, signInResponse{Token: token, Principal: p})
	}
}

func SignOut(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Auth.SignOut(r.Context(), mw.SessionToken(r)); err != nil {
			writeAuthError(w, r, err)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: mw.SessionCookie, Value: "", Path: "/", MaxAge: -1})
		w.WriteHeader(http.StatusNoContent)
	}
}

// Me returns the principal set by mw.RequireSignedIn.
func Me(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.FromContext(r.Context())
		writeJSON(w, http.StatusOK, p)
	}
}

func decodeCredentials(w http.ResponseWriter, r *http.Request, c *credentials) bool {
	body, err := readBody(w, r)
	if err != nil {
		writeBadRequest(w, r)
		return false
	}
	if err := json.Unmarshal(body, c); err != nil {
		writeBadRequest(w, r)
		return false
	}
	return true
}

func writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	lang := requestLang(r)

	var status int
	switch {
	case errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrWeakPassword):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrSessionExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, store.ErrNotConfigured), errors.Is(err, store.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error:   "transient",
			Message: i18n.Message(lang, "error.transient"),
		})
		return
	default:
		status = http.StatusInternalServerError
	}

	code := auth.Code(err)
	writeJSON(w, status, errorResponse{Error: code, Message: i18n.Message(lang, code)})
}
