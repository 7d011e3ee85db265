package mw

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/pitch/internal/auth"
	"github.com/MrSnakeDoc/pitch/internal/i18n"
	"github.com/MrSnakeDoc/pitch/internal/logger"
	"github.com/MrSnakeDoc/pitch/internal/store"
)

// SessionCookie carries the session token for browser clients.
const SessionCookie = "pitch_session"

// SessionToken reads the token from "Authorization: Bearer" or the session cookie.
func SessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// RequireSignedIn rejects requests without a valid session (401) and stores
// the principal in the request context.
func RequireSignedIn(svc *auth.Service, log logger.Logger) func(http.Handler) http.Handler {
	return requirePrincipal(svc, log, false)
}

// RequireAdmin is RequireSignedIn plus the admin claim (403 without it).
func RequireAdmin(svc *auth.Service, log logger.Logger) func(http.Handler) http.Handler {
	return requirePrincipal(svc, log, true)
}

func requirePrincipal(svc *auth.Service, log logger.Logger, admin bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := i18n.Negotiate(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))

			token := SessionToken(r)
			if token == "" {
				deny(w, http.StatusUnauthorized, "unauthenticated", i18n.Message(lang, "auth.unauthenticated"))
				return
			}

			p, err := svc.Verify(r.Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, store.ErrNotConfigured), errors.Is(err, store.ErrUnavailable):
				log.Warn("session check failed", logger.Error(err))
				deny(w, http.StatusServiceUnavailable, "transient", i18n.Message(lang, "error.transient"))
				return
			default:
				deny(w, http.StatusUnauthorized, "unauthenticated", i18n.Message(lang, auth.Code(err)))
				return
			}

			if admin && !p.Admin {
				log.Warn("admin access refused",
					logger.String("user_id", p.UserID),
					logger.String("path", r.URL.Path))
				deny(w, http.StatusForbidden, "forbidden", i18n.Message(lang, "auth.forbidden"))
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

func deny(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "message": msg})
}
