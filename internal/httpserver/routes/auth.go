package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/pitch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/mw"
)

func init() { Register(registerAuth, publicHost) }

func registerAuth(r chi.Router, d deps.Deps) {
	limit := mw.SlidingWindowLimit(d.AuthRequestsPerMinute, time.Minute, d.TrustProxy)

	r.Route("/api/auth", func(r chi.Router) {
		r.With(limit).Post("/signup", handlers.SignUp(d))
		r.With(limit).Post("/signin", handlers.SignIn(d, d.SessionTTL))
		r.Post("/signout", handlers.SignOut(d))
		r.With(mw.RequireSignedIn(d.Auth, d.Logger)).Get("/me", handlers.Me(d))
	})
}
