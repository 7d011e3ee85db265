package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/pitch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/mw"
)

func init() { Register(registerRegistration, publicHost) }

func registerRegistration(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:           d.RegistrationBurst,
		RefillPerMinute: d.RegistrationPerMinute,
		MaxEntries:      10000,
		IdleTTL:         30 * time.Minute,
		TrustProxy:      d.TrustProxy,
	})
	r.With(limit).Post("/api/registrations", handlers.Register(d))
}
