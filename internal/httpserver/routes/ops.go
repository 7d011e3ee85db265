package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/pitch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/pitch/internal/metrics"
)

func init() { Register(registerOps, opsNetwork) }

func registerOps(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.Get("/readyz", handlers.Readyz(d))
	r.Get("/infra", handlers.Infra(d))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
}
