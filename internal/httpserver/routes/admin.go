package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/pitch/internal/content"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(mw.AllowOnlyCIDRS(d.AdminCIDRS, d.TrustProxy, d.Logger))
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Use(mw.RequireAdmin(d.Auth, d.Logger))

		mountKind(r, d, "/news", d.Site.News)
		mountKind(r, d, "/matches", d.Site.Matches)
		mountKind(r, d, "/videos", d.Site.Videos)

		r.Post("/reload", handlers.AdminReload(d))
	})
}

func mountKind[R content.Record[R]](r chi.Router, d deps.Deps, path string, c *content.Controller[R]) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", handlers.AdminList(d, c))
		r.Post("/", handlers.AdminCreate(d, c))
		r.Post("/seed", handlers.AdminSeed(d, c))
		r.Put("/{id}", handlers.AdminUpdate(d, c))
		r.Delete("/{id}", handlers.AdminDelete(d, c))
	})
}
