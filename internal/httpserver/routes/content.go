package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/pitch/internal/content"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/handlers"
)

func init() { Register(registerContent, publicHost) }

func registerContent(r chi.Router, d deps.Deps) {
	r.Route("/api/content", func(r chi.Router) {
		r.Get("/news", handlers.PublicNews(d))
		r.Get("/matches", handlers.PublicMatches(d))
		r.Get("/videos", handlers.PublicVideos(d))
		r.Get("/awards", handlers.PublicCatalog(d, func(d deps.Deps) *content.Catalog { return d.Site.Awards }))
		r.Get("/nav", handlers.PublicCatalog(d, func(d deps.Deps) *content.Catalog { return d.Site.Nav }))
	})
}
