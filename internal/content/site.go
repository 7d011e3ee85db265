package content

import (
	"github.com/MrSnakeDoc/pitch/internal/domain"
	"github.com/MrSnakeDoc/pitch/internal/logger"
	"github.com/MrSnakeDoc/pitch/internal/seed"
	"github.com/MrSnakeDoc/pitch/internal/store"
)

// Collection names of the read-only catalogs.
const (
	CollectionAwards = "awards"
	CollectionNav    = "navData"
)

// Site groups the content of the public site.
type Site struct {
	News    *Controller[domain.News]
	Matches *Controller[domain.Match]
	Videos  *Controller[domain.Video]
	Awards  *Catalog
	Nav     *Catalog
}

// NewSite wires every collection to s (nil when storage is not configured)
// and to the fixtures of seeds.
func NewSite(s store.DocumentStore, seeds *seed.Loader, log logger.Logger) *Site {
	return &Site{
		News:    NewController(s, SeedFromLoader[domain.News](seeds, domain.CollectionNews), log),
		Matches: NewController(s, SeedFromLoader[domain.Match](seeds, domain.CollectionMatches), log),
		Videos:  NewController(s, SeedFromLoader[domain.Video](seeds, domain.CollectionVideos), log),
		Awards:  NewCatalog(CollectionAwards, s, seeds, log),
		Nav:     NewCatalog(CollectionNav, s, seeds, log),
	}
}

// Loadables lists everything the reloader refreshes.
func (s *Site) Loadables() []Loadable {
	return []Loadable{s.News, s.Matches, s.Videos, s.Awards, s.Nav}
}
