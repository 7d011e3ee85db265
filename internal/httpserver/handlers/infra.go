package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/pitch/internal/content"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Driver     string `json:"driver,omitempty"`
	Source     string `json:"source,omitempty"`
	Items      *int   `json:"items,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		components := map[string]componentStatus{
			"store": checkStore(r.Context(), d),
		}
		if d.Site != nil {
			components["news"] = controllerStatus(d.Site.News.Snapshot())
			components["matches"] = controllerStatus(d.Site.Matches.Snapshot())
			components["videos"] = controllerStatus(d.Site.Videos.Snapshot())
			components["awards"] = catalogStatus(d.Site.Awards.Snapshot())
			components["navData"] = catalogStatus(d.Site.Nav.Snapshot())
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

// determineMode: "operational" when everything is durable, "fallback" when
// some list shows bundled seed content, "degraded" when storage is down.
func determineMode(components map[string]componentStatus) string {
	if s, ok := components["store"]; ok && !s.OK {
		return "degraded"
	}
	for name, c := range components {
		if name != "store" && c.Source == string(content.SourceSeed) {
			return "fallback"
		}
	}
	return "operational"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		status := componentStatus{
			OK:     false,
			Driver: d.StoreDriver,
			Impact: "read-only-seed-content",
			Error:  "not configured",
		}
		if d.StoreErr != nil {
			status.Error = d.StoreErr.Error()
		}
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Driver: d.StoreDriver,
			Impact: "writes-failing",
			Error:  string(content.Classify(err)),
		}
	}
	return componentStatus{OK: true, Driver: d.StoreDriver}
}

func controllerStatus[R any](snap content.Snapshot[R]) componentStatus {
	return sourceStatus(len(snap.Items), snap.Source, snap.LoadedAt, snap.LastError)
}

func catalogStatus(snap content.CatalogSnapshot) componentStatus {
	return sourceStatus(len(snap.Items), snap.Source, snap.LoadedAt, snap.LastError)
}

func sourceStatus(n int, src content.Source, loadedAt time.Time, lastErr error) componentStatus {
	status := componentStatus{
		OK:         lastErr == nil && src != content.SourceNone,
		Source:     string(src),
		Items:      &n,
		LastReload: "never",
	}
	if !loadedAt.IsZero() {
		status.LastReload = loadedAt.Format("2006-01-02 15:04:05")
	}
	if lastErr != nil {
		status.Error = string(content.Classify(lastErr))
	}
	return status
}
