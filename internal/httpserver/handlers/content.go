package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MrSnakeDoc/pitch/internal/content"
	"github.com/MrSnakeDoc/pitch/internal/domain"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/deps"
)

type listResponse[T any] struct {
	Items    []T    `json:"items"`
	Count    int    `json:"count"`
	Source   string `json:"source"`
	Lang     string `json:"lang,omitempty"`
	LoadedAt string `json:"loadedAt,omitempty"`
}

func newListResponse[T any](items []T, src content.Source, loadedAt time.Time, lang string) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	resp := listResponse[T]{Items: items, Count: len(items), Source: string(src), Lang: lang}
	if !loadedAt.IsZero() {
		resp.LoadedAt = loadedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func limitParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// PublicNews serves the news list. ?q= filters on the title, ?limit= truncates.
func PublicNews(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.Site.News.Snapshot()
		items := content.FilterByText(snap.Items, r.URL.Query().Get("q"), func(n domain.News) string { return n.Title })
		items = content.Limit(items, limitParam(r))
		writeJSON(w, http.StatusOK, newListResponse(items, snap.Source, snap.LoadedAt, ""))
	}
}

// PublicMatches serves the match list.
func PublicMatches(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.Site.Matches.Snapshot()
		items := content.FilterByText(snap.Items, r.URL.Query().Get("q"), func(m domain.Match) string {
			return m.Team1 + " " + m.Team2
		})
		items = content.Limit(items, limitParam(r))
		writeJSON(w, http.StatusOK, newListResponse(items, snap.Source, snap.LoadedAt, ""))
	}
}

// PublicVideos serves videos newest first with texts in the request language.
func PublicVideos(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := requestLang(r)
		snap := d.Site.Videos.Snapshot()

		content.SortVideosByDate(snap.Items)
		views := content.LocalizeVideos(snap.Items, lang)
		views = content.FilterByText(views, r.URL.Query().Get("q"), func(v content.VideoView) string { return v.Title })
		views = content.Limit(views, limitParam(r))

		writeJSON(w, http.StatusOK, newListResponse(views, snap.Source, snap.LoadedAt, lang))
	}
}

// PublicCatalog serves a read-only catalog. Localized values ({"en":..,"fr":..})
// are resolved for the request language.
func PublicCatalog(d deps.Deps, c func(deps.Deps) *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := requestLang(r)
		snap := c(d).Snapshot()

		items := make([]content.Item, 0, len(snap.Items))
		for _, it := range snap.Items {
			items = append(items, localizeItem(it, lang))
		}
		items = content.Limit(items, limitParam(r))
		writeJSON(w, http.StatusOK, newListResponse(items, snap.Source, snap.LoadedAt, lang))
	}
}

// localizeItem replaces every {"en":...} object by its text in lang.
func localizeItem(it content.Item, lang string) content.Item {
	out := make(content.Item, len(it))
	for k, v := range it {
		m, ok := v.(map[string]any)
		if !ok {
			out[k] = v
			continue
		}
		if _, hasEn := m[domain.LangEN]; !hasEn {
			out[k] = v
			continue
		}
		var lt domain.LocalizedText
		lt.En, _ = m[domain.LangEN].(string)
		lt.Ru, _ = m[domain.LangRU].(string)
		lt.Fr, _ = m[domain.LangFR].(string)
		lt.Es, _ = m[domain.LangES].(string)
		out[k] = strings.TrimSpace(lt.In(lang))
	}
	return out
}
