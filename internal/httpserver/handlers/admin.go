package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/pitch/internal/auth"
	"github.com/MrSnakeDoc/pitch/internal/content"
	"github.com/MrSnakeDoc/pitch/internal/domain"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pitch/internal/logger"
)

type adminListResponse[R any] struct {
	Items     []R    `json:"items"`
	Source    string `json:"source"`
	Durable   bool   `json:"durable"` // false while the seed fallback is shown
	LoadedAt  string `json:"loadedAt,omitempty"`
	LastError string `json:"lastError,omitempty"`
}

type writeResponse struct {
	ID       string `json:"id,omitempty"`
	Inserted *int   `json:"inserted,omitempty"`
	Stale    bool   `json:"stale,omitempty"` // the write succeeded but the list could not be reloaded
}

// AdminList returns the editable list of a kind, seed fallback included.
func AdminList[R content.Record[R]](d deps.Deps, c *content.Controller[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := c.Snapshot()
		resp := adminListResponse[R]{
			Items:   snap.Items,
			Source:  string(snap.Source),
			Durable: snap.Source == content.SourceStore,
		}
		if resp.Items == nil {
			resp.Items = []R{}
		}
		if !snap.LoadedAt.IsZero() {
			resp.LoadedAt = snap.LoadedAt.UTC().Format("2006-01-02T15:04:05Z")
		}
		if snap.LastError != nil {
			resp.LastError = string(content.Classify(snap.LastError))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// AdminCreate submits a new record through an editor.
func AdminCreate[R content.Record[R]](d deps.Deps, c *content.Controller[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := decodeDraft[R](w, r)
		if !ok {
			return
		}

		e := c.NewEditor()
		if err := e.StartCreate(); err != nil {
			writeError(w, r, d, err, draft)
			return
		}
		_ = e.SetDraft(draft)

		id, err := e.Submit(r.Context())
		if err != nil {
			writeError(w, r, d, err, e.Draft())
			return
		}

		logAdminWrite(d, r, c.Kind(), "create", id)
		writeJSON(w, http.StatusCreated, writeResponse{ID: id, Stale: c.Snapshot().LastError != nil})
	}
}

// AdminUpdate overwrites the record at {id} with the submitted fields.
func AdminUpdate[R content.Record[R]](d deps.Deps, c *content.Controller[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		draft, ok := decodeDraft[R](w, r)
		if !ok {
			return
		}

		e := c.NewEditor()
		if err := e.StartEdit(draft.WithIdentity(id)); err != nil {
			writeError(w, r, d, err, draft)
			return
		}

		if _, err := e.Submit(r.Context()); err != nil {
			writeError(w, r, d, err, e.Draft())
			return
		}

		logAdminWrite(d, r, c.Kind(), "update", id)
		writeJSON(w, http.StatusOK, writeResponse{ID: id, Stale: c.Snapshot().LastError != nil})
	}
}

// AdminDelete removes the record at {id}. Unknown ids succeed.
func AdminDelete[R content.Record[R]](d deps.Deps, c *content.Controller[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := c.Delete(r.Context(), id); err != nil {
			writeError(w, r, d, err, nil)
			return
		}
		logAdminWrite(d, r, c.Kind(), "delete", id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// AdminSeed persists the bundled fixture when the collection is empty.
func AdminSeed[R content.Record[R]](d deps.Deps, c *content.Controller[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := c.SeedFromBundled(r.Context())
		if err != nil {
			d.Logger.Warn("seed stopped part-way",
				logger.String("kind", c.Kind()),
				logger.Int("inserted", n))
			writeError(w, r, d, err, nil)
			return
		}
		logAdminWrite(d, r, c.Kind(), "seed", "")
		writeJSON(w, http.StatusOK, writeResponse{Inserted: &n})
	}
}

// AdminReload asks the content reloader to refresh every collection now.
func AdminReload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual content reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, map[string]string{"status": "reload triggered"})
		default:
			d.Logger.Warn("content reload already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"status": "reload already pending"})
		}
	}
}

func decodeDraft[R any](w http.ResponseWriter, r *http.Request) (R, bool) {
	var zero R
	body, err := readBody(w, r)
	if err != nil {
		writeBadRequest(w, r)
		return zero, false
	}
	draft, err := domain.Normalize[R](body)
	if err != nil {
		writeBadRequest(w, r)
		return zero, false
	}
	return draft, true
}

func logAdminWrite(d deps.Deps, r *http.Request, kind, op, id string) {
	p, _ := auth.FromContext(r.Context())
	d.Logger.Info("admin write",
		logger.String("kind", kind),
		logger.String("op", op),
		logger.String("id", id),
		logger.String("user_id", p.UserID))
}
