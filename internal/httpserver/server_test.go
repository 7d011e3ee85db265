package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MrSnakeDoc/pitch/internal/auth"
	"github.com/MrSnakeDoc/pitch/internal/content"
	"github.com/MrSnakeDoc/pitch/internal/domain"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pitch/internal/logger"
	"github.com/MrSnakeDoc/pitch/internal/registration"
	"github.com/MrSnakeDoc/pitch/internal/seed"
	"github.com/MrSnakeDoc/pitch/internal/store"
	"github.com/MrSnakeDoc/pitch/internal/store/memory"
)

type testServer struct {
	handler http.Handler
	store   *memory.Store
	auth    *auth.Service
	site    *content.Site
}

func newTestServer(t *testing.T, withStore bool) *testServer {
	t.Helper()
	log := logger.New("error", false)

	var s store.DocumentStore
	mem := memory.New()
	if withStore {
		s = mem
	}

	site := content.NewSite(s, seed.NewLoader(""), log)
	for _, l := range site.Loadables() {
		_ = l.Load(context.Background())
	}
	authSvc := auth.NewService(s, log, auth.Config{SessionTTL: time.Hour, HashCost: bcrypt.MinCost})

	d := deps.Deps{
		Logger:                log,
		StartTime:             time.Now(),
		Version:               "test",
		TimeNow:               time.Now,
		Store:                 s,
		StoreDriver:           "memory",
		Site:                  site,
		Auth:                  authSvc,
		Registrations:         registration.NewService(s, log),
		ReloadTrigger:         make(chan struct{}, 1),
		SessionTTL:            time.Hour,
		RegistrationBurst:     100,
		RegistrationPerMinute: 100,
		AuthRequestsPerMinute: 100,
	}

	return &testServer{
		handler: NewRouter(nil, log, d),
		store:   mem,
		auth:    authSvc,
		site:    site,
	}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// signIn creates an account and returns a session token.
func (ts *testServer) signIn(t *testing.T, email string, admin bool) string {
	t.Helper()
	ctx := context.Background()
	if _, err := ts.auth.SignUp(ctx, email, "password1"); err != nil {
		t.Fatal(err)
	}
	if admin {
		if err := ts.auth.SetAdminClaim(ctx, email, true); err != nil {
			t.Fatal(err)
		}
	}
	token, _, err := ts.auth.SignIn(ctx, email, "password1")
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestPublicVideosLocalizedAndSorted(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, http.MethodGet, "/api/content/videos?lang=fr", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	resp := decode[struct {
		Items []content.VideoView `json:"items"`
		Lang  string              `json:"lang"`
		Src   string              `json:"source"`
	}](t, rec)

	if resp.Lang != "fr" || resp.Src != "seed" {
		t.Errorf("lang = %q, source = %q", resp.Lang, resp.Src)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("items = %d", len(resp.Items))
	}
	if resp.Items[0].ID != "v2" || resp.Items[0].Title != "Cup final highlights" {
		t.Errorf("first = %+v, want v2 in English fallback", resp.Items[0])
	}
	if resp.Items[1].Title != "Séance d'entraînement" {
		t.Errorf("second title = %q", resp.Items[1].Title)
	}
}

func TestPublicCatalogs(t *testing.T) {
	ts := newTestServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/content/nav", nil)
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[struct {
		Items []map[string]any `json:"items"`
		Lang  string           `json:"lang"`
	}](t, rec)
	if resp.Lang != "ru" || len(resp.Items) != 5 {
		t.Fatalf("lang = %q, items = %d", resp.Lang, len(resp.Items))
	}
	if _, ok := resp.Items[0]["label"].(string); !ok {
		t.Errorf("label not localized: %v", resp.Items[0]["label"])
	}
}

func TestRegistrationStatusCodes(t *testing.T) {
	valid := map[string]any{
		"parentName":   "Anna",
		"childName":    "Ivan",
		"childAge":     9,
		"contactEmail": "anna@example.com",
		"contactPhone": "0600000000",
	}
	missing := map[string]any{
		"parentName":   "Anna",
		"childAge":     "9",
		"contactEmail": "anna@example.com",
		"contactPhone": "0600000000",
	}

	tests := []struct {
		name      string
		withStore bool
		body      any
		status    int
		field     string
	}{
		{"created", true, valid, http.StatusCreated, ""},
		{"missing field", true, missing, http.StatusBadRequest, "childName"},
		{"not json", true, "{nope", http.StatusBadRequest, ""},
		{"no store", false, valid, http.StatusServiceUnavailable, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.withStore)
			rec := ts.do(t, http.MethodPost, "/api/registrations", "", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.field != "" {
				if got := decode[map[string]any](t, rec)["field"]; got != tt.field {
					t.Errorf("field = %v, want %s", got, tt.field)
				}
			}
			if tt.status == http.StatusCreated && ts.store.Count(registration.Collection) != 1 {
				t.Errorf("registration not stored")
			}
		})
	}
}

func TestAdminRequiresAdminClaim(t *testing.T) {
	ts := newTestServer(t, true)
	member := ts.signIn(t, "member@example.com", false)

	if rec := ts.do(t, http.MethodGet, "/api/admin/news", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", rec.Code)
	}
	if rec := ts.do(t, http.MethodGet, "/api/admin/news", "bogus", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rec.Code)
	}
	if rec := ts.do(t, http.MethodGet, "/api/admin/news", member, nil); rec.Code != http.StatusForbidden {
		t.Errorf("member: status = %d, want 403", rec.Code)
	}
	if rec := ts.do(t, http.MethodGet, "/api/auth/me", member, nil); rec.Code != http.StatusOK {
		t.Errorf("me: status = %d, want 200", rec.Code)
	}
}

func TestAdminCRUD(t *testing.T) {
	ts := newTestServer(t, true)
	admin := ts.signIn(t, "owner@example.com", true)

	// Seed fallback is listed but not durable.
	list := decode[struct {
		Items   []domain.News `json:"items"`
		Durable bool          `json:"durable"`
	}](t, ts.do(t, http.MethodGet, "/api/admin/news", admin, nil))
	if list.Durable || len(list.Items) != 3 {
		t.Fatalf("initial list = %+v", list)
	}

	// Missing title: 400, field named, draft echoed.
	rec := ts.do(t, http.MethodPost, "/api/admin/news", admin, map[string]string{"description": "typed text"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid create: status = %d", rec.Code)
	}
	bad := decode[struct {
		Field string      `json:"field"`
		Draft domain.News `json:"draft"`
	}](t, rec)
	if bad.Field != "title" || bad.Draft.Description != "typed text" {
		t.Errorf("invalid create response = %+v", bad)
	}
	if ts.store.Count(domain.CollectionNews) != 0 {
		t.Fatal("invalid draft was written")
	}

	rec = ts.do(t, http.MethodPost, "/api/admin/news", admin, map[string]string{"title": "Derby day", "description": "Sunday 3pm"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d (%s)", rec.Code, rec.Body.String())
	}
	id := decode[map[string]any](t, rec)["id"].(string)

	rec = ts.do(t, http.MethodPut, "/api/admin/news/"+id, admin, map[string]string{"title": "Derby day moved", "description": "Sunday 5pm"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d (%s)", rec.Code, rec.Body.String())
	}
	items := ts.site.News.Snapshot().Items
	if len(items) != 1 || items[0].Title != "Derby day moved" || items[0].ID != id {
		t.Errorf("after update = %+v", items)
	}

	rec = ts.do(t, http.MethodPut, "/api/admin/news/n1", admin, map[string]string{"title": "t", "description": "d"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("update of a seed row: status = %d, want 404", rec.Code)
	}

	if rec := ts.do(t, http.MethodDelete, "/api/admin/news/"+id, admin, nil); rec.Code != http.StatusNoContent {
		t.Errorf("delete: status = %d", rec.Code)
	}
	if ts.store.Count(domain.CollectionNews) != 0 {
		t.Error("document not deleted")
	}

	rec = ts.do(t, http.MethodPost, "/api/admin/matches/seed", admin, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("seed: status = %d (%s)", rec.Code, rec.Body.String())
	}
	if n := decode[map[string]any](t, rec)["inserted"]; n != float64(2) {
		t.Errorf("inserted = %v, want 2", n)
	}
	if ts.store.Count(domain.CollectionMatches) != 2 {
		t.Errorf("matches stored = %d", ts.store.Count(domain.CollectionMatches))
	}

	if rec := ts.do(t, http.MethodPost, "/api/admin/reload", admin, nil); rec.Code != http.StatusAccepted {
		t.Errorf("reload: status = %d", rec.Code)
	}
}

func TestAuthEndpoints(t *testing.T) {
	ts := newTestServer(t, true)
	creds := map[string]string{"email": "coach@example.com", "password": "password1"}

	if rec := ts.do(t, http.MethodPost, "/api/auth/signup", "", creds); rec.Code != http.StatusCreated {
		t.Fatalf("signup: status = %d (%s)", rec.Code, rec.Body.String())
	}
	if rec := ts.do(t, http.MethodPost, "/api/auth/signup", "", creds); rec.Code != http.StatusConflict {
		t.Errorf("duplicate signup: status = %d", rec.Code)
	}

	rec := ts.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{"email": "coach@example.com", "password": "nope-nope"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad password: status = %d", rec.Code)
	}

	rec = ts.do(t, http.MethodPost, "/api/auth/signin", "", creds)
	if rec.Code != http.StatusOK {
		t.Fatalf("signin: status = %d", rec.Code)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("no session cookie set")
	}
	token := decode[map[string]any](t, rec)["token"].(string)

	if rec := ts.do(t, http.MethodPost, "/api/auth/signout", token, nil); rec.Code != http.StatusNoContent {
		t.Errorf("signout: status = %d", rec.Code)
	}
	if rec := ts.do(t, http.MethodGet, "/api/auth/me", token, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("me after signout: status = %d", rec.Code)
	}
}

func TestOpsEndpoints(t *testing.T) {
	ts := newTestServer(t, true)
	for _, path := range []string{"/healthz", "/readyz", "/infra", "/metrics"} {
		if rec := ts.do(t, http.MethodGet, path, "", nil); rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, rec.Code)
		}
	}

	noStore := newTestServer(t, false)
	if rec := noStore.do(t, http.MethodGet, "/readyz", "", nil); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz without store: status = %d", rec.Code)
	}
	infra := decode[map[string]any](t, noStore.do(t, http.MethodGet, "/infra", "", nil))
	if infra["mode"] != "degraded" {
		t.Errorf("infra mode = %v", infra["mode"])
	}
}
