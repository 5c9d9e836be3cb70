package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/banho/internal/admin"
	"github.com/MrSnakeDoc/banho/internal/gateway"
	"github.com/MrSnakeDoc/banho/internal/httpserver/deps"
	"github.com/MrSnakeDoc/banho/internal/index"
	"github.com/MrSnakeDoc/banho/internal/localstore"
	"github.com/MrSnakeDoc/banho/internal/logger"
	"github.com/MrSnakeDoc/banho/internal/static"
)

type testEnv struct {
	handler http.Handler
	deps    deps.Deps
	store   *localstore.MemoryStore
}

func newTestEnv(t *testing.T, tweak func(*deps.Deps)) *testEnv {
	t.Helper()

	loader := static.NewLoader("")
	ds, err := loader.Load()
	require.NoError(t, err)
	idx := index.NewMemoryIndex()
	idx.Replace(ds)

	store := localstore.NewMemoryStore()
	users := admin.NewService(store, logger.Nop())
	raw, err := loader.Raw("admin_users.json")
	require.NoError(t, err)
	_, err = users.SeedIfEmpty(context.Background(), raw)
	require.NoError(t, err)

	d := deps.Deps{
		Logger:        logger.Nop(),
		StartTime:     time.Now().Add(-time.Minute),
		Version:       "test",
		SubmitRPS:     100,
		SubmitBurst:   100,
		Gateway:       gateway.New(gateway.Options{Mode: gateway.ModeDevelopment, Store: store, Static: idx}),
		Store:         store,
		StoreBackend:  "memory",
		MemoryIndex:   idx,
		Users:         users,
		ReloadTrigger: make(chan struct{}, 1),
	}
	if tweak != nil {
		tweak(&d)
	}
	return &testEnv{handler: Router(logger.Nop(), d), deps: d, store: store}
}

func (e *testEnv) do(t *testing.T, method, target, body string, headers ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func items(t *testing.T, body map[string]any, key string) []map[string]any {
	t.Helper()
	raw, ok := body[key].([]any)
	require.True(t, ok, "missing %q in %v", key, body)
	out := make([]map[string]any, len(raw))
	for i, v := range raw {
		out[i] = v.(map[string]any)
	}
	return out
}

func TestStoriesListAndLanguage(t *testing.T) {
	env := newTestEnv(t, nil)

	rec, body := env.do(t, http.MethodGet, "/api/stories?lang=en", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])

	list := items(t, body, "items")
	require.NotEmpty(t, list)
	assert.Equal(t, "historia-banho-rio", list[0]["id"])
	assert.Equal(t, "The bath in the Paraguay River", list[0]["title"])

	pagination := body["pagination"].(map[string]any)
	assert.EqualValues(t, 1, pagination["page"])
	assert.EqualValues(t, len(list), pagination["total"])
	assert.Equal(t, false, body["hasNext"])
	assert.Equal(t, false, body["hasPrev"])

	_, body = env.do(t, http.MethodGet, "/api/stories", "", "Accept-Language", "es-ES,es;q=0.9")
	assert.Equal(t, "El baño en el Río Paraguay", items(t, body, "items")[0]["title"])
}

func TestStoryDetail(t *testing.T) {
	env := newTestEnv(t, nil)

	rec, body := env.do(t, http.MethodGet, "/api/stories/historia-banho-rio?format=html", "")
	require.Equal(t, http.StatusOK, rec.Code)
	story := body["story"].(map[string]any)
	assert.Equal(t, "O banho no Rio Paraguai", story["title"])
	assert.Contains(t, body["html"], "<strong>São João</strong>")

	rec, body = env.do(t, http.MethodGet, "/api/stories/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "error", body["status"])
}

func TestStoryLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)

	_, before := env.do(t, http.MethodGet, "/api/stories", "")
	total := before["pagination"].(map[string]any)["total"].(float64)

	rec, body := env.do(t, http.MethodPost, "/api/stories",
		`{"title":"Minha história","content":"Lembro do <b>andor</b><script>x</script>","author":"Ana"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := body["story"].(map[string]any)
	id := created["id"].(string)
	assert.True(t, strings.HasPrefix(id, "story_"), id)
	assert.Equal(t, "local", created["source"])
	assert.NotContains(t, created["content"], "<script>")

	_, after := env.do(t, http.MethodGet, "/api/stories", "")
	assert.EqualValues(t, total+1, after["pagination"].(map[string]any)["total"])

	rec, body = env.do(t, http.MethodPut, "/api/stories/"+id, `{"title":"Título novo"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Título novo", body["story"].(map[string]any)["title"])

	rec, _ = env.do(t, http.MethodDelete, "/api/stories/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(t, http.MethodDelete, "/api/stories/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoryWriteErrors(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"missing fields", http.MethodPost, "/api/stories", `{"title":"x"}`, http.StatusUnprocessableEntity},
		{"bad json", http.MethodPost, "/api/stories", `{"title":`, http.StatusBadRequest},
		{"bundled story update", http.MethodPut, "/api/stories/historia-banho-rio", `{"title":"x"}`, http.StatusConflict},
		{"bundled story delete", http.MethodDelete, "/api/stories/historia-banho-rio", "", http.StatusConflict},
		{"unknown story", http.MethodPut, "/api/stories/story_1_abc", `{"title":"x"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := env.do(t, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.Equal(t, "error", body["status"])
		})
	}

	_, body := env.do(t, http.MethodPost, "/api/stories", `{"title":"x"}`)
	fields := body["errors"].(map[string]any)
	assert.Equal(t, "content_required", fields["content"])
	assert.Equal(t, "author_required", fields["author"])
}

func TestCommunityLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)

	rec, body := env.do(t, http.MethodPost, "/api/communities",
		`{"name":"Comunidade Nova","description":"Festeiros do bairro"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := body["community"].(map[string]any)["id"].(string)

	rec, _ = env.do(t, http.MethodPut, "/api/communities/"+id, `{"location":"Corumbá"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(t, http.MethodDelete, "/api/communities/comunidade-ladeira", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = env.do(t, http.MethodDelete, "/api/communities/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProgramacaoEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)

	rec, body := env.do(t, http.MethodGet, "/api/programacao/eventos?date=2025-06-24", "")
	require.Equal(t, http.StatusOK, rec.Code)
	ids := []any{}
	for _, ev := range items(t, body, "events") {
		ids = append(ids, ev["id"])
	}
	assert.Contains(t, ids, "evento-descida")
	assert.NotContains(t, ids, "evento-alvorada")

	rec, _ = env.do(t, http.MethodGet, "/api/programacao/eventos?date=24/06", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, body = env.do(t, http.MethodGet, "/api/programacao/categoria/procissao", "")
	for _, ev := range items(t, body, "events") {
		assert.Equal(t, "procissao", ev["category"])
	}
}

func TestGaleriaDefaultsToLatestYear(t *testing.T) {
	env := newTestEnv(t, nil)

	_, body := env.do(t, http.MethodGet, "/api/galeria/years", "")
	assert.ElementsMatch(t, []any{2023.0, 2024.0}, body["years"])

	rec, body := env.do(t, http.MethodGet, "/api/galeria/images", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2024, body["year"])
}

func TestCatalogListsAnswer(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, target := range []string{
		"/api/testimonials",
		"/api/testimonials/categories",
		"/api/postcards?_sort=id&_order=desc",
		"/api/postcards/categories",
		"/api/postcards/base",
		"/api/communities",
		"/api/biblioteca",
		"/api/biblioteca/categorias",
		"/api/programacao/categorias",
	} {
		rec, body := env.do(t, http.MethodGet, target, "")
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, "success", body["status"], target)
	}
}

func TestAdminUsers(t *testing.T) {
	env := newTestEnv(t, nil)

	rec, body := env.do(t, http.MethodGet, "/admin/users/1/data", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", body["user"].(map[string]any)["role"])
	assert.NotEmpty(t, body["permissions"])

	rec, body = env.do(t, http.MethodPost, "/admin/users/2/deactivate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user deactivated", body["message"])

	_, body = env.do(t, http.MethodGet, "/admin/users/2/data", "")
	assert.Equal(t, false, body["user"].(map[string]any)["active"])

	rec, _ = env.do(t, http.MethodPost, "/admin/users/2/promote", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/admin/users/99/data", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutesRespectCIDRs(t *testing.T) {
	env := newTestEnv(t, func(d *deps.Deps) { d.AdminCIDRs = []string{"10.0.0.0/8"} })

	// httptest requests come from 192.0.2.1
	rec, body := env.do(t, http.MethodGet, "/admin/users/1/data", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "error", body["status"])

	rec, _ = env.do(t, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoutesLockedWithoutCIDRs(t *testing.T) {
	env := newTestEnv(t, func(d *deps.Deps) { d.LockAdmin = true })

	rec, body := env.do(t, http.MethodGet, "/admin/users/1/data", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "error", body["status"])

	rec, _ = env.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	dev := newTestEnv(t, nil)
	rec, _ = dev.do(t, http.MethodGet, "/admin/users/1/data", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmissionsAreRateLimited(t *testing.T) {
	env := newTestEnv(t, func(d *deps.Deps) {
		d.SubmitRPS = 0.01
		d.SubmitBurst = 1
	})
	payload := `{"author":"Ana","content":"Viva São João"}`

	rec, _ := env.do(t, http.MethodPost, "/api/testimonials", payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, body := env.do(t, http.MethodPost, "/api/testimonials", payload)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "error", body["status"])

	// reads are never throttled
	rec, _ = env.do(t, http.MethodGet, "/api/testimonials", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOperationalEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)

	rec, body := env.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])

	rec, body = env.do(t, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ready"])

	rec, body = env.do(t, http.MethodGet, "/infra", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "degraded", body["serving_mode"])
	assert.Equal(t, "development", body["gateway_mode"])

	rec, _ = env.do(t, http.MethodPost, "/reload", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	rec, _ = env.do(t, http.MethodPost, "/reload", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "banho_")
}

func TestReadyzWithoutDataset(t *testing.T) {
	env := newTestEnv(t, func(d *deps.Deps) { d.MemoryIndex = index.NewMemoryIndex() })

	rec, body := env.do(t, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "dataset not loaded", body["reason"])
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t, func(d *deps.Deps) { d.CORSOrigins = []string{"https://banhodesaojoao.ms"} })

	rec, _ := env.do(t, http.MethodOptions, "/api/stories", "",
		"Origin", "https://banhodesaojoao.ms",
		"Access-Control-Request-Method", "POST")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://banhodesaojoao.ms", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")

	rec, _ = env.do(t, http.MethodGet, "/api/stories", "", "Origin", "https://evil.example")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
