package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dartlinks/dart/internal/domain"
	"github.com/dartlinks/dart/internal/httpserver/deps"
	"github.com/dartlinks/dart/internal/httpserver/mw"
	"github.com/dartlinks/dart/internal/httpserver/routes"
	"github.com/dartlinks/dart/internal/logger"
	"github.com/dartlinks/dart/internal/namespace"
	"github.com/dartlinks/dart/internal/search"
	"github.com/dartlinks/dart/internal/store"
	"github.com/dartlinks/dart/internal/tracker"
)

type shortcutDTO struct {
	ID          string   `json:"id"`
	Alias       string   `json:"alias"`
	Folder      string   `json:"folder"`
	FullAlias   string   `json:"full_alias"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	AccessCount int64    `json:"access_count"`
}

type searchResultDTO struct {
	Shortcut shortcutDTO `json:"shortcut"`
	Tier     string      `json:"tier"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.NewNop()
	st := store.NewMemoryStore()

	manager := namespace.New(st, log)
	require.NoError(t, manager.Rebuild(context.Background()))

	tr := tracker.New(st, manager, log)

	snapshot := func(ctx context.Context) ([]*domain.Shortcut, error) {
		return st.GetAllShortcuts(ctx)
	}
	controller := search.NewController(snapshot, log, 10*time.Millisecond, 16)
	manager.OnMutation(controller.Invalidate)

	d := deps.Deps{
		Logger:     log,
		StartTime:  time.Now(),
		Store:      st,
		Manager:    manager,
		Tracker:    tr,
		Controller: controller,
		RateLimit: mw.RateLimitConfig{
			Burst:             1000,
			RefillPerIPPerMin: 60000,
		},
		FrequentSize: 10,
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createShortcut(t *testing.T, srv *httptest.Server, folder, alias, url string, tags ...string) shortcutDTO {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/shortcuts", map[string]any{
		"url":    url,
		"alias":  alias,
		"folder": folder,
		"tags":   tags,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[shortcutDTO](t, resp)
}

func TestShortcutLifecycle(t *testing.T) {
	srv := newTestServer(t)

	created := createShortcut(t, srv, "work", "meet", "https://meet.google.com", "calls")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "work/meet", created.FullAlias)
	assert.Equal(t, []string{"calls"}, created.Tags)

	// Duplicate composite key, any casing.
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/shortcuts", map[string]any{
		"url":   "https://other.example.com",
		"alias": "MEET", "folder": "Work",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Patch the URL only.
	resp = doJSON(t, http.MethodPatch, srv.URL+"/api/shortcuts/"+created.ID, map[string]any{
		"url": "https://meet.example.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	patched := decode[shortcutDTO](t, resp)
	assert.Equal(t, "https://meet.example.com", patched.URL)
	assert.Equal(t, "meet", patched.Alias)

	// Delete, then the alias is free again.
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/shortcuts/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	createShortcut(t, srv, "work", "meet", "https://meet.google.com")
}

func TestValidationStatuses(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{
			name: "bad url",
			body: map[string]any{"url": "nope", "alias": "a"},
			want: http.StatusBadRequest,
		},
		{
			name: "bad alias",
			body: map[string]any{"url": "https://example.com", "alias": "no spaces"},
			want: http.StatusBadRequest,
		},
		{
			name: "bad folder",
			body: map[string]any{"url": "https://example.com", "alias": "a", "folder": "a/b"},
			want: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, srv.URL+"/api/shortcuts", tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	resp := doJSON(t, http.MethodPatch, srv.URL+"/api/shortcuts/missing", map[string]any{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchEndpoint(t *testing.T) {
	srv := newTestServer(t)

	createShortcut(t, srv, "work", "meet", "https://a.example.com")
	createShortcut(t, srv, "", "meeting-notes", "https://b.example.com")
	createShortcut(t, srv, "", "standup", "https://c.example.com", "meet")
	createShortcut(t, srv, "", "docs", "https://meet.example.com")

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/search?q=meet", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	results := decode[[]searchResultDTO](t, resp)

	require.Len(t, results, 4)
	assert.Equal(t, "work/meet", results[0].Shortcut.FullAlias)
	assert.Equal(t, "exact", results[0].Tier)
	assert.Equal(t, "meeting-notes", results[1].Shortcut.FullAlias)
	assert.Equal(t, "partial", results[1].Tier)
	assert.Equal(t, "standup", results[2].Shortcut.FullAlias)
	assert.Equal(t, "tag", results[2].Tier)
	assert.Equal(t, "docs", results[3].Shortcut.FullAlias)
	assert.Equal(t, "url", results[3].Tier)

	// Folder-scoped query.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/search?q=work/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	results = decode[[]searchResultDTO](t, resp)
	require.Len(t, results, 1)
	assert.Equal(t, "work/meet", results[0].Shortcut.FullAlias)
}

func TestSearchCacheInvalidationOnMutation(t *testing.T) {
	srv := newTestServer(t)

	createShortcut(t, srv, "", "meet", "https://a.example.com")

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/search?q=meet", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decode[[]searchResultDTO](t, resp), 1)

	// A mutation must not leave a stale cached result behind.
	createShortcut(t, srv, "", "meet-too", "https://b.example.com")
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/search?q=meet", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]searchResultDTO](t, resp), 2)
}

func TestEmptySearchServesFrequent(t *testing.T) {
	srv := newTestServer(t)

	a := createShortcut(t, srv, "", "alpha", "https://a.example.com")
	createShortcut(t, srv, "", "beta", "https://b.example.com")

	for i := 0; i < 2; i++ {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/shortcuts/"+a.ID+"/access", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/search?q=", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	results := decode[[]searchResultDTO](t, resp)
	require.Len(t, results, 2)
	assert.Equal(t, "alpha", results[0].Shortcut.FullAlias)
	assert.Equal(t, "frequent", results[0].Tier)
	assert.Equal(t, int64(2), results[0].Shortcut.AccessCount)
}

func TestResolveRedirects(t *testing.T) {
	srv := newTestServer(t)

	createShortcut(t, srv, "work", "meet", "https://meet.google.com")

	resp := doJSON(t, http.MethodGet, srv.URL+"/go/work/meet", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://meet.google.com", resp.Header.Get("Location"))

	// Resolving records an access.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/frequent?n=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	top := decode[[]shortcutDTO](t, resp)
	require.Len(t, top, 1)
	assert.Equal(t, int64(1), top[0].AccessCount)

	resp = doJSON(t, http.MethodGet, srv.URL+"/go/nothing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFolderEndpoints(t *testing.T) {
	srv := newTestServer(t)

	createShortcut(t, srv, "work", "meet", "https://a.example.com")
	createShortcut(t, srv, "work", "docs", "https://b.example.com")
	createShortcut(t, srv, "home", "meet", "https://c.example.com")

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/folders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	folders := decode[[]struct {
		Name          string `json:"name"`
		ShortcutCount int    `json:"shortcut_count"`
	}](t, resp)
	require.Len(t, folders, 2)
	assert.Equal(t, "home", folders[0].Name)
	assert.Equal(t, 1, folders[0].ShortcutCount)
	assert.Equal(t, "work", folders[1].Name)
	assert.Equal(t, 2, folders[1].ShortcutCount)

	// Rename with a collision: nothing moves.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/folders/rename", map[string]any{
		"old": "work", "new": "home",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/folders/rename", map[string]any{
		"old": "work", "new": "office",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	moved := decode[struct {
		Moved int `json:"moved"`
	}](t, resp)
	assert.Equal(t, 2, moved.Moved)

	resp = doJSON(t, http.MethodGet, srv.URL+"/go/office/meet", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	// Deleting a non-empty folder is refused.
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/folders/office", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Cleanup removes records of folders with no shortcuts left.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/folders/cleanup", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimitOnMutations(t *testing.T) {
	srv := newTestServerWithRateLimit(t, 2)

	for i := 0; i < 2; i++ {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/shortcuts", map[string]any{
			"url":   "https://example.com",
			"alias": fmt.Sprintf("a%d", i),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/shortcuts", map[string]any{
		"url":   "https://example.com",
		"alias": "blocked",
	})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	// Read paths are not limited.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/search?q=a0", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func newTestServerWithRateLimit(t *testing.T, burst int) *httptest.Server {
	t.Helper()

	log := logger.NewNop()
	st := store.NewMemoryStore()

	manager := namespace.New(st, log)
	require.NoError(t, manager.Rebuild(context.Background()))

	controller := search.NewController(func(ctx context.Context) ([]*domain.Shortcut, error) {
		return st.GetAllShortcuts(ctx)
	}, log, 10*time.Millisecond, 16)
	manager.OnMutation(controller.Invalidate)

	d := deps.Deps{
		Logger:     log,
		StartTime:  time.Now(),
		Store:      st,
		Manager:    manager,
		Tracker:    tracker.New(st, manager, log),
		Controller: controller,
		RateLimit: mw.RateLimitConfig{
			Burst:             burst,
			RefillPerIPPerMin: 1,
		},
		FrequentSize: 10,
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}
