package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dartlinks/dart/internal/domain"
	"github.com/dartlinks/dart/internal/httpserver/deps"
	"github.com/dartlinks/dart/internal/logger"
)

type createShortcutRequest struct {
	URL    string   `json:"url"`
	Alias  string   `json:"alias"`
	Folder string   `json:"folder"`
	Tags   []string `json:"tags"`
}

type updateShortcutRequest struct {
	URL    *string   `json:"url"`
	Alias  *string   `json:"alias"`
	Folder *string   `json:"folder"`
	Tags   *[]string `json:"tags"`
}

// CreateShortcut handles POST /api/shortcuts.
func CreateShortcut(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createShortcutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}

		s, err := d.Manager.Create(r.Context(), domain.Draft{
			URL:    req.URL,
			Alias:  req.Alias,
			Folder: req.Folder,
			Tags:   req.Tags,
		})
		if err != nil {
			d.Logger.Warn("create shortcut rejected", logger.Error(err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toShortcutResponse(s))
	}
}

// UpdateShortcut handles PATCH /api/shortcuts/{id}.
func UpdateShortcut(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req updateShortcutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}

		s, err := d.Manager.Update(r.Context(), id, domain.Patch{
			URL:    req.URL,
			Alias:  req.Alias,
			Folder: req.Folder,
			Tags:   req.Tags,
		})
		if err != nil {
			d.Logger.Warn("update shortcut rejected",
				logger.String("id", id),
				logger.Error(err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toShortcutResponse(s))
	}
}

// DeleteShortcut handles DELETE /api/shortcuts/{id}.
func DeleteShortcut(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := d.Manager.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// RecordAccess handles POST /api/shortcuts/{id}/access.
func RecordAccess(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		s, err := d.Tracker.RecordAccess(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toShortcutResponse(s))
	}
}
