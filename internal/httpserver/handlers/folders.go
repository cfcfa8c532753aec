package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dartlinks/dart/internal/httpserver/deps"
	"github.com/dartlinks/dart/internal/logger"
)

type folderResponse struct {
	Name          string `json:"name"`
	ShortcutCount int    `json:"shortcut_count"`
}

type renameFolderRequest struct {
	Old string `json:"old"`
	New string `json:"new"`
}

type renameFolderResponse struct {
	Moved int `json:"moved"`
}

type cleanupFoldersResponse struct {
	Removed int `json:"removed"`
}

// ListFolders handles GET /api/folders. Folder existence is derived:
// the listing is the union of explicit folder records and folders
// referenced by shortcuts, with counts computed by scanning.
func ListFolders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		folders, err := d.Store.GetAllFolders(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		shortcuts, err := d.Store.GetAllShortcuts(ctx)
		if err != nil {
			writeError(w, err)
			return
		}

		counts := make(map[string]int)
		names := make(map[string]string) // lower -> display name
		for _, f := range folders {
			names[strings.ToLower(f.Name)] = f.Name
		}
		for _, s := range shortcuts {
			if s.Folder == "" {
				continue
			}
			key := strings.ToLower(s.Folder)
			counts[key]++
			if _, ok := names[key]; !ok {
				names[key] = s.Folder
			}
		}

		out := make([]folderResponse, 0, len(names))
		for key, display := range names {
			out = append(out, folderResponse{Name: display, ShortcutCount: counts[key]})
		}
		sort.Slice(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})

		writeJSON(w, http.StatusOK, out)
	}
}

// RenameFolder handles POST /api/folders/rename.
func RenameFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req renameFolderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}

		moved, err := d.Manager.RenameFolder(r.Context(), req.Old, req.New)
		if err != nil {
			d.Logger.Warn("folder rename rejected",
				logger.String("old", req.Old),
				logger.String("new", req.New),
				logger.Error(err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, renameFolderResponse{Moved: moved})
	}
}

// DeleteFolder handles DELETE /api/folders/{name}.
func DeleteFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		if err := d.Manager.DeleteFolder(r.Context(), name); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// CleanupFolders handles POST /api/folders/cleanup.
func CleanupFolders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := d.Manager.CleanupEmptyFolders(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cleanupFoldersResponse{Removed: removed})
	}
}
