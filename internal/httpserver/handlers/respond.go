package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dartlinks/dart/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// shortcutResponse is the wire shape of a shortcut.
type shortcutResponse struct {
	ID             string     `json:"id"`
	Alias          string     `json:"alias"`
	Folder         string     `json:"folder,omitempty"`
	FullAlias      string     `json:"full_alias"`
	URL            string     `json:"url"`
	Tags           []string   `json:"tags"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
	AccessCount    int64      `json:"access_count"`
}

func toShortcutResponse(s *domain.Shortcut) shortcutResponse {
	resp := shortcutResponse{
		ID:          s.ID,
		Alias:       s.Alias,
		Folder:      s.Folder,
		FullAlias:   s.FullAlias(),
		URL:         s.URL,
		Tags:        s.Tags,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		AccessCount: s.AccessCount,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if !s.LastAccessedAt.IsZero() {
		t := s.LastAccessedAt
		resp.LastAccessedAt = &t
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain error kinds onto HTTP statuses. Validation
// failures are the caller's to fix; only store trouble is retryable.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	kind := "internal"

	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		status, kind = http.StatusBadRequest, "invalid_url"
	case errors.Is(err, domain.ErrInvalidAlias):
		status, kind = http.StatusBadRequest, "invalid_alias"
	case errors.Is(err, domain.ErrInvalidFolder):
		status, kind = http.StatusBadRequest, "invalid_folder"
	case errors.Is(err, domain.ErrInvalidTag):
		status, kind = http.StatusBadRequest, "invalid_tag"
	case errors.Is(err, domain.ErrDuplicateAlias):
		status, kind = http.StatusConflict, "duplicate_alias"
	case errors.Is(err, domain.ErrFolderRenameConflict):
		status, kind = http.StatusConflict, "folder_rename_conflict"
	case errors.Is(err, domain.ErrFolderNotEmpty):
		status, kind = http.StatusConflict, "folder_not_empty"
	case errors.Is(err, domain.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrStoreUnavailable):
		status, kind = http.StatusServiceUnavailable, "store_unavailable"
	}

	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg, Kind: "bad_request"})
}
