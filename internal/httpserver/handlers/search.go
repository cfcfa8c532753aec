package handlers

import (
	"net/http"
	"strconv"

	"github.com/dartlinks/dart/internal/domain"
	"github.com/dartlinks/dart/internal/httpserver/deps"
	"github.com/dartlinks/dart/internal/logger"
)

type searchResult struct {
	Shortcut shortcutResponse `json:"shortcut"`
	Tier     string           `json:"tier"`
}

// Search handles GET /api/search?q=. An empty query returns the
// frequent view instead of an empty list; ranked tiers need at least
// one character.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")

		q := domain.ParseQuery(query)
		if q.Kind == domain.QueryEmpty {
			frequent, err := d.Tracker.TopFrequent(r.Context(), d.FrequentSize)
			if err != nil {
				writeError(w, err)
				return
			}
			out := make([]searchResult, 0, len(frequent))
			for _, s := range frequent {
				out = append(out, searchResult{Shortcut: toShortcutResponse(s), Tier: "frequent"})
			}
			writeJSON(w, http.StatusOK, out)
			return
		}

		matches, err := d.Controller.Search(r.Context(), query)
		if err != nil {
			d.Logger.Error("search failed",
				logger.String("query", query),
				logger.Error(err))
			writeError(w, err)
			return
		}

		out := make([]searchResult, 0, len(matches))
		for _, m := range matches {
			out = append(out, searchResult{
				Shortcut: toShortcutResponse(m.Shortcut),
				Tier:     m.Tier.String(),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// Frequent handles GET /api/frequent?n=.
func Frequent(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := d.FrequentSize
		if raw := r.URL.Query().Get("n"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				badRequest(w, "n must be a positive integer")
				return
			}
			n = parsed
		}

		shortcuts, err := d.Tracker.TopFrequent(r.Context(), n)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]shortcutResponse, 0, len(shortcuts))
		for _, s := range shortcuts {
			out = append(out, toShortcutResponse(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}
