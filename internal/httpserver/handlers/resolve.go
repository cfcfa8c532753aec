package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dartlinks/dart/internal/httpserver/deps"
	"github.com/dartlinks/dart/internal/logger"
)

// Resolve handles GET /go/* — the redirect flow. The wildcard is the
// full alias ("meet" or "work/meet"); a hit records an access and
// redirects to the target URL.
func Resolve(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fullAlias := strings.Trim(chi.URLParam(r, "*"), "/")
		if fullAlias == "" {
			badRequest(w, "missing alias")
			return
		}

		s, err := d.Manager.Resolve(r.Context(), fullAlias)
		if err != nil {
			d.Logger.Debug("alias not resolved",
				logger.String("full_alias", fullAlias),
				logger.Error(err))
			writeError(w, err)
			return
		}

		// Best effort: a failed access record must not block the redirect.
		if _, err := d.Tracker.RecordAccess(r.Context(), s.ID); err != nil {
			d.Logger.Warn("failed to record access",
				logger.String("id", s.ID),
				logger.Error(err))
		}

		d.Logger.Info("alias resolved",
			logger.String("full_alias", s.FullAlias()),
			logger.String("url", s.URL))
		http.Redirect(w, r, s.URL, http.StatusFound)
	}
}
