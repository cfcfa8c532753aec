package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/dartlinks/dart/internal/httpserver/deps"
	"github.com/dartlinks/dart/internal/httpserver/handlers"
	"github.com/dartlinks/dart/internal/httpserver/mw"
)

func init() { Register(registerShortcuts) }

func registerShortcuts(r chi.Router, d deps.Deps) {
	limited := r.With(mw.RateLimit(d.RateLimit))
	limited.Post("/api/shortcuts", handlers.CreateShortcut(d))
	limited.Patch("/api/shortcuts/{id}", handlers.UpdateShortcut(d))
	limited.Delete("/api/shortcuts/{id}", handlers.DeleteShortcut(d))

	r.Post("/api/shortcuts/{id}/access", handlers.RecordAccess(d))
}
