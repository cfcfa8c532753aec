package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/dartlinks/dart/internal/httpserver/deps"
	"github.com/dartlinks/dart/internal/httpserver/handlers"
	"github.com/dartlinks/dart/internal/httpserver/mw"
)

func init() { Register(registerFolders) }

func registerFolders(r chi.Router, d deps.Deps) {
	r.Get("/api/folders", handlers.ListFolders(d))

	limited := r.With(mw.RateLimit(d.RateLimit))
	limited.Post("/api/folders/rename", handlers.RenameFolder(d))
	limited.Delete("/api/folders/{name}", handlers.DeleteFolder(d))
	limited.Post("/api/folders/cleanup", handlers.CleanupFolders(d))
}
