package deps

import (
	"time"

	"github.com/dartlinks/dart/internal/httpserver/mw"
	"github.com/dartlinks/dart/internal/logger"
	"github.com/dartlinks/dart/internal/namespace"
	"github.com/dartlinks/dart/internal/search"
	"github.com/dartlinks/dart/internal/store"
	"github.com/dartlinks/dart/internal/tracker"
)

// Deps carries the shared dependencies handed to every route.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Store      store.Store          // record store (read paths)
	Manager    *namespace.Manager   // all mutations
	Tracker    *tracker.Tracker     // access recording / frequent view
	Controller *search.Controller   // ranked search with result cache
	RateLimit  mw.RateLimitConfig   // applied to mutation routes

	FrequentSize int // default n for the frequent view
}
