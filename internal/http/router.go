package http

import (
	"net/http"

	"github-stats/internal/shared/loggers"
	"github-stats/internal/shared/metrics"
	"github-stats/internal/stores"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(eventStore stores.EventStore, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	eventCountsHandler := NewEventCountsHandler(eventStore)
	prAverageHandler := NewPRAverageHandler(eventStore)
	topReposHandler := NewTopReposHandler(eventStore)
	repoEventsHandler := NewRepoEventsHandler(eventStore)
	repoEventCountHandler := NewRepoEventCountHandler(eventStore)
	healthHandler := NewHealthHandler(eventStore)

	// Routes
	router.Get("/metrics/events", errorHandlingAdapter(eventCountsHandler))
	router.Get("/metrics/pr-average/{owner}/{name}", errorHandlingAdapter(prAverageHandler))
	router.Get("/repos/top", errorHandlingAdapter(topReposHandler))
	router.Get("/repos/{owner}/{name}/events", errorHandlingAdapter(repoEventsHandler))
	router.Get("/debug/repo-events/{owner}/{name}", errorHandlingAdapter(repoEventCountHandler))
	router.Get("/health", errorHandlingAdapter(healthHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
