package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/pipeline"
)

// NewRouter creates a chi router with all trigger routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(runner *pipeline.Runner, db index.Tracker, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(runner, db)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Post("/pipelines/daily", h.RunDaily)
	r.Post("/pipelines/weekly", h.RunWeekly)
	r.Post("/pipelines/fetch-body", h.FetchBodies)
	r.Post("/pipelines/classify", h.ClassifyBooks)
	r.Post("/pipelines/summarize", h.Summarize)

	r.Get("/runs", h.RecentRuns)
	r.Get("/processed", h.ProcessedSources)

	// SSE endpoint (protected by the same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
