package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/isoweek"
	"github.com/starford/ansuz/internal/pipeline"
)

// Handler exposes the pipelines over HTTP. Pipelines run synchronously on
// the request context; outcomes are additionally streamed to SSE clients by
// the runner's notify hook.
type Handler struct {
	runner *pipeline.Runner
	db     index.Tracker
}

// NewHandler creates a Handler.
func NewHandler(runner *pipeline.Runner, db index.Tracker) *Handler {
	return &Handler{runner: runner, db: db}
}

type dailyRequest struct {
	Date string `json:"date"`
}

// RunDaily handles POST /pipelines/daily.
func (h *Handler) RunDaily(w http.ResponseWriter, r *http.Request) {
	var req dailyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Date == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("date is required"))
		return
	}
	if err := h.runner.RunDaily(r.Context(), req.Date); err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, apperr.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "date": req.Date})
}

type weeklyRequest struct {
	Week string `json:"week"`
}

// RunWeekly handles POST /pipelines/weekly.
func (h *Handler) RunWeekly(w http.ResponseWriter, r *http.Request) {
	var req weeklyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Week == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("week is required"))
		return
	}
	if err := h.runner.RunWeekly(r.Context(), req.Week); err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, isoweek.ErrInvalidFormat) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "week": req.Week})
}

type fetchRequest struct {
	Since string `json:"since"`
}

// FetchBodies handles POST /pipelines/fetch-body.
func (h *Handler) FetchBodies(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	// Body is optional for this endpoint.
	_ = json.NewDecoder(r.Body).Decode(&req)
	if err := h.runner.FetchBodies(r.Context(), req.Since); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ClassifyBooks handles POST /pipelines/classify.
func (h *Handler) ClassifyBooks(w http.ResponseWriter, r *http.Request) {
	if err := h.runner.ClassifyBooks(r.Context()); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type summarizeRequest struct {
	Path  string `json:"path"`
	Force bool   `json:"force"`
}

// Summarize handles POST /pipelines/summarize. With force set, the
// processed-source record for the path is dropped first so an unchanged
// file runs again.
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	if req.Force {
		if err := h.db.ForgetProcessed(req.Path); err != nil {
			writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
			return
		}
	}
	if err := h.runner.Summarize(r.Context(), req.Path); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ProcessedSources handles GET /processed. The optional kind query
// parameter restricts the listing to one pipeline's records.
func (h *Handler) ProcessedSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.db.AllProcessed(r.URL.Query().Get("kind"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	if sources == nil {
		sources = map[string]string{}
	}
	writeJSON(w, http.StatusOK, sources)
}

// RecentRuns handles GET /runs.
func (h *Handler) RecentRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}
	runs, err := h.db.RecentRuns(limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	if runs == nil {
		runs = []index.RunRecord{}
	}
	writeJSON(w, http.StatusOK, runs)
}
