// Package pipeline implements the vault workflows: the daily OCR+coaching
// pipeline, the weekly review, article-body fetching, book-note
// classification, and note summarization. Every workflow is a sequential
// batch over plain files; per-document failures are logged and never stop
// the rest of the batch.
package pipeline

import (
	"log/slog"

	"github.com/starford/ansuz/internal/ai"
	"github.com/starford/ansuz/internal/article"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/ocr"
	"github.com/starford/ansuz/internal/storage"
)

// Paths is the vault directory layout, relative to the vault root.
type Paths struct {
	DailyDir    string
	DailyPDFDir string
	WeeklyDir   string
	FleetingDir string
	BookmarkDir string
	BooksDir    string
}

// Runner executes the vault workflows over shared collaborators. It holds
// no mutable state between calls; each run reads current documents, computes
// the merge, and writes back through the storage provider.
type Runner struct {
	store   storage.Provider
	db      index.Tracker
	gen     ai.Generator
	reader  ocr.Recognizer
	fetcher article.Fetcher
	paths   Paths
	logger  *slog.Logger
	notify  func(models.PipelineEvent)
}

// New creates a Runner. logger may be nil, in which case slog.Default()
// is used.
func New(store storage.Provider, db index.Tracker, gen ai.Generator, reader ocr.Recognizer, fetcher article.Fetcher, paths Paths, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		store:   store,
		db:      db,
		gen:     gen,
		reader:  reader,
		fetcher: fetcher,
		paths:   paths,
		logger:  logger,
	}
}

// SetNotify installs a callback invoked after each pipeline outcome.
// Serve mode uses it to republish events over SSE.
func (r *Runner) SetNotify(fn func(models.PipelineEvent)) {
	r.notify = fn
}

// emit records a pipeline outcome in the run history and forwards it to the
// notify callback.
func (r *Runner) emit(pipeline, target, status, detail string) {
	if r.db != nil {
		if err := r.db.LogRun(pipeline, target, status, detail); err != nil {
			r.logger.Warn("run log failed", slog.String("error", err.Error()))
		}
	}
	if r.notify != nil {
		r.notify(models.PipelineEvent{
			Pipeline: pipeline,
			Path:     target,
			Status:   status,
			Detail:   detail,
		})
	}
}
