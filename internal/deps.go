package internal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/ansuz/internal/ai"
	"github.com/starford/ansuz/internal/article"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/ocr"
	"github.com/starford/ansuz/internal/pipeline"
	"github.com/starford/ansuz/internal/storage"
)

// BuildRunner wires a pipeline runner from configuration, selecting the
// mock or real variant of each external collaborator.
func BuildRunner(ctx context.Context, cfg *Config, store storage.Provider, db index.Tracker, logger *slog.Logger) (*pipeline.Runner, error) {
	var gen ai.Generator
	if cfg.AI.Mock {
		logger.Info("using mock text generator")
		gen = ai.Mock{}
	} else {
		g, err := ai.NewGemini(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			return nil, fmt.Errorf("init generator: %w", err)
		}
		gen = g
	}

	var reader ocr.Recognizer
	if cfg.OCR.Mock {
		logger.Info("using mock OCR")
		reader = ocr.Mock{}
	} else {
		reader = &ocr.Tesseract{Lang: cfg.OCR.Lang}
	}

	var fetcher article.Fetcher
	if cfg.Article.Mock {
		logger.Info("using mock article fetcher")
		fetcher = article.Mock{}
	} else {
		fetcher = article.NewHTTP(time.Duration(cfg.Article.TimeoutSeconds) * time.Second)
	}

	paths := pipeline.Paths{
		DailyDir:    cfg.Vault.DailyDir,
		DailyPDFDir: cfg.Vault.DailyPDFDir,
		WeeklyDir:   cfg.Vault.WeeklyDir,
		FleetingDir: cfg.Vault.FleetingDir,
		BookmarkDir: cfg.Vault.BookmarkDir,
		BooksDir:    cfg.Vault.BooksDir,
	}

	return pipeline.New(store, db, gen, reader, fetcher, paths, logger), nil
}
