package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/starford/ansuz/internal/section"
)

// FetchedBodyHeader marks the article-body section of a bookmark note.
// Bookmark bodies carry at most this one recognized header, so replacement
// runs from the marker to the end of the body.
const FetchedBodyHeader = "## 本文（自動取得）"

// bookmarkMeta is the slice of frontmatter the fetch pipeline cares about.
type bookmarkMeta struct {
	Link    string `yaml:"link"`
	Created string `yaml:"created"`
}

// FetchBodies downloads the article body for every bookmark note and merges
// it under the fetched-body marker. since, when non-empty ("YYYY-MM-DD"),
// restricts the pass to notes created on or after that date. Malformed or
// unfetchable notes are skipped with a log line; the batch continues.
func (r *Runner) FetchBodies(ctx context.Context, since string) error {
	var cutoff time.Time
	if since != "" {
		var err error
		cutoff, err = time.Parse("2006-01-02", since)
		if err != nil {
			return fmt.Errorf("fetchbody: invalid start date %q: %w", since, err)
		}
	}

	metas, err := r.store.List(r.paths.BookmarkDir)
	if err != nil {
		return fmt.Errorf("fetchbody: list bookmarks: %w", err)
	}

	updated := 0
	for _, m := range metas {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.fetchOne(ctx, m.Path, cutoff); err != nil {
			if errors.Is(err, errSkipped) {
				continue
			}
			r.logger.Warn("fetchbody: skipped", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		updated++
	}

	r.logger.Info("fetchbody: done", slog.Int("updated", updated), slog.Int("seen", len(metas)))
	r.emit("fetchbody", "", "ok", fmt.Sprintf("%d updated", updated))
	return nil
}

// errSkipped marks notes that were filtered out rather than failed.
var errSkipped = errors.New("skipped")

func (r *Runner) fetchOne(ctx context.Context, path string, cutoff time.Time) error {
	data, err := r.store.Read(path)
	if err != nil {
		return err
	}

	fm, body, err := section.SplitFrontmatter(string(data))
	if err != nil {
		return err
	}

	var meta bookmarkMeta
	if err := yaml.Unmarshal([]byte(fm), &meta); err != nil {
		return fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Link == "" {
		return errSkipped
	}
	if !cutoff.IsZero() {
		created, err := time.Parse("2006-01-02", strings.TrimSpace(meta.Created))
		if err != nil || created.Before(cutoff) {
			return errSkipped
		}
	}

	r.logger.Info("fetchbody: fetching", slog.String("path", path), slog.String("url", meta.Link))

	text, err := r.fetcher.FetchBody(ctx, meta.Link)
	if err != nil {
		return err
	}

	body = section.ReplaceToEnd(body, FetchedBodyHeader, strings.TrimSpace(text))
	merged := section.JoinFrontmatter(fm, body)
	if merged == string(data) {
		return errSkipped
	}
	return r.store.Write(path, []byte(merged))
}

// FetchBodyFor fetches and merges the article body for one bookmark note,
// identified by its vault-relative path. Notes without a link, or whose
// merged body is already current, are left untouched.
func (r *Runner) FetchBodyFor(ctx context.Context, path string) error {
	if err := r.fetchOne(ctx, path, time.Time{}); err != nil {
		if errors.Is(err, errSkipped) {
			return nil
		}
		r.emit("fetchbody", path, "failed", err.Error())
		return err
	}
	r.emit("fetchbody", path, "ok", "")
	return nil
}
