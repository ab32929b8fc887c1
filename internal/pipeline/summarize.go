package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/starford/ansuz/internal/ai"
	"github.com/starford/ansuz/internal/checksum"
)

const summarizePrompt = `
あなたは優秀なライター兼情報整理のアシスタントです。
渡されたノートのコンテンツを分析し、トピックごとに要約して、指定されたJSON形式で出力してください。

## 入力情報
- source_type: %[1]s
- source_path: %[2]s
- date: %[3]s

## コンテンツ
%[4]s

## 出力要件
以下のJSON形式のみを出力してください。
` + "```json" + `
{
  "source_type": "%[1]s",
  "source_path": "%[2]s",
  "date": "%[3]s",
  "topics": [
    {
      "title": "短い日本語タイトル",
      "summary": "日本語で2〜4文の要約。",
      "tags": ["#topic/仕事"]
    }
  ]
}
` + "```" + `

注意事項:
- tagsは、コンテンツの内容に合わせて適切なものを付与してください。#topic/仕事, #topic/アイデア, #topic/振り返り など。
- topicsは複数あっても構いません。話題が変わるごとに分割してください。
- タイトルはファイル名に使用するため、簡潔にしてください。
- summaryは日本語で2〜4文程度で要約してください。
`

const fleetingTemplate = `---
tags: %s
source_type: %s
source_path: %s
created: %s
index: %d
---

# %s

%s
`

// topic is one summarized theme of a source note.
type topic struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

type summaryResult struct {
	SourceType string  `json:"source_type"`
	SourcePath string  `json:"source_path"`
	Date       string  `json:"date"`
	Topics     []topic `json:"topics"`
}

var (
	isoDateRe    = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)
	packedDateRe = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})_`)
	slugStripRe  = regexp.MustCompile(`[\\/:*?"<>|]`)
)

// Summarize processes a source note (or every note under a directory):
// the model splits the content into topics, and each topic becomes one
// fleeting note. Sources whose content checksum is already recorded in the
// index are skipped.
func (r *Runner) Summarize(ctx context.Context, relPath string) error {
	abs, err := r.store.Path(relPath)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("summarize: stat %s: %w", relPath, err)
	}

	var files []string
	if info.IsDir() {
		metas, err := r.store.List(relPath)
		if err != nil {
			return fmt.Errorf("summarize: list %s: %w", relPath, err)
		}
		for _, m := range metas {
			files = append(files, m.Path)
		}
		sort.Strings(files)
		r.logger.Info("summarize: processing directory",
			slog.String("path", relPath), slog.Int("files", len(files)))
	} else {
		files = []string{relPath}
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.summarizeOne(ctx, f); err != nil {
			r.logger.Warn("summarize: failed", slog.String("path", f), slog.String("error", err.Error()))
			r.emit("summarize", f, "failed", err.Error())
		}
	}
	return nil
}

func (r *Runner) summarizeOne(ctx context.Context, path string) error {
	data, err := r.store.Read(path)
	if err != nil {
		return err
	}
	cs := checksum.Sum(data)

	if r.db != nil {
		done, err := r.db.IsProcessed(path, cs)
		if err != nil {
			return err
		}
		if done {
			r.logger.Debug("summarize: already processed", slog.String("path", path))
			return nil
		}
	}

	sourceType, date := inferSourceMeta(path)
	prompt := fmt.Sprintf(summarizePrompt, sourceType, path, date, string(data))

	var resp string
	if jg, ok := r.gen.(ai.JSONGenerator); ok {
		resp, err = jg.GenerateJSON(ctx, prompt)
	} else {
		resp, err = r.gen.Generate(ctx, prompt)
	}
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	var result summaryResult
	if err := json.Unmarshal([]byte(ai.StripFence(resp)), &result); err != nil {
		return fmt.Errorf("decode topics: %w", err)
	}
	if result.Date != "" {
		date = result.Date
	}

	created := 0
	for i, t := range result.Topics {
		name := fmt.Sprintf("%s_%02d_%s.md", date, i+1, slugify(t.Title))
		rel := r.uniquePath(filepath.Join(r.paths.FleetingDir, name))

		tagsJSON, _ := json.Marshal(t.Tags)
		note := fmt.Sprintf(fleetingTemplate, tagsJSON, sourceType, path, date, i+1, t.Title, t.Summary)
		if err := r.store.Write(rel, []byte(note)); err != nil {
			r.logger.Warn("summarize: write failed", slog.String("path", rel), slog.String("error", err.Error()))
			continue
		}
		created++
	}

	if r.db != nil {
		if err := r.db.MarkProcessed(path, cs, "summarize"); err != nil {
			r.logger.Warn("summarize: mark processed failed", slog.String("error", err.Error()))
		}
	}

	r.logger.Info("summarize: done", slog.String("path", path), slog.Int("notes", created))
	r.emit("summarize", path, "ok", fmt.Sprintf("%d notes", created))
	return nil
}

// inferSourceMeta guesses the source type and date from path conventions:
// Voicememo exports embed an ISO date, Manual notes a packed YYYYMMDD_
// prefix.
func inferSourceMeta(path string) (sourceType, date string) {
	sourceType = "unknown"
	date = "0000-00-00"
	base := filepath.Base(path)

	switch {
	case containsSegment(path, "Voicememo"):
		sourceType = "voicememo"
		if m := isoDateRe.FindStringSubmatch(base); m != nil {
			date = m[1]
		}
	case containsSegment(path, "Manual"):
		sourceType = "manual"
		if m := packedDateRe.FindStringSubmatch(base); m != nil {
			date = m[1] + "-" + m[2] + "-" + m[3]
		}
	}
	return sourceType, date
}

func containsSegment(path, segment string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == segment {
			return true
		}
	}
	return false
}

// slugify makes a topic title filename-safe: spaces become underscores and
// characters invalid in filenames are dropped.
func slugify(title string) string {
	slug := strings.ReplaceAll(title, "　", "_")
	slug = strings.ReplaceAll(slug, " ", "_")
	return slugStripRe.ReplaceAllString(slug, "")
}

// uniquePath appends _1, _2, ... before the extension until the path is
// free.
func (r *Runner) uniquePath(rel string) string {
	if !r.store.Exists(rel) {
		return rel
	}
	ext := filepath.Ext(rel)
	stem := strings.TrimSuffix(rel, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if !r.store.Exists(candidate) {
			return candidate
		}
	}
}
