package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/starford/ansuz/internal/ai"
)

// BookInboxDir is the drop folder under the books directory.
const BookInboxDir = "_inbox"

// fallbackTheme is used when the classification response cannot be decoded
// or names an unknown theme.
const fallbackTheme = "その他"

var classifyThemes = []string{"健康", "家づくり", "子育て", "仕事", "お金", fallbackTheme}

// classifyExtractRunes bounds how much of a highlight note is sent to the
// model.
const classifyExtractRunes = 2000

const classifyPrompt = `
あなたは読書メモ整理アシスタントです。
以下は、あるKindle本のハイライトノートの一部です（タイトルといくつかの抜粋を含みます）。
この本が主に扱っているテーマを、次の候補から最も近いものを1つだけ選んでください。

- 健康
- 家づくり
- 子育て
- 仕事
- お金
- その他

出力は次のJSON形式のみとし、余計な説明は一切書かないでください。

` + "```json" + `
{"theme": "健康"}
` + "```" + `
のように、"theme" に上記の候補のいずれか1つを入れてください。

以下がハイライトノートです：
%s
`

// ClassifyBooks asks the model for a theme per inbox note and moves each
// note into its theme folder. Undecodable responses fall back to the
// catch-all theme; per-file failures are logged and the batch continues.
func (r *Runner) ClassifyBooks(ctx context.Context) error {
	inbox := filepath.Join(r.paths.BooksDir, BookInboxDir)
	metas, err := r.store.List(inbox)
	if err != nil {
		return fmt.Errorf("classify: list inbox: %w", err)
	}
	if len(metas) == 0 {
		r.logger.Info("classify: inbox empty")
		return nil
	}

	moved := 0
	for _, m := range metas {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.classifyOne(ctx, m.Path); err != nil {
			r.logger.Warn("classify: failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			r.emit("classify", m.Path, "failed", err.Error())
			continue
		}
		moved++
	}

	r.logger.Info("classify: done", slog.Int("moved", moved), slog.Int("seen", len(metas)))
	return nil
}

// ClassifyNote classifies a single inbox note, identified by its
// vault-relative path.
func (r *Runner) ClassifyNote(ctx context.Context, path string) error {
	if err := r.classifyOne(ctx, path); err != nil {
		r.emit("classify", path, "failed", err.Error())
		return err
	}
	return nil
}

func (r *Runner) classifyOne(ctx context.Context, path string) error {
	data, err := r.store.Read(path)
	if err != nil {
		return err
	}

	extract := []rune(string(data))
	if len(extract) > classifyExtractRunes {
		extract = extract[:classifyExtractRunes]
	}
	prompt := fmt.Sprintf(classifyPrompt, string(extract))

	var resp string
	if jg, ok := r.gen.(ai.JSONGenerator); ok {
		resp, err = jg.GenerateJSON(ctx, prompt)
	} else {
		resp, err = r.gen.Generate(ctx, prompt)
	}
	if err != nil {
		return fmt.Errorf("classify: generate: %w", err)
	}

	theme := decodeTheme(resp)

	target := filepath.Join(r.paths.BooksDir, "Kindle_"+theme, filepath.Base(path))
	if err := r.store.Move(path, target); err != nil {
		return err
	}

	r.logger.Info("classify: moved",
		slog.String("path", path),
		slog.String("theme", theme))
	r.emit("classify", path, "ok", theme)
	return nil
}

// decodeTheme extracts the theme from a classification response, falling
// back to the catch-all on decode failures or unknown themes.
func decodeTheme(resp string) string {
	var out struct {
		Theme string `json:"theme"`
	}
	if err := json.Unmarshal([]byte(ai.StripFence(resp)), &out); err != nil {
		return fallbackTheme
	}
	for _, t := range classifyThemes {
		if out.Theme == t {
			return out.Theme
		}
	}
	return fallbackTheme
}
