package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/starford/ansuz/internal/ai"
	"github.com/starford/ansuz/internal/isoweek"
	"github.com/starford/ansuz/internal/section"
)

const weeklyPrompt = `
あなたは1週間分の振り返りを手伝うコーチです。
以下は、ある1週間分のデイリーノートから抜き出したテキストです。

- 各日の「今日の出来事・反省」
- 各日の「明日のアクション（AIコーチ）」

これらを読んで、次の形式でMarkdownを出力してください。

1. 今週のハイライト（印象的な出来事や前進したこと）を3〜5個。
2. 繰り返し出てきたパターン（感情・行動・課題など）を2〜4個。
3. 次の4つのプロジェクト/領域ごとに、進み具合や気づきを一言ずつまとめること。
   - Kindle本
   - 家づくり
   - 健康
   - 子育て
   （何もなければ「特になし」と書いてください）
4. 来週のフォーカス（テーマ）を1つだけ決めてください。
5. そのテーマを進めるための具体的な行動を3つまで、チェックボックス付きMarkdownリストで提案してください。
   - いずれも30分以内でできる行動レベルにしてください。

出力フォーマット:

` + "```markdown" + `
## 今週のハイライト
- ...

## 繰り返し出てきたパターン
- ...

## プロジェクト別の振り返り
- Kindle本: ...
- 家づくり: ...
- 健康: ...
- 子育て: ...

## 来週のフォーカス
- テーマ: ...

## 来週の行動（AIコーチ）
- [ ] ...
- [ ] ...
- [ ] ...
` + "```" + `
上記フォーマット以外の文章は一切書かないでください。

以下が1週間分のテキストです：

%s
`

// RunWeekly generates the review note for one ISO week from the week's
// daily notes.
func (r *Runner) RunWeekly(ctx context.Context, weekID string) error {
	rng, err := isoweek.Resolve(weekID)
	if err != nil {
		r.emit("weekly", weekID, "failed", "invalid week")
		return fmt.Errorf("weekly: %w", err)
	}

	r.logger.Info("weekly: generating review",
		slog.String("week", weekID),
		slog.String("from", rng.Monday.Format("2006-01-02")),
		slog.String("to", rng.Sunday.Format("2006-01-02")))

	corpus := r.weeklyCorpus(rng)
	if strings.TrimSpace(corpus) == "" {
		r.emit("weekly", weekID, "failed", "no daily notes")
		return fmt.Errorf("weekly: no daily notes found for %s", weekID)
	}

	resp, err := r.gen.Generate(ctx, fmt.Sprintf(weeklyPrompt, corpus))
	if err != nil {
		r.emit("weekly", weekID, "failed", "generation failed")
		return fmt.Errorf("weekly: generate: %w", err)
	}
	review := ai.StripFence(resp)

	outRel := filepath.Join(r.paths.WeeklyDir, weekID+"_Weekly_Review.md")
	doc := fmt.Sprintf("# %s Weekly Review\n\n%s\n", weekID, review)
	if err := r.store.Write(outRel, []byte(doc)); err != nil {
		r.emit("weekly", weekID, "failed", "write failed")
		return fmt.Errorf("weekly: write review: %w", err)
	}

	r.logger.Info("weekly: review created", slog.String("path", outRel))
	r.emit("weekly", weekID, "ok", outRel)
	return nil
}

// weeklyCorpus concatenates the events/reflection and next-day action
// sections of every existing daily note in the range, Monday to Sunday,
// each under a date-stamped separator line. Missing notes contribute
// nothing.
func (r *Runner) weeklyCorpus(rng isoweek.Range) string {
	var b strings.Builder
	for _, day := range rng.Dates() {
		date := day.Format("2006-01-02")
		rel := filepath.Join(r.paths.DailyDir, date+".md")
		data, err := r.store.Read(rel)
		if err != nil {
			continue
		}
		doc := string(data)

		b.WriteString("--- Date: " + date + " ---\n")
		if scan := section.Extract(doc, HeaderScan); scan != "" {
			b.WriteString("[今日の出来事・反省]\n" + scan + "\n\n")
		}
		if actions := section.Extract(doc, HeaderCoachActions); actions != "" {
			b.WriteString("[明日のアクション（AIコーチ）]\n" + actions + "\n\n")
		}
	}
	return b.String()
}
