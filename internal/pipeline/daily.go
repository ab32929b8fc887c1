package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"time"

	"github.com/starford/ansuz/internal/ai"
	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/section"
)

// Section headers of a daily note. The first four mirror the paper daily
// log; the last two are produced by the coaching response.
const (
	HeaderScan         = "## 今日のスキャン"
	HeaderEmotion      = "## 感情と気づき"
	HeaderGratitude    = "## 感謝と自己肯定"
	HeaderStep         = "## 明日の一歩"
	HeaderCoachPoints  = "## 改善ポイント（AIコーチ）"
	HeaderCoachActions = "## 明日のアクション（AIコーチ）"
)

// The scanned page carries #1..#4 markers in front of each handwritten
// block. OCR noise can insert spaces between the hash and the digit.
var dailyAnchors = []section.Anchor{
	{Label: "scan", Pattern: regexp.MustCompile(`#\s*1`)},
	{Label: "emotion", Pattern: regexp.MustCompile(`#\s*2`)},
	{Label: "gratitude", Pattern: regexp.MustCompile(`#\s*3`)},
	{Label: "step", Pattern: regexp.MustCompile(`#\s*4`)},
}

const coachingPrompt = `
あなたは行動レベルに落とし込むコーチです。
以下は、ある1日の振り返りメモです。

- 「今日のスキャン」（その日の出来事・事実）
- 「感情と気づき」
- 「感謝と自己肯定」

これらを読んで、次の形式でMarkdownを出力してください。

1. その日の反省から読み取れる「改善ポイント」を1〜2個だけ、短く箇条書き。
2. 明日実行できる具体的な行動を3つまで。
   - それぞれ5〜15分で終わる小さな行動にすること。
   - チェックボックス付きのMarkdownリスト形式にすること。
3. 自分を責める表現は避け、「こうするともっと良くなりそう」というトーンにすること。

出力フォーマット:

` + "```markdown" + `
## 改善ポイント（AIコーチ）
- ...

## 明日のアクション（AIコーチ）
- [ ] ...
- [ ] ...
- [ ] ...
` + "```" + `
上記フォーマット以外の文章は一切書かないでください。

以下が今日のメモです：

[今日のスキャン]
%s

[感情と気づき]
%s

[感謝と自己肯定]
%s
`

// RunDaily processes the scanned daily log for one date: OCR, anchor
// segmentation, coaching generation, and an idempotent merge into the dated
// daily note. A missing PDF fails this operation only.
func (r *Runner) RunDaily(ctx context.Context, date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("daily: invalid date %q: %w", date, err)
	}

	pdfRel := filepath.Join(r.paths.DailyPDFDir, date+"_daily_filled.pdf")
	if !r.store.Exists(pdfRel) {
		r.emit("daily", date, "failed", "pdf not found")
		return fmt.Errorf("daily: pdf %s: %w", pdfRel, apperr.ErrNotFound)
	}
	pdfAbs, err := r.store.Path(pdfRel)
	if err != nil {
		return fmt.Errorf("daily: resolve pdf: %w", err)
	}

	r.logger.Info("daily: processing pdf", slog.String("path", pdfRel))

	text, err := r.reader.RecognizeText(ctx, pdfAbs)
	if err != nil {
		r.emit("daily", date, "failed", "ocr failed")
		return fmt.Errorf("daily: ocr: %w", err)
	}

	segs := section.Segments(text, dailyAnchors)
	scan := section.SegmentBody(segs["scan"])
	emotion := section.SegmentBody(segs["emotion"])
	gratitude := section.SegmentBody(segs["gratitude"])
	step := section.SegmentBody(segs["step"])

	// Coaching failures degrade to a note without AI sections; the OCR
	// content still lands.
	var coachBlock string
	prompt := fmt.Sprintf(coachingPrompt, scan, emotion, gratitude)
	resp, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		r.logger.Warn("daily: coaching generation failed", slog.String("error", err.Error()))
	} else {
		coachBlock = ai.StripFence(resp)
	}

	noteRel := filepath.Join(r.paths.DailyDir, date+".md")
	var doc string
	if data, err := r.store.Read(noteRel); err == nil {
		doc = string(data)
	} else {
		doc = fmt.Sprintf("# %s Daily Note\n", date)
	}

	doc = section.UpsertAll(doc, []section.Entry{
		{Header: HeaderScan, Body: scan},
		{Header: HeaderEmotion, Body: emotion},
		{Header: HeaderGratitude, Body: gratitude},
		{Header: HeaderStep, Body: step},
	})
	doc = section.UpsertAll(doc, section.SplitBlock(coachBlock, []string{HeaderCoachPoints, HeaderCoachActions}))

	if err := r.store.Write(noteRel, []byte(doc)); err != nil {
		r.emit("daily", date, "failed", "write failed")
		return fmt.Errorf("daily: write note: %w", err)
	}

	r.logger.Info("daily: note updated", slog.String("path", noteRel))
	r.emit("daily", date, "ok", noteRel)
	return nil
}
