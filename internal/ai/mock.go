package ai

import (
	"context"
	"strings"
)

// Mock returns canned responses for offline runs, keyed on distinctive
// phrases of the pipeline prompts.
type Mock struct{}

// Generate picks the canned response matching the prompt.
func (Mock) Generate(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "Kindle本のハイライト"):
		return `{"theme": "健康"}`, nil
	case strings.Contains(prompt, "行動レベルに落とし込むコーチ"):
		return mockCoaching, nil
	case strings.Contains(prompt, "1週間分の振り返り"):
		return mockWeekly, nil
	case strings.Contains(prompt, "トピックごとに要約"):
		return mockTopics, nil
	}
	return "Mock response", nil
}

// GenerateJSON delegates to Generate; the canned answers are already JSON
// where JSON is expected.
func (m Mock) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return m.Generate(ctx, prompt)
}

const mockCoaching = `## 改善ポイント（AIコーチ）
- もっと早く寝るべきでした。

## 明日のアクション（AIコーチ）
- [ ] 朝7時に起きる
- [ ] 水を一杯飲む
- [ ] ストレッチする`

const mockWeekly = `## 今週のハイライト
- プロジェクトA完了
- 家族で公園に行った
- 本を1冊読了

## 繰り返し出てきたパターン
- 夜更かし気味
- 運動不足

## プロジェクト別の振り返り
- Kindle本: 1冊読了
- 家づくり: 間取り検討中
- 健康: 運動不足気味
- 子育て: 子供と遊べた

## 来週のフォーカス
- テーマ: 早寝早起き

## 来週の行動（AIコーチ）
- [ ] 22時に布団に入る
- [ ] スマホをリビングに置く
- [ ] 朝散歩する`

const mockTopics = `{
  "source_type": "manual",
  "source_path": "mock.md",
  "date": "2026-01-01",
  "topics": [
    {
      "title": "モックトピック",
      "summary": "モック生成の要約です。テスト実行用の固定文面です。",
      "tags": ["#topic/仕事"]
    }
  ]
}`
