package ocr

import "context"

// Mock returns a fixed page of recognized text for offline runs.
type Mock struct{}

// RecognizeText ignores the PDF and returns the canned daily-log page.
func (Mock) RecognizeText(_ context.Context, _ string) (string, error) {
	return mockPage, nil
}

const mockPage = `
#1 今日のスキャン
朝起きてご飯を食べた。
仕事が忙しかった。

#2 感情と気づき
少し疲れたけれど充実していた。

#3 感謝と自己肯定
同僚に助けてもらって感謝。
よく頑張った。

#4 明日の一歩
早く寝る。
`
