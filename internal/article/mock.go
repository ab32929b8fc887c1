package article

import "context"

// Mock returns a fixed body for offline runs.
type Mock struct{}

// FetchBody ignores the URL and returns canned article text.
func (Mock) FetchBody(_ context.Context, _ string) (string, error) {
	return "これは記事の本文です。\n自動取得された想定のテキストです。", nil
}
