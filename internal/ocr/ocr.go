// Package ocr defines the scanned-page text recognition capability.
package ocr

import "context"

// Recognizer turns a scanned PDF into raw text. The text carries the
// positional anchor markers (#1..#4) consumed by the section engine.
type Recognizer interface {
	RecognizeText(ctx context.Context, pdfPath string) (string, error)
}
