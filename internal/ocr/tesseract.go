package ocr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Tesseract shells out to pdftoppm and tesseract: pages are rasterized to
// PNG in a temporary directory, then recognized one by one.
type Tesseract struct {
	Lang string // tesseract language model, defaults to "jpn"
}

// RecognizeText OCRs every page of the PDF and concatenates the results.
func (t *Tesseract) RecognizeText(ctx context.Context, pdfPath string) (string, error) {
	lang := t.Lang
	if lang == "" {
		lang = "jpn"
	}

	tmp, err := os.MkdirTemp("", "ansuz-ocr-*")
	if err != nil {
		return "", fmt.Errorf("ocr: temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	prefix := filepath.Join(tmp, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm", "-r", "300", "-png", pdfPath, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ocr: rasterize %s: %w: %s", pdfPath, err, strings.TrimSpace(string(out)))
	}

	pages, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return "", fmt.Errorf("ocr: glob pages: %w", err)
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("ocr: no pages rasterized from %s", pdfPath)
	}
	sort.Strings(pages)

	var b strings.Builder
	for _, page := range pages {
		cmd := exec.CommandContext(ctx, "tesseract", page, "stdout", "-l", lang)
		out, err := cmd.Output()
		if err != nil {
			return "", fmt.Errorf("ocr: recognize %s: %w", filepath.Base(page), err)
		}
		b.Write(out)
		b.WriteByte('\n')
	}
	return b.String(), nil
}
