package section

import (
	"errors"
	"testing"
)

func TestSplitFrontmatter_Basic(t *testing.T) {
	fm, body, err := SplitFrontmatter("---\nlink: http://x\n---\nBody text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fm != "link: http://x\n" {
		t.Errorf("frontmatter = %q", fm)
	}
	if body != "Body text" {
		t.Errorf("body = %q", body)
	}
}

func TestSplitFrontmatter_EmptyBlock(t *testing.T) {
	fm, body, err := SplitFrontmatter("---\n---\nBody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fm != "" {
		t.Errorf("frontmatter = %q, want empty", fm)
	}
	if body != "Body" {
		t.Errorf("body = %q", body)
	}
}

func TestSplitFrontmatter_NotFrontmatter(t *testing.T) {
	cases := []string{
		"no dashes here",
		"# heading\n---\n",
		"---\nnever closed\n",
		"",
	}
	for _, doc := range cases {
		if _, _, err := SplitFrontmatter(doc); !errors.Is(err, ErrNotFrontmatter) {
			t.Errorf("%q: err = %v, want ErrNotFrontmatter", doc, err)
		}
	}
}

func TestSplitFrontmatter_CRLF(t *testing.T) {
	fm, body, err := SplitFrontmatter("---\r\nlink: http://x\r\n---\r\nBody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fm != "link: http://x\r\n" {
		t.Errorf("frontmatter = %q", fm)
	}
	if body != "Body" {
		t.Errorf("body = %q", body)
	}
}

func TestJoinFrontmatter_RoundTrip(t *testing.T) {
	doc := "---\nlink: http://x\ncreated: 2026-01-05\n---\nBody text\n"
	fm, body, err := SplitFrontmatter(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := JoinFrontmatter(fm, body); got != doc {
		t.Errorf("round trip: got %q, want %q", got, doc)
	}
}

func TestReplaceToEnd_Appends(t *testing.T) {
	got := ReplaceToEnd("Some notes\n", "## 本文（自動取得）", "article text")
	want := "Some notes\n\n## 本文（自動取得）\narticle text\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReplaceToEnd_ReplacesToEndOfBody(t *testing.T) {
	body := "Notes\n\n## 本文（自動取得）\nstale text\nmore stale\n"
	got := ReplaceToEnd(body, "## 本文（自動取得）", "fresh")
	want := "Notes\n\n## 本文（自動取得）\nfresh\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReplaceToEnd_Idempotent(t *testing.T) {
	once := ReplaceToEnd("Notes\n", "## 本文（自動取得）", "text")
	twice := ReplaceToEnd(once, "## 本文（自動取得）", "text")
	if once != twice {
		t.Errorf("second apply changed the body:\n%q\n%q", once, twice)
	}
}
