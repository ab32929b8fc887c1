// Package section implements the anchor and merge engine underneath every
// vault pipeline: locating labeled regions in raw OCR text, and header-scoped
// insert-or-replace updates against markdown documents.
package section

import (
	"regexp"
	"sort"
	"strings"
)

// Anchor is a labeled positional marker. Only the first match of Pattern
// counts; later matches of the same pattern are ignored.
type Anchor struct {
	Label   string
	Pattern *regexp.Regexp
}

// Segments splits text into one contiguous span per anchor. Each present
// anchor owns the text from its match offset up to the offset of the next
// present anchor in ascending order, or to the end of the text when it is
// last. Anchors whose pattern never matches map to an empty span, and a text
// with no matches at all yields every span empty.
func Segments(text string, anchors []Anchor) map[string]string {
	type hit struct {
		label  string
		offset int
	}

	out := make(map[string]string, len(anchors))
	var hits []hit
	for _, a := range anchors {
		out[a.Label] = ""
		loc := a.Pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		hits = append(hits, hit{label: a.Label, offset: loc[0]})
	}

	// Spans follow match position, not the order labels were requested in.
	sort.Slice(hits, func(i, j int) bool { return hits[i].offset < hits[j].offset })

	for i, h := range hits {
		end := len(text)
		if i+1 < len(hits) {
			end = hits[i+1].offset
		}
		out[h.label] = text[h.offset:end]
	}
	return out
}

// SegmentBody strips the anchor line from a segment and trims surrounding
// blank lines. A segment without a newline (just the anchor, or nothing)
// yields an empty body.
func SegmentBody(segment string) string {
	idx := strings.IndexByte(segment, '\n')
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(segment[idx+1:])
}
