package section

import "strings"

// headerMarker is the two-character sequence that opens a section header line.
const headerMarker = "## "

// Span is a half-open [Start, End) byte range of a section body.
type Span struct {
	Start int
	End   int
}

// Locate finds header at the start of a line and returns the span of its
// body: from just after the header line's newline up to the start of the
// next headerMarker line, or the end of the document. The match is exact
// (case- and whitespace-sensitive); ok is false when the header does not
// open any line.
func Locate(doc, header string) (Span, bool) {
	at := indexAtLineStart(doc, header)
	if at < 0 {
		return Span{}, false
	}

	start := at + len(header)
	if nl := strings.IndexByte(doc[start:], '\n'); nl >= 0 {
		start += nl + 1
	} else {
		// Header line closes the document; the body span is empty.
		start = len(doc)
	}

	end := len(doc)
	if next := indexAtLineStart(doc[start:], headerMarker); next >= 0 {
		end = start + next
	}
	return Span{Start: start, End: end}, true
}

// Extract returns the trimmed body of header's section, or "" when the
// header is absent. Absence is not an error.
func Extract(doc, header string) string {
	sp, ok := Locate(doc, header)
	if !ok {
		return ""
	}
	return strings.TrimSpace(doc[sp.Start:sp.End])
}

// Upsert replaces the body of header's section with body, or appends a new
// section at the end of the document when the header is absent. Bytes
// outside the replaced span (or before the appended suffix) are preserved
// untouched, and applying the same header/body pair twice yields a
// byte-identical document.
//
// Headers used in one merge pass must not be prefixes of each other; that
// contract is the caller's.
func Upsert(doc, header, body string) string {
	sp, ok := Locate(doc, header)
	if !ok {
		return doc + "\n\n" + header + "\n" + body + "\n"
	}
	prefix := doc[:sp.Start]
	if sp.Start == len(doc) && !strings.HasSuffix(prefix, "\n") {
		// Header line closes the document without a newline; terminate it
		// before the body so the header stays intact.
		prefix += "\n"
	}
	return prefix + body + "\n" + doc[sp.End:]
}

// Entry is one header/body pair of a batch upsert.
type Entry struct {
	Header string
	Body   string
}

// UpsertAll applies Upsert for each entry in order against the evolving
// document. Replacements target disjoint spans, so their relative order does
// not matter; entry order decides only where freshly appended sections land.
func UpsertAll(doc string, entries []Entry) string {
	for _, e := range entries {
		doc = Upsert(doc, e.Header, e.Body)
	}
	return doc
}

// SplitBlock splits one generated block containing several sections into
// per-header entries, scanning line by line: a line whose trimmed content
// exactly equals one of headers opens that header's body, and following
// lines accumulate into it until the next recognized header or the end of
// the block. Text before the first recognized header is discarded, and
// headers never seen in the block are omitted from the result.
func SplitBlock(block string, headers []string) []Entry {
	known := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		known[h] = struct{}{}
	}

	var entries []Entry
	current := -1
	var buf []string

	flush := func() {
		if current >= 0 {
			entries[current].Body = strings.TrimSpace(strings.Join(buf, "\n"))
		}
		buf = buf[:0]
	}

	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		if _, ok := known[trimmed]; ok {
			flush()
			entries = append(entries, Entry{Header: trimmed})
			current = len(entries) - 1
			continue
		}
		if current >= 0 {
			buf = append(buf, line)
		}
	}
	flush()
	return entries
}

// indexAtLineStart returns the offset of the first occurrence of sub that
// begins a line of s, or -1. An explicit scan rather than a regex keeps the
// "first match wins" rule independent of pattern-engine semantics.
func indexAtLineStart(s, sub string) int {
	off := 0
	for {
		i := strings.Index(s[off:], sub)
		if i < 0 {
			return -1
		}
		at := off + i
		if at == 0 || s[at-1] == '\n' {
			return at
		}
		off = at + 1
	}
}
