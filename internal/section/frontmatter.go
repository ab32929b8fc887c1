package section

import (
	"errors"
	"strings"
)

// fmDelimiter is the literal content of a frontmatter delimiter line.
const fmDelimiter = "---"

// ErrNotFrontmatter reports a document that lacks the three-part structure
// of an opening "---" line, a key-value block, and a closing "---" line.
var ErrNotFrontmatter = errors.New("section: not a frontmatter document")

// SplitFrontmatter separates a document into its frontmatter block and body.
// The document must begin with a "---" line and contain a later line equal
// to "---" closing the block. Anything else fails with ErrNotFrontmatter;
// ill-formed documents are rejected whole, never partially parsed.
//
// The returned frontmatter keeps its trailing newline so that
// JoinFrontmatter reproduces the original bytes.
func SplitFrontmatter(doc string) (frontmatter, body string, err error) {
	first, rest, found := strings.Cut(doc, "\n")
	if !found || strings.TrimRight(first, "\r") != fmDelimiter {
		return "", "", ErrNotFrontmatter
	}

	off := 0
	for {
		line := rest[off:]
		next := len(rest)
		if nl := strings.IndexByte(line, '\n'); nl >= 0 {
			line = line[:nl]
			next = off + nl + 1
		}
		if strings.TrimRight(line, "\r") == fmDelimiter {
			return rest[:off], rest[next:], nil
		}
		if next == len(rest) {
			return "", "", ErrNotFrontmatter
		}
		off = next
	}
}

// JoinFrontmatter reassembles a document from the parts returned by
// SplitFrontmatter, restoring the two delimiter lines.
func JoinFrontmatter(frontmatter, body string) string {
	if frontmatter != "" && !strings.HasSuffix(frontmatter, "\n") {
		frontmatter += "\n"
	}
	return fmDelimiter + "\n" + frontmatter + fmDelimiter + "\n" + body
}

// ReplaceToEnd replaces everything from the marker header line to the end of
// body with the marker followed by content, or appends the section when the
// marker is absent. Unlike Upsert there is no "next header" boundary: bodies
// carrying the marker hold nothing else after it, so the section always
// consumes the rest of the document body.
func ReplaceToEnd(body, marker, content string) string {
	if at := indexAtLineStart(body, marker); at >= 0 {
		body = body[:at]
	}
	body = strings.TrimRight(body, "\n")
	return body + "\n\n" + marker + "\n" + content + "\n"
}
