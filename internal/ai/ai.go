// Package ai defines the generative-text capability consumed by the vault
// pipelines, with a Gemini-backed implementation and an offline mock.
package ai

import (
	"context"
	"strings"
)

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// JSONGenerator is implemented by generators that can request a JSON
// response from the model instead of free text.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// StripFence removes a wrapping fenced code block from a model response.
// Both the bare (```) and language-tagged (```markdown, ```json) introducer
// forms are recognized; a response without a leading fence comes back
// trimmed but otherwise untouched.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	rest := s[3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	} else {
		rest = ""
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSuffix(rest, "```")
	return strings.TrimSpace(rest)
}
