// Package models defines the shared domain types for Ansuz.
package models

import "time"

// NoteMetadata is a lightweight representation of a vault file returned by
// list operations.
type NoteMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PipelineEvent describes one pipeline outcome, broadcast over SSE in serve
// mode.
type PipelineEvent struct {
	Pipeline string `json:"pipeline"`
	Path     string `json:"path,omitempty"`
	Status   string `json:"status"`
	Detail   string `json:"detail,omitempty"`
}
