// Package storage defines the vault file-system abstraction.
package storage

import "github.com/starford/ansuz/internal/models"

// Provider is the interface for vault file operations. All paths are
// relative to the vault root.
type Provider interface {
	// List walks dir and returns metadata for every .md note under it.
	List(dir string) ([]models.NoteMetadata, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
	// Move renames oldPath to newPath, creating target directories.
	Move(oldPath, newPath string) error
	// Path resolves a relative path to its absolute location on disk, for
	// handing files to external tools. The file need not exist.
	Path(rel string) (string, error)
	// Exists reports whether a regular file is present at path.
	Exists(path string) bool
}
