// Package apperr holds sentinel errors shared across service layers.
package apperr

import "errors"

var ErrNotFound = errors.New("not found")
