// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking coordinator and handlers to distinguish between different
// failure scenarios without inspecting SQL errors directly.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because of
// conflicting state, such as a conditional balance debit matching no
// row. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
