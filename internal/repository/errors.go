// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting store diagnostics.
package repository

import "errors"

// ErrNotFound is returned when a by-id or by-key lookup matches no row.
// Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the acting email does not match the
// owning field of the record being mutated. Handlers translate this into
// an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")
