// Package repository defines error types that are reused across the data
// access layer.  These sentinel values allow higher layers such as the
// service and handlers to distinguish between different failure scenarios
// without inspecting driver-specific errors.
package repository

import "errors"

// ErrUserNotFound is returned when no user document matches the requested
// id or username.  Handlers translate this into an HTTP 404 (or 400 on the
// login path, where the reference contract uses 400).
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameTaken is returned when an insert would violate the unique
// username index.  Handlers translate this into an HTTP 400.
var ErrUsernameTaken = errors.New("username already exists")
