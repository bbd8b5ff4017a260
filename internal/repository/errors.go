// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrUserExists indicates that a registration hit the unique
// username constraint, while ErrMovieNotFound signals that an update
// targeted an id with no matching document.
package repository

import "errors"

// ErrUserExists is returned when an insert collides with the unique
// username constraint. Handlers should translate this into an HTTP 400
// response with the "User already exists" body.
var ErrUserExists = errors.New("user already exists")

// ErrMovieNotFound is returned when a read or update targets a movie id
// with no matching row. Handlers should translate this into an HTTP 404
// response.
var ErrMovieNotFound = errors.New("movie not found")
