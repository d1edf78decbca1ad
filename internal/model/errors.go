package model

import "errors"

var (
	// ErrNotFound indicates a link or tag was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidURL indicates an invalid URL was provided.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrInvalidID indicates an identifier is not in a recognised format.
	ErrInvalidID = errors.New("invalid ID format")

	// ErrMalformedImport indicates import text is not a valid snapshot.
	ErrMalformedImport = errors.New("malformed import")

	// ErrStorageUnavailable indicates the key-value store could not be read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
