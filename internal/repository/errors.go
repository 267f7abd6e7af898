package repository

import "errors"

var (
	// ErrNotFound no record matched the identifiers
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate a record with the same key already exists
	ErrDuplicate = errors.New("duplicate record")
)
