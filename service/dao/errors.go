package dao

import "errors"

var (
	// ErrNotFound is returned when no record is stored under the id.
	ErrNotFound = errors.New("dao: record not found")

	// ErrInvalidID is returned for an empty id.
	ErrInvalidID = errors.New("dao: invalid record id")

	ErrNilEntity = errors.New("dao: nil record")
)
