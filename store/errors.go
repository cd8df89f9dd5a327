package store

import "errors"

var (
	// ErrNotFound indicates no record exists for the output hash.
	ErrNotFound = errors.New("store: payment not found")

	// ErrDuplicate indicates a record with this output hash already exists.
	ErrDuplicate = errors.New("store: duplicate payment")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("store: required parameter is nil")

	// ErrInvalidHash indicates the output hash is not 32 bytes.
	ErrInvalidHash = errors.New("store: invalid output hash")
)
