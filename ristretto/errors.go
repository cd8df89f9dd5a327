package ristretto

import "errors"

var (
	// ErrInvalidEncoding indicates a 32-byte string that is not the canonical
	// encoding of any group element.
	ErrInvalidEncoding = errors.New("ristretto: invalid element encoding")

	// ErrInvalidLength indicates an input of the wrong size.
	ErrInvalidLength = errors.New("ristretto: invalid input length")
)
