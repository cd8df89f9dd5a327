package hashing

import "errors"

var (
	// ErrEncodeFailed indicates a value chained into a consensus hasher could
	// not be Borsh-encoded.
	ErrEncodeFailed = errors.New("hashing: consensus encoding failed")
)
