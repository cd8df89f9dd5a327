package transaction

import "errors"

var (
	// ErrMalformedOutput indicates bytes that do not decode to a transaction output.
	ErrMalformedOutput = errors.New("transaction: malformed output")

	// ErrAmountOverflow indicates arithmetic that left the u64 range.
	ErrAmountOverflow = errors.New("transaction: amount overflow")
)
