package scanner

import "errors"

var (
	// ErrInvalidInput indicates malformed key material or an output that
	// cannot be scanned at all: nil values, zero secrets, and identity or
	// undecodable sender offset keys or stealth nonces. It is distinct from
	// "not ours", which is reported as a nil payment with a nil error.
	ErrInvalidInput = errors.New("scanner: invalid input")
)
