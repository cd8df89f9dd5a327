package keys

import "errors"

var (
	// ErrInvalidPrivateKey indicates bytes that are not a canonical 32-byte scalar.
	ErrInvalidPrivateKey = errors.New("keys: invalid private key")

	// ErrInvalidPublicKey indicates bytes that are not a canonical group element.
	ErrInvalidPublicKey = errors.New("keys: invalid public key")

	// ErrInvalidCommitment indicates bytes that are not a canonical commitment.
	ErrInvalidCommitment = errors.New("keys: invalid commitment")

	// ErrInvalidUniformBytes indicates uniform input of the wrong length.
	ErrInvalidUniformBytes = errors.New("keys: uniform input must be 64 bytes")

	// ErrRandomSource indicates the random source failed or produced a zero key.
	ErrRandomSource = errors.New("keys: random source failure")
)
