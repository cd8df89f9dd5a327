package onesided

import "errors"

var (
	// ErrInvalidRecipient indicates a recipient key that is the identity.
	ErrInvalidRecipient = errors.New("onesided: invalid recipient key")

	// ErrValueTooLarge indicates a value above the total supply.
	ErrValueTooLarge = errors.New("onesided: value exceeds max supply")
)
