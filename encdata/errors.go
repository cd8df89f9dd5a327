package encdata

import "errors"

var (
	// ErrDecryptionFailed indicates encrypted data that did not authenticate
	// or did not parse. Every failure mode maps to this one error so a caller
	// cannot learn why decryption failed.
	ErrDecryptionFailed = errors.New("encdata: decryption failed")

	// ErrPaymentIDTooLong indicates a payment id above MaxPaymentIDSize bytes.
	ErrPaymentIDTooLong = errors.New("encdata: payment id too long")

	// ErrRandomSource indicates the nonce could not be read.
	ErrRandomSource = errors.New("encdata: random source failure")
)
