package wallet

import "errors"

var (
	ErrInvalidMnemonic = errors.New("wallet: invalid BIP39 mnemonic")
	ErrInvalidEntropy  = errors.New("wallet: entropy bits must be 128 or 256")
	ErrInvalidSeed     = errors.New("wallet: invalid seed")

	// ErrDecryptionFailed covers both a wrong password and a tampered seed file.
	ErrDecryptionFailed = errors.New("wallet: seed decryption failed")

	// ErrUnsupportedVersion indicates a seed file written by a newer format.
	ErrUnsupportedVersion = errors.New("wallet: unsupported seed file version")

	// ErrInvalidKDFParams indicates Argon2id parameters outside the accepted range.
	ErrInvalidKDFParams = errors.New("wallet: invalid KDF parameters")

	ErrDerivationFailed = errors.New("wallet: key derivation failed")
	ErrWalletZeroized   = errors.New("wallet: wallet has been zeroized")
)
