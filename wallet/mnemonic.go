// Package wallet turns a BIP39 mnemonic into the Ristretto keys a scanner
// needs and keeps the seed encrypted at rest.
//
// Key hierarchy: key(branch, index) = from_uniform(H_key_manager(branch) . seed . index)
// with branches "view", "spend" and "script".
package wallet

import (
	"fmt"

	"github.com/bsv-blockchain/go-sdk/compat/bip39"
)

// Supported mnemonic lengths, as entropy bits.
const (
	Mnemonic12Words = 128
	Mnemonic24Words = 256
)

// GenerateMnemonic returns a fresh English BIP39 mnemonic carrying
// entropyBits of entropy.
func GenerateMnemonic(entropyBits int) (string, error) {
	switch entropyBits {
	case Mnemonic12Words, Mnemonic24Words:
	default:
		return "", fmt.Errorf("%w: got %d", ErrInvalidEntropy, entropyBits)
	}
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", fmt.Errorf("wallet: entropy: %w", err)
	}
	m, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("wallet: mnemonic: %w", err)
	}
	return m, nil
}

// ValidateMnemonic reports whether m is a well-formed BIP39 mnemonic with a
// valid checksum.
func ValidateMnemonic(m string) bool {
	return bip39.IsMnemonicValid(m)
}

// SeedFromMnemonic stretches m and passphrase into the 64-byte BIP39 seed.
// An empty passphrase is allowed and still yields a distinct seed from any
// non-empty one.
func SeedFromMnemonic(m, passphrase string) ([]byte, error) {
	if !ValidateMnemonic(m) {
		return nil, ErrInvalidMnemonic
	}
	seed, err := bip39.NewSeedWithErrorChecking(m, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMnemonic, err)
	}
	return seed, nil
}
