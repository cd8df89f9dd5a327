package scanner

import (
	"fmt"

	"github.com/bitfsorg/tariscan-go/keys"
)

// KeyMaterial is the wallet key material a scan runs with. It is either
// SoftwareKeys or LedgerKeys.
type KeyMaterial interface {
	validate() error
}

// SoftwareKeys is a software wallet holding its secret key directly. The same
// key serves as view and spend key. KnownScriptKeys are the private keys of
// plain one-sided script public keys the wallet has handed out.
type SoftwareKeys struct {
	Secret          *keys.PrivateKey
	KnownScriptKeys []*keys.PrivateKey
}

func (k SoftwareKeys) validate() error {
	if k.Secret == nil {
		return fmt.Errorf("%w: wallet secret key is nil", ErrInvalidInput)
	}
	if k.Secret.IsZero() {
		return fmt.Errorf("%w: wallet secret key is zero", ErrInvalidInput)
	}
	for i, sk := range k.KnownScriptKeys {
		if sk == nil || sk.IsZero() {
			return fmt.Errorf("%w: known script key %d is nil or zero", ErrInvalidInput, i)
		}
	}
	return nil
}

// LedgerKeys is a hardware wallet that exports only its view key and public
// spend key.
type LedgerKeys struct {
	View        *keys.PrivateKey
	SpendPublic *keys.PublicKey
}

func (k LedgerKeys) validate() error {
	if k.View == nil {
		return fmt.Errorf("%w: view key is nil", ErrInvalidInput)
	}
	if k.View.IsZero() {
		return fmt.Errorf("%w: view key is zero", ErrInvalidInput)
	}
	if k.SpendPublic == nil {
		return fmt.Errorf("%w: spend public key is nil", ErrInvalidInput)
	}
	if k.SpendPublic.IsIdentity() {
		return fmt.Errorf("%w: spend public key is the identity", ErrInvalidInput)
	}
	return nil
}
