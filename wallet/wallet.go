package wallet

import (
	"fmt"

	"github.com/bitfsorg/tariscan-go/keys"
	"github.com/bitfsorg/tariscan-go/scanner"
)

// Wallet holds the view and spend keys derived from a seed.
type Wallet struct {
	km    *KeyManager
	view  *keys.PrivateKey
	spend *keys.PrivateKey
}

// KeyPair is the wallet's long-lived key pair.
type KeyPair struct {
	View  *keys.PrivateKey
	Spend *keys.PrivateKey
}

// NewWallet derives the wallet keys from a BIP39 seed.
func NewWallet(seed []byte) (*Wallet, error) {
	km, err := NewKeyManager(seed)
	if err != nil {
		return nil, err
	}
	view, err := km.DeriveKey(BranchView, 0)
	if err != nil {
		km.Zeroize()
		return nil, err
	}
	spend, err := km.DeriveKey(BranchSpend, 0)
	if err != nil {
		view.Zeroize()
		km.Zeroize()
		return nil, err
	}
	return &Wallet{km: km, view: view, spend: spend}, nil
}

// Keys returns the view and spend keys. The keys are shared with the wallet
// and are wiped by Zeroize.
func (w *Wallet) Keys() KeyPair {
	return KeyPair{View: w.view, Spend: w.spend}
}

// ViewPublicKey returns the public view key.
func (w *Wallet) ViewPublicKey() *keys.PublicKey {
	return w.view.PublicKey()
}

// SpendPublicKey returns the public spend key.
func (w *Wallet) SpendPublicKey() *keys.PublicKey {
	return w.spend.PublicKey()
}

// ScriptKey derives the plain one-sided script key at index.
func (w *Wallet) ScriptKey(index uint64) (*keys.PrivateKey, error) {
	return w.km.DeriveKey(BranchScript, index)
}

// SoftwareKeyMaterial returns key material for a software scan: the spend
// key as wallet secret and the first n script keys as known keys.
func (w *Wallet) SoftwareKeyMaterial(n int) (scanner.SoftwareKeys, error) {
	if w.km.seed == nil {
		return scanner.SoftwareKeys{}, ErrWalletZeroized
	}
	known := make([]*keys.PrivateKey, 0, n)
	for i := 0; i < n; i++ {
		k, err := w.ScriptKey(uint64(i))
		if err != nil {
			for _, prev := range known {
				prev.Zeroize()
			}
			return scanner.SoftwareKeys{}, fmt.Errorf("script key %d: %w", i, err)
		}
		known = append(known, k)
	}
	return scanner.SoftwareKeys{Secret: w.spend, KnownScriptKeys: known}, nil
}

// LedgerKeyMaterial returns the view key and public spend key, the only
// material a hardware wallet exports.
func (w *Wallet) LedgerKeyMaterial() (scanner.LedgerKeys, error) {
	if w.km.seed == nil {
		return scanner.LedgerKeys{}, ErrWalletZeroized
	}
	return scanner.LedgerKeys{View: w.view, SpendPublic: w.spend.PublicKey()}, nil
}

// Zeroize wipes the seed and every key the wallet holds.
func (w *Wallet) Zeroize() {
	w.km.Zeroize()
	w.view.Zeroize()
	w.spend.Zeroize()
}
