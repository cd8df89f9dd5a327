package wallet

import (
	"encoding/binary"
	"fmt"

	"github.com/bitfsorg/tariscan-go/hashing"
	"github.com/bitfsorg/tariscan-go/keys"
)

// Key manager branches.
const (
	BranchView   = "view"
	BranchSpend  = "spend"
	BranchScript = "script"
)

// KeyManager derives private keys from a seed, one independent sequence per
// branch:
//
//	k(branch, i) = from_uniform(Blake2b-512(key_manager, branch) . seed . i_le64)
type KeyManager struct {
	seed []byte
}

// NewKeyManager copies seed; the caller may wipe its own copy afterwards.
func NewKeyManager(seed []byte) (*KeyManager, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}
	return &KeyManager{seed: append([]byte(nil), seed...)}, nil
}

// DeriveKey returns the key at index on branch.
func (m *KeyManager) DeriveKey(branch string, index uint64) (*keys.PrivateKey, error) {
	if m.seed == nil {
		return nil, ErrWalletZeroized
	}
	if branch == "" {
		return nil, fmt.Errorf("%w: empty branch", ErrDerivationFailed)
	}

	var idx [8]byte
	binary.LittleEndian.PutUint64(idx[:], index)

	digest := hashing.KeyManager.Hasher512(branch).
		Chain(m.seed).
		Chain(idx[:]).
		Finalize()
	defer keys.Wipe(digest)

	k, err := keys.PrivateKeyFromUniform(digest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}
	if k.IsZero() {
		return nil, fmt.Errorf("%w: zero key at %s/%d", ErrDerivationFailed, branch, index)
	}
	return k, nil
}

// Zeroize wipes the seed. Further derivations fail with ErrWalletZeroized.
func (m *KeyManager) Zeroize() {
	keys.Wipe(m.seed)
	m.seed = nil
}
