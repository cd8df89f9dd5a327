// Package keys holds the key types of the protocol: scalar private keys,
// ristretto255 public keys, Diffie-Hellman shared secrets and Pedersen
// commitments.
package keys

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"filippo.io/edwards25519"

	"github.com/bitfsorg/tariscan-go/ristretto"
)

// KeySize is the length of an encoded private or public key.
const KeySize = 32

// PrivateKey is a scalar modulo the group order. The zero value is the zero
// scalar, which is never a usable wallet key.
type PrivateKey struct {
	s edwards25519.Scalar
}

// NewPrivateKey returns a uniformly random non-zero private key read from r.
// A nil r uses crypto/rand.
func NewPrivateKey(r io.Reader) (*PrivateKey, error) {
	if r == nil {
		r = rand.Reader
	}
	var buf [64]byte
	defer wipe(buf[:])
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	k, err := PrivateKeyFromUniform(buf[:])
	if err != nil {
		return nil, err
	}
	if k.IsZero() {
		return nil, ErrRandomSource
	}
	return k, nil
}

// PrivateKeyFromBytes parses a canonical little-endian 32-byte scalar.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != KeySize {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidPrivateKey, len(b))
	}
	k := &PrivateKey{}
	if _, err := k.s.SetCanonicalBytes(b); err != nil {
		return nil, fmt.Errorf("%w: non-canonical scalar", ErrInvalidPrivateKey)
	}
	return k, nil
}

// PrivateKeyFromHex parses the hex form of a canonical scalar.
func PrivateKeyFromHex(s string) (*PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	defer wipe(b)
	return PrivateKeyFromBytes(b)
}

// PrivateKeyFromUniform reduces 64 uniformly distributed bytes (typically a
// Blake2b-512 digest) modulo the group order.
func PrivateKeyFromUniform(b []byte) (*PrivateKey, error) {
	if len(b) != 64 {
		return nil, ErrInvalidUniformBytes
	}
	k := &PrivateKey{}
	if _, err := k.s.SetUniformBytes(b); err != nil {
		return nil, ErrInvalidUniformBytes
	}
	return k, nil
}

// Scalar returns the underlying scalar. The caller must not retain it past
// the key's Zeroize.
func (k *PrivateKey) Scalar() *edwards25519.Scalar {
	return &k.s
}

// PublicKey returns k*G.
func (k *PrivateKey) PublicKey() *PublicKey {
	e := ristretto.NewIdentityElement().ScalarBaseMult(&k.s)
	return newPublicKey(e)
}

// Add sets k = a + b and returns k.
func (k *PrivateKey) Add(a, b *PrivateKey) *PrivateKey {
	k.s.Add(&a.s, &b.s)
	return k
}

// Set sets k = a and returns k.
func (k *PrivateKey) Set(a *PrivateKey) *PrivateKey {
	k.s.Set(&a.s)
	return k
}

// Equal reports whether k and o are the same scalar, in constant time.
func (k *PrivateKey) Equal(o *PrivateKey) bool {
	return k.s.Equal(&o.s) == 1
}

// IsZero reports whether k is the zero scalar, in constant time.
func (k *PrivateKey) IsZero() bool {
	return k.s.Equal(edwards25519.NewScalar()) == 1
}

// Bytes returns the canonical 32-byte encoding.
func (k *PrivateKey) Bytes() []byte {
	return k.s.Bytes()
}

// Hex returns the hex form of Bytes.
func (k *PrivateKey) Hex() string {
	b := k.s.Bytes()
	defer wipe(b)
	return hex.EncodeToString(b)
}

// Zeroize overwrites the key with the zero scalar.
func (k *PrivateKey) Zeroize() {
	if k == nil {
		return
	}
	k.s.Set(edwards25519.NewScalar())
}

// String never reveals key material.
func (k *PrivateKey) String() string {
	return "PrivateKey(***)"
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	wipe(b)
}
