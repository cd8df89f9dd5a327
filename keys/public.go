package keys

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/bitfsorg/tariscan-go/ristretto"
)

// PublicKey is a ristretto255 group element with its canonical encoding
// cached.
type PublicKey struct {
	e   ristretto.Element
	enc [KeySize]byte
}

func newPublicKey(e *ristretto.Element) *PublicKey {
	p := &PublicKey{}
	p.e.Set(e)
	copy(p.enc[:], e.Bytes())
	return p
}

// PublicKeyFromBytes decodes a canonical 32-byte encoding. The identity is
// accepted here; callers that need a non-identity key check IsIdentity.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	e, err := new(ristretto.Element).SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	p := &PublicKey{}
	p.e.Set(e)
	copy(p.enc[:], b)
	return p, nil
}

// PublicKeyFromHex decodes the hex form of a canonical encoding.
func PublicKeyFromHex(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return PublicKeyFromBytes(b)
}

// Element returns a copy of the group element.
func (p *PublicKey) Element() *ristretto.Element {
	return new(ristretto.Element).Set(&p.e)
}

// Bytes returns the canonical encoding.
func (p *PublicKey) Bytes() []byte {
	out := make([]byte, KeySize)
	copy(out, p.enc[:])
	return out
}

// Array returns the canonical encoding as a fixed-size array.
func (p *PublicKey) Array() [KeySize]byte {
	return p.enc
}

// Hex returns the hex form of the canonical encoding.
func (p *PublicKey) Hex() string {
	return hex.EncodeToString(p.enc[:])
}

// String implements fmt.Stringer.
func (p *PublicKey) String() string {
	return p.Hex()
}

// Equal compares two keys in constant time.
func (p *PublicKey) Equal(o *PublicKey) bool {
	if p == nil || o == nil {
		return false
	}
	return subtle.ConstantTimeCompare(p.enc[:], o.enc[:]) == 1
}

// IsIdentity reports whether p is the group identity.
func (p *PublicKey) IsIdentity() bool {
	return p.e.IsIdentity()
}

// AddPublicKeys returns a + b.
func AddPublicKeys(a, b *PublicKey) *PublicKey {
	return newPublicKey(new(ristretto.Element).Add(&a.e, &b.e))
}
