// Package ristretto adapts the ristretto255 prime-order group (RFC 9496) to
// the edwards25519 scalars used across this module.
//
// Group arithmetic, encoding and the one-way map come from
// github.com/gtank/ristretto255. Scalars stay *edwards25519.Scalar so key
// material has a single representation; they are converted at the boundary
// and the converted copy is cleared after use.
package ristretto

import (
	"encoding/hex"

	"filippo.io/edwards25519"
	"github.com/gtank/ristretto255"
)

// ElementSize is the length of a canonical element encoding.
const ElementSize = 32

// UniformSize is the length of the input to SetUniformBytes.
const UniformSize = 64

// Element is an element of the ristretto255 group. The zero value is not a
// valid element; start from NewIdentityElement or NewGeneratorElement, or use
// it only as the receiver of a setter.
type Element struct {
	e ristretto255.Element
}

// NewIdentityElement returns the identity element.
func NewIdentityElement() *Element {
	e := &Element{}
	e.e.Set(ristretto255.NewIdentityElement())
	return e
}

// NewGeneratorElement returns the canonical generator.
func NewGeneratorElement() *Element {
	e := &Element{}
	e.e.Set(ristretto255.NewGeneratorElement())
	return e
}

// withScalar converts s for the duration of f and clears the copy.
func withScalar(s *edwards25519.Scalar, f func(*ristretto255.Scalar)) {
	b := s.Bytes()
	rs, err := ristretto255.NewScalar().SetCanonicalBytes(b)
	for i := range b {
		b[i] = 0
	}
	if err != nil {
		// edwards25519.Scalar is always reduced.
		panic("ristretto: non-canonical edwards25519 scalar")
	}
	f(rs)
	rs.Zero()
}

// Set sets e = x and returns e.
func (e *Element) Set(x *Element) *Element {
	e.e.Set(&x.e)
	return e
}

// Add sets e = x + y and returns e.
func (e *Element) Add(x, y *Element) *Element {
	e.e.Add(&x.e, &y.e)
	return e
}

// Subtract sets e = x - y and returns e.
func (e *Element) Subtract(x, y *Element) *Element {
	e.e.Subtract(&x.e, &y.e)
	return e
}

// Negate sets e = -x and returns e.
func (e *Element) Negate(x *Element) *Element {
	e.e.Negate(&x.e)
	return e
}

// ScalarMult sets e = s * x and returns e.
func (e *Element) ScalarMult(s *edwards25519.Scalar, x *Element) *Element {
	withScalar(s, func(rs *ristretto255.Scalar) { e.e.ScalarMult(rs, &x.e) })
	return e
}

// ScalarBaseMult sets e = s * G and returns e.
func (e *Element) ScalarBaseMult(s *edwards25519.Scalar) *Element {
	withScalar(s, func(rs *ristretto255.Scalar) { e.e.ScalarBaseMult(rs) })
	return e
}

// MultiScalarMult sets e = sum(scalars[i] * elements[i]) and returns e. The
// previous value of e does not contribute. It panics if the slices differ in
// length.
func (e *Element) MultiScalarMult(scalars []*edwards25519.Scalar, elements []*Element) *Element {
	if len(scalars) != len(elements) {
		panic("ristretto: MultiScalarMult with different size inputs")
	}
	acc := ristretto255.NewIdentityElement()
	term := ristretto255.NewIdentityElement()
	for i := range scalars {
		withScalar(scalars[i], func(rs *ristretto255.Scalar) { term.ScalarMult(rs, &elements[i].e) })
		acc.Add(acc, term)
	}
	e.e.Set(acc)
	return e
}

// Equal returns 1 if e and x represent the same group element, 0 otherwise.
func (e *Element) Equal(x *Element) int {
	return e.e.Equal(&x.e)
}

// IsIdentity reports whether e is the identity element.
func (e *Element) IsIdentity() bool {
	return e.e.Equal(ristretto255.NewIdentityElement()) == 1
}

// Bytes returns the 32-byte canonical encoding of e.
func (e *Element) Bytes() []byte {
	return e.e.Bytes()
}

// Hex returns the hex form of the canonical encoding.
func (e *Element) Hex() string {
	return hex.EncodeToString(e.Bytes())
}

// SetCanonicalBytes sets e to the element encoded by b. It rejects
// non-canonical field encodings, negative field elements and strings that do
// not decode to a group element; e is unchanged on error.
func (e *Element) SetCanonicalBytes(b []byte) (*Element, error) {
	if len(b) != ElementSize {
		return nil, ErrInvalidLength
	}
	var decoded ristretto255.Element
	if _, err := decoded.SetCanonicalBytes(b); err != nil {
		return nil, ErrInvalidEncoding
	}
	e.e.Set(&decoded)
	return e, nil
}

// SetUniformBytes sets e to the element derived from 64 uniformly random
// bytes using the one-way map of RFC 9496 section 4.3.4.
func (e *Element) SetUniformBytes(b []byte) (*Element, error) {
	if len(b) != UniformSize {
		return nil, ErrInvalidLength
	}
	if _, err := e.e.SetUniformBytes(b); err != nil {
		return nil, ErrInvalidLength
	}
	return e, nil
}
