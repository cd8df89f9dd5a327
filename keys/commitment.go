package keys

import (
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sync"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitfsorg/tariscan-go/ristretto"
)

// Commitment is a Pedersen commitment C = mask*G + value*H.
type Commitment struct {
	e   ristretto.Element
	enc [KeySize]byte
}

// CommitmentFromBytes decodes a canonical commitment encoding.
func CommitmentFromBytes(b []byte) (*Commitment, error) {
	e, err := new(ristretto.Element).SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommitment, err)
	}
	c := &Commitment{}
	c.e.Set(e)
	copy(c.enc[:], b)
	return c, nil
}

// Bytes returns the canonical encoding.
func (c *Commitment) Bytes() []byte {
	out := make([]byte, KeySize)
	copy(out, c.enc[:])
	return out
}

// Array returns the canonical encoding as a fixed-size array.
func (c *Commitment) Array() [KeySize]byte {
	return c.enc
}

// Hex returns the hex form of the encoding.
func (c *Commitment) Hex() string {
	return hex.EncodeToString(c.enc[:])
}

// Equal compares two commitments in constant time.
func (c *Commitment) Equal(o *Commitment) bool {
	return subtle.ConstantTimeCompare(c.enc[:], o.enc[:]) == 1
}

// CommitmentFactory builds and opens commitments over the generators G and H.
//
//	G = ristretto255 basepoint
//	H = map_to_group(SHA3-512(encode(G)))
type CommitmentFactory struct {
	g ristretto.Element
	h ristretto.Element
}

var (
	defaultFactory     *CommitmentFactory
	defaultFactoryOnce sync.Once
)

// DefaultCommitmentFactory returns the shared factory for the standard
// generators.
func DefaultCommitmentFactory() *CommitmentFactory {
	defaultFactoryOnce.Do(func() {
		g := ristretto.NewGeneratorElement()
		digest := sha3.Sum512(g.Bytes())
		h, err := new(ristretto.Element).SetUniformBytes(digest[:])
		if err != nil {
			panic(err)
		}
		f := &CommitmentFactory{}
		f.g.Set(g)
		f.h.Set(h)
		defaultFactory = f
	})
	return defaultFactory
}

// H returns the value generator.
func (f *CommitmentFactory) H() *PublicKey {
	return newPublicKey(&f.h)
}

// Commit returns mask*G + value*H.
func (f *CommitmentFactory) Commit(mask *PrivateKey, value uint64) *Commitment {
	v := valueScalar(value)
	e := new(ristretto.Element).MultiScalarMult(
		[]*edwards25519.Scalar{&mask.s, v},
		[]*ristretto.Element{&f.g, &f.h},
	)
	c := &Commitment{}
	c.e.Set(e)
	copy(c.enc[:], e.Bytes())
	return c
}

// Open reports whether c commits to value under mask. The comparison is
// constant time.
func (f *CommitmentFactory) Open(c *Commitment, mask *PrivateKey, value uint64) bool {
	candidate := f.Commit(mask, value)
	sameBytes := subtle.ConstantTimeCompare(candidate.enc[:], c.enc[:])
	return candidate.e.Equal(&c.e)&sameBytes == 1
}

func valueScalar(value uint64) *edwards25519.Scalar {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:8], value)
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		// A u64 is always below the group order.
		panic(err)
	}
	return s
}
