package keys

import "github.com/bitfsorg/tariscan-go/ristretto"

// SharedSecret is the Diffie-Hellman point sk*P held in its canonical
// encoding. It is secret and must be zeroized once consumed.
type SharedSecret struct {
	b [KeySize]byte
}

// NewSharedSecret computes sk * pk.
//
//	shared = sk * P
//	S_sender   = r * K_view      (sender side)
//	S_receiver = k_view * R      (receiver side, R = r*G)
func NewSharedSecret(sk *PrivateKey, pk *PublicKey) *SharedSecret {
	e := new(ristretto.Element).ScalarMult(&sk.s, &pk.e)
	ss := &SharedSecret{}
	copy(ss.b[:], e.Bytes())
	e.Set(ristretto.NewIdentityElement())
	return ss
}

// Bytes returns the encoding. The returned slice aliases the secret, so it is
// cleared by Zeroize.
func (s *SharedSecret) Bytes() []byte {
	return s.b[:]
}

// Zeroize clears the secret.
func (s *SharedSecret) Zeroize() {
	if s == nil {
		return
	}
	wipe(s.b[:])
}

// IsZeroized reports whether every byte of the secret is zero.
func (s *SharedSecret) IsZeroized() bool {
	var acc byte
	for _, b := range s.b {
		acc |= b
	}
	return acc == 0
}
