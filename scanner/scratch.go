package scanner

import (
	"github.com/bitfsorg/tariscan-go/encdata"
	"github.com/bitfsorg/tariscan-go/keys"
)

// scratch tracks every secret temporary of one scan so it can be wiped on
// every exit path.
type scratch struct {
	keys     []*keys.PrivateKey
	secrets  []*keys.SharedSecret
	bufs     [][]byte
	payloads []*encdata.Payload
}

// scratchHook, when set, observes the scratch after it has been wiped.
var scratchHook func(*scratch)

func (s *scratch) key(k *keys.PrivateKey) *keys.PrivateKey {
	s.keys = append(s.keys, k)
	return k
}

func (s *scratch) secret(ss *keys.SharedSecret) *keys.SharedSecret {
	s.secrets = append(s.secrets, ss)
	return ss
}

func (s *scratch) buf(b []byte) []byte {
	s.bufs = append(s.bufs, b)
	return b
}

func (s *scratch) payload(p *encdata.Payload) *encdata.Payload {
	s.payloads = append(s.payloads, p)
	return p
}

func (s *scratch) wipe() {
	for _, k := range s.keys {
		k.Zeroize()
	}
	for _, ss := range s.secrets {
		ss.Zeroize()
	}
	for _, b := range s.bufs {
		keys.Wipe(b)
	}
	for _, p := range s.payloads {
		p.Zeroize()
	}
}
