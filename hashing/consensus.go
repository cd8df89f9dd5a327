package hashing

import (
	"fmt"

	"github.com/near/borsh-go"
)

// ConsensusHasher is a Blake2b-256 domain-separated hasher whose label is
// bound to a network, "{label}.n{network_byte}". Values are chained by their
// Borsh encoding, written without an extra length prefix.
type ConsensusHasher struct {
	dsh *DomainSeparatedHasher
	err error
}

// NewConsensusHasher returns a consensus hasher for domain and label on the
// network identified by networkByte.
func NewConsensusHasher(domain Domain, label string, networkByte byte) *ConsensusHasher {
	return &ConsensusHasher{
		dsh: domain.Hasher256(fmt.Sprintf("%s.n%d", label, networkByte)),
	}
}

// Chain absorbs the Borsh encoding of v. The first encoding failure is kept
// and reported by Finalize.
func (c *ConsensusHasher) Chain(v any) *ConsensusHasher {
	if c.err != nil {
		return c
	}
	b, err := borsh.Serialize(v)
	if err != nil {
		c.err = fmt.Errorf("%w: %v", ErrEncodeFailed, err)
		return c
	}
	c.dsh.Update(b)
	return c
}

// Finalize returns the 32-byte digest.
func (c *ConsensusHasher) Finalize() ([32]byte, error) {
	var out [32]byte
	if c.err != nil {
		return out, c.err
	}
	copy(out[:], c.dsh.Finalize())
	return out, nil
}
