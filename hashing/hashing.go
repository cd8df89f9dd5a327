// Package hashing provides the domain-separated Blake2b hashers used for every
// key derivation and consensus hash in the protocol.
//
// A domain-separated hasher first absorbs its tag
//
//	tag = "{domain}.v{version}"            (no label)
//	tag = "{domain}.v{version}.{label}"    (with label)
//
// prefixed by len(tag) as a little-endian u64. Every Chain call absorbs
// len(data) as a little-endian u64 followed by data, so adjacent inputs can
// never be re-split into a colliding sequence.
package hashing

import (
	"encoding/binary"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Domain names a hashing domain and its version.
type Domain struct {
	Name    string
	Version uint8
}

// Hashing domains of the wallet and base layer.
var (
	// OutputEncryptionKeys derives the key that encrypts an output's value and mask.
	OutputEncryptionKeys = Domain{Name: "com.tari.base_layer.wallet.output_encryption_keys", Version: 1}

	// OutputSpendingKeys derives the commitment mask a sender assigns to a
	// one-sided output.
	OutputSpendingKeys = Domain{Name: "com.tari.base_layer.wallet.output_spending_keys", Version: 1}

	// Wallet is the general wallet domain; stealth addresses use label "stealth_address".
	Wallet = Domain{Name: "com.tari.base_layer.wallet", Version: 1}

	// SecureNonceKDF turns an encryption key and a commitment into an AEAD key.
	SecureNonceKDF = Domain{Name: "com.tari.base_layer.core.transactions.secure_nonce_kdf", Version: 0}

	// Transactions is the consensus domain for transaction hashes.
	Transactions = Domain{Name: "com.tari.base_layer.core.transactions", Version: 0}

	// KeyManager derives branch keys from a wallet seed.
	KeyManager = Domain{Name: "com.tari.base_layer.key_manager", Version: 1}
)

// Labels used with the domains above.
const (
	LabelStealthAddress        = "stealth_address"
	LabelEncryptedValueAndMask = "encrypted_value_and_mask"
	LabelTransactionOutput     = "transaction_output"
)

// Tag returns the domain separation tag for label.
func (d Domain) Tag(label string) string {
	if label == "" {
		return fmt.Sprintf("%s.v%d", d.Name, d.Version)
	}
	return fmt.Sprintf("%s.v%d.%s", d.Name, d.Version, label)
}

// Hasher256 returns a Blake2b-256 hasher for this domain and label.
func (d Domain) Hasher256(label string) *DomainSeparatedHasher {
	return newDomainSeparatedHasher(blake2b.Size256, d.Tag(label))
}

// Hasher512 returns a Blake2b-512 hasher for this domain and label.
func (d Domain) Hasher512(label string) *DomainSeparatedHasher {
	return newDomainSeparatedHasher(blake2b.Size, d.Tag(label))
}

// DomainSeparatedHasher is a Blake2b hasher bound to a domain tag.
type DomainSeparatedHasher struct {
	h hash.Hash
}

func newDomainSeparatedHasher(size int, tag string) *DomainSeparatedHasher {
	h, err := blake2b.New(size, nil)
	if err != nil {
		// Only reachable with a size outside 1..64.
		panic(err)
	}
	d := &DomainSeparatedHasher{h: h}
	d.Chain([]byte(tag))
	return d
}

// Chain absorbs len(data) as a little-endian u64 and then data.
func (d *DomainSeparatedHasher) Chain(data []byte) *DomainSeparatedHasher {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(data)))
	d.h.Write(n[:])
	d.h.Write(data)
	return d
}

// Update absorbs data with no length prefix.
func (d *DomainSeparatedHasher) Update(data []byte) *DomainSeparatedHasher {
	d.h.Write(data)
	return d
}

// Finalize returns the digest. The hasher must not be used afterwards.
func (d *DomainSeparatedHasher) Finalize() []byte {
	return d.h.Sum(nil)
}
