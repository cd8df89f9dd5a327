// Package transaction models the on-chain transaction output consumed by the
// scanner, together with its Borsh wire encoding and consensus hash.
package transaction

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"reflect"

	"github.com/near/borsh-go"
	"golang.org/x/crypto/blake2b"

	"github.com/bitfsorg/tariscan-go/hashing"
	"github.com/bitfsorg/tariscan-go/keys"
)

// RangeProof is an opaque range proof.
type RangeProof struct {
	Data []byte
}

// ComAndPubSignature is the metadata signature carried by every output.
type ComAndPubSignature struct {
	EphemeralCommitment [32]byte
	EphemeralPubkey     [32]byte
	UA                  [32]byte
	UX                  [32]byte
	UY                  [32]byte
}

// TransactionOutput is an unspent output as published on chain. Keys and the
// commitment are kept as raw encodings; use the accessor methods to decode
// them as group elements.
type TransactionOutput struct {
	Version               uint8
	Features              OutputFeatures
	Commitment            [32]byte
	Proof                 *RangeProof
	Script                []byte
	SenderOffsetPublicKey [32]byte
	MetadataSignature     ComAndPubSignature
	Covenant              []byte
	EncryptedData         []byte
	MinimumValuePromise   MicroMinotari
}

// Decode parses the Borsh encoding of an output. Trailing bytes and
// non-canonical option tags are rejected.
func Decode(b []byte) (out *TransactionOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrMalformedOutput, r)
		}
	}()

	var o TransactionOutput
	if err := borsh.Deserialize(&o, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	// An absent option decodes to a pointer to the zero value.
	if o.Proof != nil && len(o.Proof.Data) == 0 {
		o.Proof = nil
	}
	if sc := o.Features.SideChain; sc != nil {
		if reflect.DeepEqual(*sc, SideChainFeature{}) {
			o.Features.SideChain = nil
		} else if err := sc.validate(); err != nil {
			return nil, fmt.Errorf("%w: sidechain feature: %v", ErrMalformedOutput, err)
		}
	}

	reencoded, err := o.Encode()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if !bytes.Equal(reencoded, b) {
		return nil, fmt.Errorf("%w: non-canonical encoding", ErrMalformedOutput)
	}
	return &o, nil
}

// DecodeHex parses the hex form of a Borsh-encoded output.
func DecodeHex(s string) (*TransactionOutput, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return Decode(b)
}

// Encode returns the Borsh encoding.
func (o *TransactionOutput) Encode() ([]byte, error) {
	return borsh.Serialize(*o)
}

// Hex returns the hex form of Encode.
func (o *TransactionOutput) Hex() (string, error) {
	b, err := o.Encode()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// RangeProofHash is Blake2b-256 of the proof bytes, or 32 zero bytes when the
// output carries no proof.
func (o *TransactionOutput) RangeProofHash() [32]byte {
	if o.Proof == nil {
		return [32]byte{}
	}
	return blake2b.Sum256(o.Proof.Data)
}

// Hash returns the consensus hash of the output on the network identified by
// networkByte.
func (o *TransactionOutput) Hash(networkByte byte) ([32]byte, error) {
	return hashing.NewConsensusHasher(hashing.Transactions, hashing.LabelTransactionOutput, networkByte).
		Chain(o.Version).
		Chain(o.Features).
		Chain(o.Commitment).
		Chain(o.RangeProofHash()).
		Chain(o.Script).
		Chain(o.SenderOffsetPublicKey).
		Chain(o.MetadataSignature).
		Chain(o.Covenant).
		Chain(o.EncryptedData).
		Chain(uint64(o.MinimumValuePromise)).
		Finalize()
}

// CommitmentValue decodes the commitment.
func (o *TransactionOutput) CommitmentValue() (*keys.Commitment, error) {
	return keys.CommitmentFromBytes(o.Commitment[:])
}

// SenderOffsetKey decodes the sender offset public key.
func (o *TransactionOutput) SenderOffsetKey() (*keys.PublicKey, error) {
	return keys.PublicKeyFromBytes(o.SenderOffsetPublicKey[:])
}
