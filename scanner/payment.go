package scanner

import (
	"fmt"

	"github.com/bitfsorg/tariscan-go/keys"
	"github.com/bitfsorg/tariscan-go/transaction"
)

// Source says which one-sided script shape an output was recovered from.
type Source uint8

const (
	// SourceOneSided is a [PushPubKey(K)] output paid to a known script key.
	SourceOneSided Source = iota + 1
	// SourceStealthOneSided is a [PushPubKey(R), Drop, PushPubKey(K_s)] output.
	SourceStealthOneSided
)

// String implements fmt.Stringer.
func (s Source) String() string {
	switch s {
	case SourceOneSided:
		return "OneSided"
	case SourceStealthOneSided:
		return "StealthOneSided"
	default:
		return fmt.Sprintf("Source(%d)", uint8(s))
	}
}

// SpendHint lets a hardware wallet derive the script spending key itself:
//
//	k_s = from_uniform(H(v*R)) + k_spend
type SpendHint struct {
	StealthNonce    *keys.PublicKey
	ScriptPublicKey *keys.PublicKey
	SpendPublicKey  *keys.PublicKey
}

// RecoveredPayment is an output proven to belong to the wallet. The caller
// owns it and should call Zeroize once the secrets are stored.
type RecoveredPayment struct {
	Hash       [32]byte
	Source     Source
	OutputType transaction.OutputType
	Value      transaction.MicroMinotari

	// Mask is the commitment blinding factor.
	Mask *keys.PrivateKey

	// ScriptKey is the private key for the script public key. It is set only
	// by the software-wallet scan.
	ScriptKey       *keys.PrivateKey
	ScriptPublicKey *keys.PublicKey

	// SpendHint is set only by the ledger scan.
	SpendHint *SpendHint

	PaymentID []byte
	Features  transaction.OutputFeatures
	Maturity  uint64
}

// Zeroize clears the secrets held by the payment.
func (p *RecoveredPayment) Zeroize() {
	if p == nil {
		return
	}
	p.Mask.Zeroize()
	p.ScriptKey.Zeroize()
}
