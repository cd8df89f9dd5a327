// Package binding exposes the scanner over hex strings and JSON, the shape a
// foreign caller (wasm, FFI, a JSON-RPC handler) works with.
//
// Keys are hex-encoded 32-byte scalars or compressed points. Outputs are the
// hex of their Borsh encoding.
package binding

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/bitfsorg/tariscan-go/keys"
	"github.com/bitfsorg/tariscan-go/scanner"
	"github.com/bitfsorg/tariscan-go/transaction"
)

// Result is a recovered payment in wire form.
type Result struct {
	Hash         string `json:"hash"`
	OutputSource string `json:"output_source"`
	OutputType   string `json:"output_type"`
	Value        uint64 `json:"value"`
	SpendingKey  string `json:"spending_key"`
	ScriptKey    string `json:"script_key,omitempty"`
	Maturity     uint64 `json:"maturity"`
	PaymentID    string `json:"payment_id,omitempty"`
}

// Response is the envelope returned to callers that cannot receive a Go
// error: every field is absent on no match, and only Error is set on failure.
type Response struct {
	*Result
	Error string `json:"error,omitempty"`
}

// Envelope wraps the outcome of a scan.
func Envelope(r *Result, err error) Response {
	if err != nil {
		return Response{Error: err.Error()}
	}
	return Response{Result: r}
}

// JSON encodes the envelope.
func (r Response) JSON() []byte {
	b, err := json.Marshal(r)
	if err != nil {
		return []byte(`{"error":"binding: encode response"}`)
	}
	return b
}

// ScanOutput scans a Borsh-hex output for a software wallet. It returns nil
// with no error when the output is not the wallet's.
func ScanOutput(knownScriptKeysHex []string, walletSKHex, outputHex string) (*Result, error) {
	return ScanOutputWith(scanner.New(), knownScriptKeysHex, walletSKHex, outputHex)
}

// ScanOutputWith is ScanOutput with a configured scanner.
func ScanOutputWith(s *scanner.Scanner, knownScriptKeysHex []string, walletSKHex, outputHex string) (*Result, error) {
	known := make([]*keys.PrivateKey, 0, len(knownScriptKeysHex))
	defer func() {
		for _, k := range known {
			k.Zeroize()
		}
	}()
	for i, h := range knownScriptKeysHex {
		k, err := keys.PrivateKeyFromHex(h)
		if err != nil {
			return nil, fmt.Errorf("%w: known script key %d: %v", scanner.ErrInvalidInput, i, err)
		}
		known = append(known, k)
	}

	walletSK, err := keys.PrivateKeyFromHex(walletSKHex)
	if err != nil {
		return nil, fmt.Errorf("%w: wallet_sk: %v", scanner.ErrInvalidInput, err)
	}
	defer walletSK.Zeroize()

	out, err := decodeOutput(outputHex)
	if err != nil {
		return nil, err
	}

	p, err := s.ScanForOneSidedPayment(out, walletSK, known...)
	return toResult(p, err)
}

// ScanOutputLedger scans a Borsh-hex output with a view key and public spend
// key. It returns nil with no error when the output is not the wallet's.
func ScanOutputLedger(viewSKHex, spendPKHex, outputHex string) (*Result, error) {
	return ScanOutputLedgerWith(scanner.New(), viewSKHex, spendPKHex, outputHex)
}

// ScanOutputLedgerWith is ScanOutputLedger with a configured scanner.
func ScanOutputLedgerWith(s *scanner.Scanner, viewSKHex, spendPKHex, outputHex string) (*Result, error) {
	viewSK, err := keys.PrivateKeyFromHex(viewSKHex)
	if err != nil {
		return nil, fmt.Errorf("%w: view_sk: %v", scanner.ErrInvalidInput, err)
	}
	defer viewSK.Zeroize()

	spendPK, err := keys.PublicKeyFromHex(spendPKHex)
	if err != nil {
		return nil, fmt.Errorf("%w: spend_pk: %v", scanner.ErrInvalidInput, err)
	}

	out, err := decodeOutput(outputHex)
	if err != nil {
		return nil, err
	}

	p, err := s.ScanForOneSidedPaymentLedger(out, viewSK, spendPK)
	return toResult(p, err)
}

func decodeOutput(outputHex string) (*transaction.TransactionOutput, error) {
	out, err := transaction.DecodeHex(outputHex)
	if err != nil {
		return nil, fmt.Errorf("%w: output: %v", scanner.ErrInvalidInput, err)
	}
	return out, nil
}

func toResult(p *scanner.RecoveredPayment, err error) (*Result, error) {
	if err != nil || p == nil {
		return nil, err
	}
	defer p.Zeroize()
	return FromPayment(p), nil
}

// FromPayment converts p to wire form. The result carries p's mask and
// script key in hex; p itself is left untouched.
func FromPayment(p *scanner.RecoveredPayment) *Result {
	r := &Result{
		Hash:         hex.EncodeToString(p.Hash[:]),
		OutputSource: p.Source.String(),
		OutputType:   p.OutputType.String(),
		Value:        uint64(p.Value),
		SpendingKey:  p.Mask.Hex(),
		Maturity:     p.Maturity,
	}
	if p.ScriptKey != nil {
		r.ScriptKey = p.ScriptKey.Hex()
	}
	if len(p.PaymentID) > 0 {
		r.PaymentID = hex.EncodeToString(p.PaymentID)
	}
	return r
}
