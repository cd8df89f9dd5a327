package scanner

import (
	"crypto/subtle"
	"fmt"

	"github.com/bitfsorg/tariscan-go/encdata"
	"github.com/bitfsorg/tariscan-go/keys"
	"github.com/bitfsorg/tariscan-go/onesided"
	"github.com/bitfsorg/tariscan-go/script"
	"github.com/bitfsorg/tariscan-go/transaction"
)

// candidate is an output whose script shape and ownership test passed and
// which now needs its payload opened.
type candidate struct {
	source    Source
	shared    *keys.SharedSecret
	scriptKey *keys.PrivateKey
	scriptPub *keys.PublicKey
	hint      *SpendHint
}

// decoded holds the public parts of an output, checked before any secret
// is touched.
type decoded struct {
	out          *transaction.TransactionOutput
	senderOffset *keys.PublicKey
	commitment   *keys.Commitment
	match        script.Match
	nonce        *keys.PublicKey
}

// Scan scans out with either kind of key material.
func (s *Scanner) Scan(out *transaction.TransactionOutput, km KeyMaterial) (*RecoveredPayment, error) {
	sc := &scratch{}
	defer func() {
		sc.wipe()
		if scratchHook != nil {
			scratchHook(sc)
		}
	}()

	var match func(*scratch, *decoded) *candidate
	switch km := km.(type) {
	case SoftwareKeys:
		match = func(sc *scratch, d *decoded) *candidate { return matchSoftware(sc, d, km) }
	case LedgerKeys:
		match = func(sc *scratch, d *decoded) *candidate { return matchLedger(sc, d, km) }
	case nil:
		return nil, fmt.Errorf("%w: key material is nil", ErrInvalidInput)
	default:
		return nil, fmt.Errorf("%w: unsupported key material %T", ErrInvalidInput, km)
	}
	if err := km.validate(); err != nil {
		return nil, err
	}
	d, err := decodeOutput(out)
	if err != nil {
		return nil, err
	}

	c := match(sc, d)
	if c == nil {
		return nil, nil
	}

	return s.open(sc, d, c)
}

func decodeOutput(out *transaction.TransactionOutput) (*decoded, error) {
	if out == nil {
		return nil, fmt.Errorf("%w: output is nil", ErrInvalidInput)
	}
	senderOffset, err := out.SenderOffsetKey()
	if err != nil {
		return nil, fmt.Errorf("%w: sender offset public key: %v", ErrInvalidInput, err)
	}
	if senderOffset.IsIdentity() {
		return nil, fmt.Errorf("%w: sender offset public key is the identity", ErrInvalidInput)
	}
	commitment, err := out.CommitmentValue()
	if err != nil {
		return nil, fmt.Errorf("%w: commitment: %v", ErrInvalidInput, err)
	}

	d := &decoded{
		out:          out,
		senderOffset: senderOffset,
		commitment:   commitment,
		match:        script.Classify(out.Script),
	}
	if d.match.Kind == script.Stealth {
		nonce, err := keys.PublicKeyFromBytes(d.match.Nonce[:])
		if err != nil {
			return nil, fmt.Errorf("%w: stealth nonce: %v", ErrInvalidInput, err)
		}
		if nonce.IsIdentity() {
			return nil, fmt.Errorf("%w: stealth nonce is the identity", ErrInvalidInput)
		}
		d.nonce = nonce
	}
	return d, nil
}

func matchSoftware(sc *scratch, d *decoded, km SoftwareKeys) *candidate {
	switch d.match.Kind {
	case script.OneSided:
		matched := findKnownKey(km.KnownScriptKeys, d.match.ScriptKey)
		if matched == nil {
			return nil
		}
		scriptKey := sc.key(new(keys.PrivateKey).Set(matched))
		return &candidate{
			source:    SourceOneSided,
			shared:    sc.secret(keys.NewSharedSecret(scriptKey, d.senderOffset)),
			scriptKey: scriptKey,
			scriptPub: scriptKey.PublicKey(),
		}

	case script.Stealth:
		h := sc.buf(onesided.StealthHash(km.Secret, d.nonce))
		scriptKey := sc.key(onesided.StealthScriptPrivateKey(h, km.Secret))
		scriptPub := scriptKey.PublicKey()
		if !equalEncoding(scriptPub.Array(), d.match.ScriptKey) {
			return nil
		}
		return &candidate{
			source:    SourceStealthOneSided,
			shared:    sc.secret(keys.NewSharedSecret(km.Secret, d.senderOffset)),
			scriptKey: scriptKey,
			scriptPub: scriptPub,
		}

	default:
		return nil
	}
}

func matchLedger(sc *scratch, d *decoded, km LedgerKeys) *candidate {
	if d.match.Kind != script.Stealth {
		return nil
	}
	h := sc.buf(onesided.StealthHash(km.View, d.nonce))
	scriptPub := onesided.StealthScriptPublicKey(h, km.SpendPublic)
	if !equalEncoding(scriptPub.Array(), d.match.ScriptKey) {
		return nil
	}
	return &candidate{
		source:    SourceStealthOneSided,
		shared:    sc.secret(keys.NewSharedSecret(km.View, d.senderOffset)),
		scriptPub: scriptPub,
		hint: &SpendHint{
			StealthNonce:    d.nonce,
			ScriptPublicKey: scriptPub,
			SpendPublicKey:  km.SpendPublic,
		},
	}
}

// findKnownKey returns the known key whose public key encodes to want. Every
// key is compared so the time taken does not reveal which one matched.
func findKnownKey(known []*keys.PrivateKey, want [32]byte) *keys.PrivateKey {
	var matched *keys.PrivateKey
	for _, k := range known {
		if equalEncoding(k.PublicKey().Array(), want) && matched == nil {
			matched = k
		}
	}
	return matched
}

func equalEncoding(a, b [32]byte) bool {
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

// open decrypts the payload and checks it against the commitment.
func (s *Scanner) open(sc *scratch, d *decoded, c *candidate) (*RecoveredPayment, error) {
	encKey := sc.key(onesided.OutputEncryptionKey(c.shared))
	payload, err := encdata.Decrypt(encKey, d.out.Commitment, d.out.EncryptedData)
	if err != nil {
		s.logger.Debug("script matched but payload did not open", "source", c.source.String())
		return nil, nil
	}
	sc.payload(payload)

	value := transaction.MicroMinotari(payload.Value)
	if value.ExceedsMaxSupply() {
		s.logger.Debug("payload value exceeds max supply", "source", c.source.String())
		return nil, nil
	}
	if !s.factory.Open(d.commitment, payload.Mask, payload.Value) {
		s.logger.Debug("payload does not open commitment", "source", c.source.String())
		return nil, nil
	}

	hash, err := d.out.Hash(s.network.Byte())
	if err != nil {
		return nil, fmt.Errorf("%w: output hash: %v", ErrInvalidInput, err)
	}

	p := &RecoveredPayment{
		Hash:            hash,
		Source:          c.source,
		OutputType:      d.out.Features.OutputType,
		Value:           value,
		Mask:            new(keys.PrivateKey).Set(payload.Mask),
		ScriptPublicKey: c.scriptPub,
		SpendHint:       c.hint,
		Features:        d.out.Features,
		Maturity:        d.out.Features.Maturity,
	}
	if c.scriptKey != nil {
		p.ScriptKey = new(keys.PrivateKey).Set(c.scriptKey)
	}
	if len(payload.PaymentID) > 0 {
		p.PaymentID = append([]byte(nil), payload.PaymentID...)
	}

	s.logger.Debug("recovered one-sided payment",
		"hash", fmt.Sprintf("%x", hash[:8]),
		"source", c.source.String(),
		"output_type", d.out.Features.OutputType.String(),
	)
	return p, nil
}
