package onesided

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/bitfsorg/tariscan-go/encdata"
	"github.com/bitfsorg/tariscan-go/keys"
	"github.com/bitfsorg/tariscan-go/script"
	"github.com/bitfsorg/tariscan-go/transaction"
)

// Option configures output construction.
type Option func(*buildOptions)

type buildOptions struct {
	rand         io.Reader
	paymentID    []byte
	features     transaction.OutputFeatures
	senderOffset *keys.PrivateKey
	nonce        *keys.PrivateKey
}

// WithRand sets the randomness source for keys and the AEAD nonce.
func WithRand(r io.Reader) Option {
	return func(o *buildOptions) { o.rand = r }
}

// WithPaymentID attaches a payment id of at most 256 bytes.
func WithPaymentID(id []byte) Option {
	return func(o *buildOptions) { o.paymentID = id }
}

// WithFeatures sets the output features.
func WithFeatures(f transaction.OutputFeatures) Option {
	return func(o *buildOptions) { o.features = f }
}

// WithSenderOffsetKey fixes the sender offset private key.
func WithSenderOffsetKey(k *keys.PrivateKey) Option {
	return func(o *buildOptions) { o.senderOffset = k }
}

// WithStealthNonce fixes the stealth nonce private key r.
func WithStealthNonce(k *keys.PrivateKey) Option {
	return func(o *buildOptions) { o.nonce = k }
}

// Built is a constructed output and the sender-side secrets behind it.
type Built struct {
	Output          *transaction.TransactionOutput
	Mask            *keys.PrivateKey
	SenderOffsetKey *keys.PrivateKey
}

// NewOneSided builds an output locked by [PushPubKey(K)] to the recipient's
// script public key K. The payload is encrypted under k_o*K.
func NewOneSided(value transaction.MicroMinotari, scriptKey *keys.PublicKey, opts ...Option) (*Built, error) {
	if scriptKey == nil || scriptKey.IsIdentity() {
		return nil, ErrInvalidRecipient
	}
	o := applyOptions(opts)
	return build(value, script.NewOneSided(scriptKey.Array()), scriptKey, o)
}

// NewStealth builds an output locked by [PushPubKey(R), Drop, PushPubKey(K_s)]
// to a stealth address derived from the recipient's view and spend keys. The
// payload is encrypted under k_o*K_view.
func NewStealth(value transaction.MicroMinotari, viewKey, spendKey *keys.PublicKey, opts ...Option) (*Built, error) {
	if viewKey == nil || spendKey == nil || viewKey.IsIdentity() || spendKey.IsIdentity() {
		return nil, ErrInvalidRecipient
	}
	o := applyOptions(opts)

	r := o.nonce
	if r == nil {
		var err error
		if r, err = keys.NewPrivateKey(o.rand); err != nil {
			return nil, fmt.Errorf("onesided: stealth nonce: %w", err)
		}
		defer r.Zeroize()
	}

	h := StealthHash(r, viewKey)
	defer keys.Wipe(h)
	scriptKey := StealthScriptPublicKey(h, spendKey)

	s := script.NewStealth(r.PublicKey().Array(), scriptKey.Array())
	return build(value, s, viewKey, o)
}

func applyOptions(opts []Option) *buildOptions {
	o := &buildOptions{rand: rand.Reader}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func build(value transaction.MicroMinotari, s script.Script, recipient *keys.PublicKey, o *buildOptions) (*Built, error) {
	if value.ExceedsMaxSupply() {
		return nil, ErrValueTooLarge
	}

	offset := o.senderOffset
	if offset == nil {
		var err error
		if offset, err = keys.NewPrivateKey(o.rand); err != nil {
			return nil, fmt.Errorf("onesided: sender offset: %w", err)
		}
	}

	ss := keys.NewSharedSecret(offset, recipient)
	defer ss.Zeroize()
	encKey := OutputEncryptionKey(ss)
	defer encKey.Zeroize()
	mask := OutputSpendingKey(ss)

	commitment := keys.DefaultCommitmentFactory().Commit(mask, uint64(value)).Array()
	data, err := encdata.Encrypt(encKey, commitment, uint64(value), mask, o.paymentID, o.rand)
	if err != nil {
		return nil, fmt.Errorf("onesided: encrypt payload: %w", err)
	}

	out := &transaction.TransactionOutput{
		Version:               1,
		Features:              o.features,
		Commitment:            commitment,
		Script:                s.Bytes(),
		SenderOffsetPublicKey: offset.PublicKey().Array(),
		EncryptedData:         data,
	}
	return &Built{Output: out, Mask: mask, SenderOffsetKey: offset}, nil
}
