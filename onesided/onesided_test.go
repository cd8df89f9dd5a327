package onesided

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/tariscan-go/encdata"
	"github.com/bitfsorg/tariscan-go/keys"
	"github.com/bitfsorg/tariscan-go/script"
	"github.com/bitfsorg/tariscan-go/transaction"
)

// --- Helper functions ---

func smallKey(t *testing.T, v byte) *keys.PrivateKey {
	t.Helper()
	b := make([]byte, keys.KeySize)
	b[0] = v
	k, err := keys.PrivateKeyFromBytes(b)
	require.NoError(t, err)
	return k
}

func generateKeyPair(t *testing.T) (*keys.PrivateKey, *keys.PublicKey) {
	t.Helper()
	k, err := keys.NewPrivateKey(rand.Reader)
	require.NoError(t, err)
	return k, k.PublicKey()
}

// --- Derivation vectors ---

func TestDerivations_KnownVectors(t *testing.T) {
	// S = 2 * (3*G) = 6*G
	ss := keys.NewSharedSecret(smallKey(t, 2), smallKey(t, 3).PublicKey())
	assert.Equal(t, "f64746d3c92b13050ed8d80236a7f0007c3b3f962f5ba793d19a601ebb1df403", hex.EncodeToString(ss.Bytes()))

	assert.Equal(t, "552ee103e1f9a4617ccea91544e4004a3d05df09b3e32e8319bc0cb8faf1730f", OutputEncryptionKey(ss).Hex())
	assert.Equal(t, "f5fd784f916c0cbf44269b41288706837c9f02fef064d6a9c66d38aac6e80300", OutputSpendingKey(ss).Hex())

	h := StealthHash(smallKey(t, 2), smallKey(t, 3).PublicKey())
	assert.Equal(t,
		"cb84910816714a9dac9d263eac93fd171877587f8947dc4d403001c3756487ad"+
			"8b62f280dff47add48892d83c2204afa6e790489276e28de7ee3e170588cfcdb",
		hex.EncodeToString(h))
}

func TestStealthHash_SenderReceiverAgree(t *testing.T) {
	view, viewPub := generateKeyPair(t)
	r, nonce := generateKeyPair(t)
	assert.Equal(t, StealthHash(r, viewPub), StealthHash(view, nonce))
}

func TestStealthScriptKeys_Consistent(t *testing.T) {
	spend, spendPub := generateKeyPair(t)
	h := bytes.Repeat([]byte{0x33}, 64)

	priv := StealthScriptPrivateKey(h, spend)
	pub := StealthScriptPublicKey(h, spendPub)
	assert.True(t, priv.PublicKey().Equal(pub))
	assert.False(t, pub.Equal(spendPub))
}

func TestEncryptionAndSpendingKeysDiffer(t *testing.T) {
	a, _ := generateKeyPair(t)
	_, bPub := generateKeyPair(t)
	ss := keys.NewSharedSecret(a, bPub)
	assert.False(t, OutputEncryptionKey(ss).Equal(OutputSpendingKey(ss)))
}

// --- Builder tests ---

func TestNewStealth_Decryptable(t *testing.T) {
	view, viewPub := generateKeyPair(t)
	spend, spendPub := generateKeyPair(t)

	built, err := NewStealth(1_000_000, viewPub, spendPub, WithPaymentID([]byte("invoice-7")))
	require.NoError(t, err)
	out := built.Output

	m := script.Classify(out.Script)
	require.Equal(t, script.Stealth, m.Kind)

	nonce, err := keys.PublicKeyFromBytes(m.Nonce[:])
	require.NoError(t, err)
	h := StealthHash(view, nonce)
	assert.Equal(t, m.ScriptKey, StealthScriptPrivateKey(h, spend).PublicKey().Array())

	senderOffset, err := out.SenderOffsetKey()
	require.NoError(t, err)
	ss := keys.NewSharedSecret(view, senderOffset)
	p, err := encdata.Decrypt(OutputEncryptionKey(ss), out.Commitment, out.EncryptedData)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), p.Value)
	assert.True(t, p.Mask.Equal(built.Mask))
	assert.Equal(t, []byte("invoice-7"), p.PaymentID)

	c, err := out.CommitmentValue()
	require.NoError(t, err)
	assert.True(t, keys.DefaultCommitmentFactory().Open(c, p.Mask, 1_000_000))
}

func TestNewOneSided_Decryptable(t *testing.T) {
	scriptKey, scriptPub := generateKeyPair(t)

	built, err := NewOneSided(250, scriptPub)
	require.NoError(t, err)

	m := script.Classify(built.Output.Script)
	require.Equal(t, script.OneSided, m.Kind)
	assert.Equal(t, scriptPub.Array(), m.ScriptKey)

	senderOffset, err := built.Output.SenderOffsetKey()
	require.NoError(t, err)
	ss := keys.NewSharedSecret(scriptKey, senderOffset)
	p, err := encdata.Decrypt(OutputEncryptionKey(ss), built.Output.Commitment, built.Output.EncryptedData)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), p.Value)
	assert.Nil(t, p.PaymentID)
}

func TestNewStealth_Deterministic(t *testing.T) {
	_, viewPub := generateKeyPair(t)
	_, spendPub := generateKeyPair(t)
	offset, _ := generateKeyPair(t)
	nonce, _ := generateKeyPair(t)

	build := func() []byte {
		b, err := NewStealth(5, viewPub, spendPub,
			WithSenderOffsetKey(offset),
			WithStealthNonce(nonce),
			WithRand(bytes.NewReader(bytes.Repeat([]byte{0x01}, 64))),
		)
		require.NoError(t, err)
		enc, err := b.Output.Encode()
		require.NoError(t, err)
		return enc
	}
	assert.Equal(t, build(), build())
}

func TestBuilder_Errors(t *testing.T) {
	_, pub := generateKeyPair(t)
	identity, err := keys.PublicKeyFromBytes(make([]byte, 32))
	require.NoError(t, err)

	_, err = NewOneSided(1, nil)
	assert.ErrorIs(t, err, ErrInvalidRecipient)
	_, err = NewOneSided(1, identity)
	assert.ErrorIs(t, err, ErrInvalidRecipient)
	_, err = NewStealth(1, identity, pub)
	assert.ErrorIs(t, err, ErrInvalidRecipient)
	_, err = NewStealth(1, pub, identity)
	assert.ErrorIs(t, err, ErrInvalidRecipient)

	_, err = NewOneSided(transaction.MaxSupply+1, pub)
	assert.ErrorIs(t, err, ErrValueTooLarge)

	_, err = NewOneSided(1, pub, WithPaymentID(make([]byte, encdata.MaxPaymentIDSize+1)))
	assert.ErrorIs(t, err, encdata.ErrPaymentIDTooLong)
}

func TestBuilder_Features(t *testing.T) {
	_, pub := generateKeyPair(t)
	f := transaction.OutputFeatures{OutputType: transaction.OutputTypeCoinbase, Maturity: 720}
	built, err := NewOneSided(1, pub, WithFeatures(f))
	require.NoError(t, err)
	assert.Equal(t, uint64(720), built.Output.Features.Maturity)
	assert.True(t, built.Output.Features.IsCoinbase())
}
