// Package encdata encrypts and decrypts the (value, mask, payment id) payload
// that a sender attaches to every output.
//
// Layout of the encrypted field:
//
//	tag(16) || nonce(24) || XChaCha20-Poly1305(value u64 LE (8) || mask (32) || payment id (0..256))
//
// The AEAD key is bound to the output commitment:
//
//	aead_key = Blake2b-256(secure_nonce_kdf, "encrypted_value_and_mask") . chain(enc_key) . chain(commitment)
package encdata

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/bitfsorg/tariscan-go/hashing"
	"github.com/bitfsorg/tariscan-go/keys"
)

const (
	// TagSize is the Poly1305 tag length.
	TagSize = chacha20poly1305.Overhead

	// NonceSize is the extended nonce length.
	NonceSize = chacha20poly1305.NonceSizeX

	// ValueSize is the length of the little-endian value.
	ValueSize = 8

	// MaskSize is the length of the commitment mask.
	MaskSize = keys.KeySize

	// MaxPaymentIDSize is the largest payment id carried in the payload.
	MaxPaymentIDSize = 256

	// MinSize is the length of a payload with no payment id.
	MinSize = TagSize + NonceSize + ValueSize + MaskSize

	// MaxSize is the length of a payload with the largest payment id.
	MaxSize = MinSize + MaxPaymentIDSize
)

var aad = []byte("TARI_AAD_VALUE_AND_MASK_EXTEND_NONCE_VARIANT")

// Payload is a decrypted encrypted-data field.
type Payload struct {
	Value     uint64
	Mask      *keys.PrivateKey
	PaymentID []byte
}

// Zeroize clears the mask and payment id.
func (p *Payload) Zeroize() {
	if p == nil {
		return
	}
	p.Mask.Zeroize()
	keys.Wipe(p.PaymentID)
	p.Value = 0
}

// AEADKey derives the 32-byte cipher key from the output encryption key and
// the commitment the payload belongs to.
func AEADKey(encKey *keys.PrivateKey, commitment [32]byte) []byte {
	k := encKey.Bytes()
	defer keys.Wipe(k)
	return hashing.SecureNonceKDF.Hasher256(hashing.LabelEncryptedValueAndMask).
		Chain(k).
		Chain(commitment[:]).
		Finalize()
}

// Encrypt seals value, mask and paymentID for the output with the given
// commitment. A nil rnd uses crypto/rand for the nonce.
func Encrypt(encKey *keys.PrivateKey, commitment [32]byte, value uint64, mask *keys.PrivateKey, paymentID []byte, rnd io.Reader) ([]byte, error) {
	if len(paymentID) > MaxPaymentIDSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrPaymentIDTooLong, len(paymentID))
	}
	if rnd == nil {
		rnd = rand.Reader
	}

	key := AEADKey(encKey, commitment)
	defer keys.Wipe(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("encdata: cipher setup: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rnd, nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}

	plaintext := make([]byte, ValueSize+MaskSize+len(paymentID))
	defer keys.Wipe(plaintext)
	binary.LittleEndian.PutUint64(plaintext[:ValueSize], value)
	maskBytes := mask.Bytes()
	copy(plaintext[ValueSize:], maskBytes)
	keys.Wipe(maskBytes)
	copy(plaintext[ValueSize+MaskSize:], paymentID)

	sealed := aead.Seal(nil, nonce, plaintext, aad)
	ct, tag := sealed[:len(sealed)-TagSize], sealed[len(sealed)-TagSize:]

	out := make([]byte, 0, TagSize+NonceSize+len(ct))
	out = append(out, tag...)
	out = append(out, nonce...)
	out = append(out, ct...)
	return out, nil
}

// Decrypt opens an encrypted-data field. Length, authentication and mask
// parsing failures all return ErrDecryptionFailed.
func Decrypt(encKey *keys.PrivateKey, commitment [32]byte, data []byte) (*Payload, error) {
	if len(data) < MinSize || len(data) > MaxSize {
		return nil, ErrDecryptionFailed
	}

	key := AEADKey(encKey, commitment)
	defer keys.Wipe(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	tag := data[:TagSize]
	nonce := data[TagSize : TagSize+NonceSize]
	ct := data[TagSize+NonceSize:]

	// The cipher expects ciphertext || tag.
	buf := make([]byte, 0, len(ct)+TagSize)
	buf = append(buf, ct...)
	buf = append(buf, tag...)

	plaintext, err := aead.Open(buf[:0], nonce, buf, aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	defer keys.Wipe(plaintext)

	mask, err := keys.PrivateKeyFromBytes(plaintext[ValueSize : ValueSize+MaskSize])
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	p := &Payload{
		Value: binary.LittleEndian.Uint64(plaintext[:ValueSize]),
		Mask:  mask,
	}
	if rest := plaintext[ValueSize+MaskSize:]; len(rest) > 0 {
		p.PaymentID = append([]byte(nil), rest...)
	}
	return p, nil
}
