// Package onesided holds the key derivations of one-sided and stealth
// one-sided payments, shared by the receiving scanner and the sending side.
//
// Stealth address (receiver holds view key v and spend key k_spend):
//
//	R       = r*G                      (nonce published in the script)
//	h       = Blake2b-512(wallet, "stealth_address") . chain(r*K_view)   (= v*R)
//	K_s     = from_uniform(h)*G + K_spend
//	k_s     = from_uniform(h) + k_spend
//
// Encrypted value and mask (sender offset key k_o, K_O = k_o*G):
//
//	S       = k_o*K_recv                (= k_recv*K_O)
//	enc_key = from_uniform(Blake2b-512(output_encryption_keys) . chain(S))
//	mask    = from_uniform(Blake2b-512(output_spending_keys) . chain(S))
package onesided

import (
	"github.com/bitfsorg/tariscan-go/hashing"
	"github.com/bitfsorg/tariscan-go/keys"
)

// OutputEncryptionKey derives the key that encrypts an output's payload from
// a Diffie-Hellman shared secret.
func OutputEncryptionKey(ss *keys.SharedSecret) *keys.PrivateKey {
	return fromDomain(hashing.OutputEncryptionKeys, ss)
}

// OutputSpendingKey derives the commitment mask a sender assigns to a
// one-sided output.
func OutputSpendingKey(ss *keys.SharedSecret) *keys.PrivateKey {
	return fromDomain(hashing.OutputSpendingKeys, ss)
}

func fromDomain(d hashing.Domain, ss *keys.SharedSecret) *keys.PrivateKey {
	h := d.Hasher512("").Chain(ss.Bytes()).Finalize()
	defer keys.Wipe(h)
	k, err := keys.PrivateKeyFromUniform(h)
	if err != nil {
		// Blake2b-512 always yields 64 bytes.
		panic(err)
	}
	return k
}

// StealthHash computes the stealth-address hash for secret sk and public
// point P. The receiver passes (view key, nonce R); the sender passes
// (nonce secret r, recipient view key). The result is secret.
func StealthHash(sk *keys.PrivateKey, p *keys.PublicKey) []byte {
	ss := keys.NewSharedSecret(sk, p)
	defer ss.Zeroize()
	return hashing.Wallet.Hasher512(hashing.LabelStealthAddress).Chain(ss.Bytes()).Finalize()
}

// StealthOffset reduces a stealth hash to the scalar added to the spend key.
func StealthOffset(h []byte) *keys.PrivateKey {
	k, err := keys.PrivateKeyFromUniform(h)
	if err != nil {
		panic(err)
	}
	return k
}

// StealthScriptPublicKey returns from_uniform(h)*G + spend.
func StealthScriptPublicKey(h []byte, spend *keys.PublicKey) *keys.PublicKey {
	offset := StealthOffset(h)
	defer offset.Zeroize()
	return keys.AddPublicKeys(offset.PublicKey(), spend)
}

// StealthScriptPrivateKey returns from_uniform(h) + spend.
func StealthScriptPrivateKey(h []byte, spend *keys.PrivateKey) *keys.PrivateKey {
	offset := StealthOffset(h)
	defer offset.Zeroize()
	return new(keys.PrivateKey).Add(offset, spend)
}
