package wallet

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/bitfsorg/tariscan-go/keys"
)

// SeedFileVersion is the envelope version written by EncryptSeed.
const SeedFileVersion = 1

// Envelope layout:
//
//	version(1) | time(4) | memory KiB(4) | threads(1) | salt(16) | nonce(24) | XChaCha20-Poly1305(seed)
//
// Everything before the ciphertext is authenticated as associated data, so
// the KDF parameters cannot be downgraded without failing decryption.
const (
	SaltLen   = 16
	NonceLen  = chacha20poly1305.NonceSizeX
	headerLen = 1 + 4 + 4 + 1 + SaltLen + NonceLen
)

// Upper bounds accepted when reading KDF parameters from a file.
const (
	maxKDFTime      = 16
	maxKDFMemoryKiB = 4 << 20
)

// KDFParams are the Argon2id cost parameters stored in a seed file.
type KDFParams struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultKDFParams is used by EncryptSeed.
var DefaultKDFParams = KDFParams{Time: 3, MemoryKiB: 64 * 1024, Threads: 4}

func (p KDFParams) validate() error {
	switch {
	case p.Time == 0 || p.Time > maxKDFTime:
		return fmt.Errorf("%w: time %d", ErrInvalidKDFParams, p.Time)
	case p.Threads == 0:
		return fmt.Errorf("%w: zero threads", ErrInvalidKDFParams)
	case p.MemoryKiB < 8*uint32(p.Threads) || p.MemoryKiB > maxKDFMemoryKiB:
		return fmt.Errorf("%w: memory %d KiB", ErrInvalidKDFParams, p.MemoryKiB)
	}
	return nil
}

func (p KDFParams) key(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, chacha20poly1305.KeySize)
}

// EncryptSeed seals seed under password with DefaultKDFParams.
func EncryptSeed(seed []byte, password string) ([]byte, error) {
	return EncryptSeedWith(seed, password, DefaultKDFParams)
}

// EncryptSeedWith seals seed under password, deriving the key with params.
// Salt and nonce are fresh for every call.
func EncryptSeedWith(seed []byte, password string, params KDFParams) ([]byte, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	header := make([]byte, headerLen, headerLen+len(seed)+chacha20poly1305.Overhead)
	header[0] = SeedFileVersion
	binary.BigEndian.PutUint32(header[1:5], params.Time)
	binary.BigEndian.PutUint32(header[5:9], params.MemoryKiB)
	header[9] = params.Threads
	salt, nonce := header[10:10+SaltLen], header[10+SaltLen:]
	if _, err := rand.Read(header[10:]); err != nil {
		return nil, fmt.Errorf("wallet: salt and nonce: %w", err)
	}

	key := params.key(password, salt)
	defer keys.Wipe(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("wallet: cipher: %w", err)
	}
	return aead.Seal(header, nonce, seed, header), nil
}

// DecryptSeed opens a seed file produced by EncryptSeed or EncryptSeedWith.
// A wrong password and a modified file both yield ErrDecryptionFailed.
func DecryptSeed(file []byte, password string) ([]byte, error) {
	if len(file) < headerLen+chacha20poly1305.Overhead {
		return nil, fmt.Errorf("%w: %d bytes", ErrDecryptionFailed, len(file))
	}
	if file[0] != SeedFileVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, file[0])
	}
	params := KDFParams{
		Time:      binary.BigEndian.Uint32(file[1:5]),
		MemoryKiB: binary.BigEndian.Uint32(file[5:9]),
		Threads:   file[9],
	}
	if err := params.validate(); err != nil {
		return nil, err
	}
	header := file[:headerLen]
	salt, nonce := header[10:10+SaltLen], header[10+SaltLen:]

	key := params.key(password, salt)
	defer keys.Wipe(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("wallet: cipher: %w", err)
	}
	seed, err := aead.Open(nil, nonce, file[headerLen:], header)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}
	return seed, nil
}
