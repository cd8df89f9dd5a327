package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/tariscan-go/onesided"
	"github.com/bitfsorg/tariscan-go/scanner"
)

// --- Key manager tests ---

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func newTestWallet(t *testing.T) *Wallet {
	t.Helper()
	seed, err := SeedFromMnemonic(testMnemonic, "")
	require.NoError(t, err)

	w, err := NewWallet(seed)
	require.NoError(t, err)
	t.Cleanup(w.Zeroize)
	return w
}

func TestKeyManager_Deterministic(t *testing.T) {
	seed := []byte("0123456789abcdef0123456789abcdef")
	m1, err := NewKeyManager(seed)
	require.NoError(t, err)
	m2, err := NewKeyManager(seed)
	require.NoError(t, err)

	k1, err := m1.DeriveKey(BranchScript, 3)
	require.NoError(t, err)
	k2, err := m2.DeriveKey(BranchScript, 3)
	require.NoError(t, err)
	assert.True(t, k1.Equal(k2))
	assert.False(t, k1.IsZero())
}

func TestKeyManager_Separation(t *testing.T) {
	m, err := NewKeyManager([]byte("seed"))
	require.NoError(t, err)

	seen := map[string]string{}
	for _, branch := range []string{BranchView, BranchSpend, BranchScript} {
		for i := uint64(0); i < 3; i++ {
			k, err := m.DeriveKey(branch, i)
			require.NoError(t, err)
			prev, dup := seen[k.Hex()]
			assert.False(t, dup, "%s/%d collides with %s", branch, i, prev)
			seen[k.Hex()] = branch
		}
	}
}

func TestKeyManager_CopiesSeed(t *testing.T) {
	seed := []byte("seed material")
	m, err := NewKeyManager(seed)
	require.NoError(t, err)
	before, err := m.DeriveKey(BranchView, 0)
	require.NoError(t, err)

	seed[0] ^= 0xff
	after, err := m.DeriveKey(BranchView, 0)
	require.NoError(t, err)
	assert.True(t, before.Equal(after))
}

func TestKeyManager_Errors(t *testing.T) {
	_, err := NewKeyManager(nil)
	assert.ErrorIs(t, err, ErrInvalidSeed)

	m, err := NewKeyManager([]byte("seed"))
	require.NoError(t, err)
	_, err = m.DeriveKey("", 0)
	assert.ErrorIs(t, err, ErrDerivationFailed)

	m.Zeroize()
	_, err = m.DeriveKey(BranchView, 0)
	assert.ErrorIs(t, err, ErrWalletZeroized)
}

// --- Wallet tests ---

func TestNewWallet(t *testing.T) {
	w := newTestWallet(t)
	k := w.Keys()
	require.NotNil(t, k.View)
	require.NotNil(t, k.Spend)
	assert.False(t, k.View.Equal(k.Spend))
	assert.True(t, w.ViewPublicKey().Equal(k.View.PublicKey()))
	assert.True(t, w.SpendPublicKey().Equal(k.Spend.PublicKey()))
}

func TestNewWallet_EmptySeed(t *testing.T) {
	_, err := NewWallet(nil)
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestNewWallet_SameSeedSameKeys(t *testing.T) {
	w1 := newTestWallet(t)
	w2 := newTestWallet(t)
	assert.True(t, w1.Keys().View.Equal(w2.Keys().View))
	assert.True(t, w1.Keys().Spend.Equal(w2.Keys().Spend))
}

func TestWallet_SoftwareKeyMaterial(t *testing.T) {
	w := newTestWallet(t)
	km, err := w.SoftwareKeyMaterial(3)
	require.NoError(t, err)
	assert.Same(t, w.Keys().Spend, km.Secret)
	require.Len(t, km.KnownScriptKeys, 3)

	k1, err := w.ScriptKey(1)
	require.NoError(t, err)
	assert.True(t, k1.Equal(km.KnownScriptKeys[1]))
}

func TestWallet_LedgerKeyMaterial(t *testing.T) {
	w := newTestWallet(t)
	km, err := w.LedgerKeyMaterial()
	require.NoError(t, err)
	assert.Same(t, w.Keys().View, km.View)
	assert.True(t, km.SpendPublic.Equal(w.SpendPublicKey()))
}

func TestWallet_Zeroize(t *testing.T) {
	seed, err := SeedFromMnemonic(testMnemonic, "")
	require.NoError(t, err)
	w, err := NewWallet(seed)
	require.NoError(t, err)

	w.Zeroize()
	assert.True(t, w.Keys().View.IsZero())
	assert.True(t, w.Keys().Spend.IsZero())
	_, err = w.ScriptKey(0)
	assert.ErrorIs(t, err, ErrWalletZeroized)
	_, err = w.SoftwareKeyMaterial(1)
	assert.ErrorIs(t, err, ErrWalletZeroized)
	_, err = w.LedgerKeyMaterial()
	assert.ErrorIs(t, err, ErrWalletZeroized)
}

// --- Integration: Full wallet workflow ---

func TestFullWalletWorkflow(t *testing.T) {
	mnemonic, err := GenerateMnemonic(Mnemonic12Words)
	require.NoError(t, err)

	seed, err := SeedFromMnemonic(mnemonic, "my-passphrase")
	require.NoError(t, err)
	assert.Len(t, seed, 64)

	encrypted, err := EncryptSeedWith(seed, "wallet-password", testKDF)
	require.NoError(t, err)

	decryptedSeed, err := DecryptSeed(encrypted, "wallet-password")
	require.NoError(t, err)

	w, err := NewWallet(decryptedSeed)
	require.NoError(t, err)
	defer w.Zeroize()

	// A stealth payment to the wallet's spend key, scanned both ways.
	spendPub := w.SpendPublicKey()
	built, err := onesided.NewStealth(2_500, spendPub, spendPub)
	require.NoError(t, err)

	soft, err := w.SoftwareKeyMaterial(0)
	require.NoError(t, err)
	p, err := scanner.New().Scan(built.Output, soft)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.EqualValues(t, 2_500, p.Value)

	// A plain one-sided payment to script key 2.
	scriptKey, err := w.ScriptKey(2)
	require.NoError(t, err)
	plain, err := onesided.NewOneSided(700, scriptKey.PublicKey())
	require.NoError(t, err)

	soft, err = w.SoftwareKeyMaterial(4)
	require.NoError(t, err)
	p, err = scanner.New().Scan(plain.Output, soft)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.ScriptKey.Equal(scriptKey))

	// A ledger holding the view key sees payments addressed to (view, spend).
	ledger, err := w.LedgerKeyMaterial()
	require.NoError(t, err)
	toLedger, err := onesided.NewStealth(9, w.ViewPublicKey(), spendPub)
	require.NoError(t, err)
	p, err = scanner.New().Scan(toLedger.Output, ledger)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Nil(t, p.ScriptKey)
}
