package binding

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/tariscan-go/keys"
	"github.com/bitfsorg/tariscan-go/network"
	"github.com/bitfsorg/tariscan-go/onesided"
	"github.com/bitfsorg/tariscan-go/scanner"
)

func newKey(t *testing.T) *keys.PrivateKey {
	t.Helper()
	k, err := keys.NewPrivateKey(nil)
	require.NoError(t, err)
	return k
}

func outputHex(t *testing.T, b *onesided.Built) string {
	t.Helper()
	h, err := b.Output.Hex()
	require.NoError(t, err)
	return h
}

// --- ScanOutput tests ---

func TestScanOutput_Stealth(t *testing.T) {
	wallet := newKey(t)
	built, err := onesided.NewStealth(12_345, wallet.PublicKey(), wallet.PublicKey(),
		onesided.WithPaymentID([]byte{0xca, 0xfe}))
	require.NoError(t, err)

	r, err := ScanOutput(nil, wallet.Hex(), outputHex(t, built))
	require.NoError(t, err)
	require.NotNil(t, r)

	wantHash, err := built.Output.Hash(network.MainNet.Byte())
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(wantHash[:]), r.Hash)
	assert.Equal(t, "StealthOneSided", r.OutputSource)
	assert.Equal(t, "Standard", r.OutputType)
	assert.Equal(t, uint64(12_345), r.Value)
	assert.Equal(t, built.Mask.Hex(), r.SpendingKey)
	assert.Len(t, r.ScriptKey, 64)
	assert.Equal(t, "cafe", r.PaymentID)
}

func TestScanOutput_KnownScriptKey(t *testing.T) {
	wallet := newKey(t)
	scriptKey := newKey(t)
	built, err := onesided.NewOneSided(1, scriptKey.PublicKey())
	require.NoError(t, err)

	r, err := ScanOutput([]string{newKey(t).Hex(), scriptKey.Hex()}, wallet.Hex(), outputHex(t, built))
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "OneSided", r.OutputSource)
	assert.Equal(t, scriptKey.Hex(), r.ScriptKey)

	r, err = ScanOutput(nil, wallet.Hex(), outputHex(t, built))
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestScanOutput_InvalidInput(t *testing.T) {
	wallet := newKey(t)
	built, err := onesided.NewStealth(1, wallet.PublicKey(), wallet.PublicKey())
	require.NoError(t, err)
	good := outputHex(t, built)

	tests := []struct {
		name   string
		known  []string
		wallet string
		output string
	}{
		{"bad wallet hex", nil, "zz", good},
		{"short wallet key", nil, "0102", good},
		{"zero wallet key", nil, strings.Repeat("00", 32), good},
		{"bad known key", []string{"nothex"}, wallet.Hex(), good},
		{"bad output hex", nil, wallet.Hex(), "xyz"},
		{"truncated output", nil, wallet.Hex(), good[:40]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ScanOutput(tt.known, tt.wallet, tt.output)
			assert.ErrorIs(t, err, scanner.ErrInvalidInput)
			assert.Nil(t, r)
		})
	}
}

// --- ScanOutputLedger tests ---

func TestScanOutputLedger(t *testing.T) {
	view := newKey(t)
	spend := newKey(t)
	built, err := onesided.NewStealth(900, view.PublicKey(), spend.PublicKey())
	require.NoError(t, err)

	r, err := ScanOutputLedger(view.Hex(), spend.PublicKey().Hex(), outputHex(t, built))
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, uint64(900), r.Value)
	assert.Empty(t, r.ScriptKey)
	assert.Equal(t, built.Mask.Hex(), r.SpendingKey)

	_, err = ScanOutputLedger(view.Hex(), "00", outputHex(t, built))
	assert.ErrorIs(t, err, scanner.ErrInvalidInput)
	_, err = ScanOutputLedger(view.Hex(), strings.Repeat("00", 32), outputHex(t, built))
	assert.ErrorIs(t, err, scanner.ErrInvalidInput, "identity spend key")
}

func TestScanOutputLedgerWith_Network(t *testing.T) {
	view := newKey(t)
	built, err := onesided.NewStealth(1, view.PublicKey(), view.PublicKey())
	require.NoError(t, err)

	s := scanner.New(scanner.WithNetwork(network.Esmeralda))
	r, err := ScanOutputLedgerWith(s, view.Hex(), view.PublicKey().Hex(), outputHex(t, built))
	require.NoError(t, err)
	require.NotNil(t, r)

	want, err := built.Output.Hash(network.Esmeralda.Byte())
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want[:]), r.Hash)
}

// --- Envelope tests ---

func TestEnvelope(t *testing.T) {
	assert.JSONEq(t, `{}`, string(Envelope(nil, nil).JSON()))
	assert.JSONEq(t, `{"error":"boom"}`, string(Envelope(nil, errors.New("boom")).JSON()))

	r := &Result{Hash: "ab", OutputSource: "OneSided", OutputType: "Standard", Value: 5, SpendingKey: "cd", Maturity: 2}
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(Envelope(r, nil).JSON(), &decoded))
	assert.Equal(t, "ab", decoded["hash"])
	assert.Equal(t, float64(5), decoded["value"])
	assert.Equal(t, float64(2), decoded["maturity"])
	assert.NotContains(t, decoded, "script_key")
	assert.NotContains(t, decoded, "error")
}
