package script

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(b byte) [32]byte {
	var k [32]byte
	for i := range k {
		k[i] = b
	}
	return k
}

// --- Parse tests ---

func TestParse_RoundTrip(t *testing.T) {
	s := Script{PushPubKey(key(1)), Op(OpDrop), PushInt(500), Op(OpNop), PushPubKey(key(2))}
	parsed, err := Parse(s.Bytes())
	require.NoError(t, err)
	assert.Equal(t, s, parsed)
	assert.Equal(t, uint64(500), parsed[2].Int())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want error
	}{
		{"empty", nil, ErrEmpty},
		{"unknown opcode", []byte{0x01}, ErrUnknownOpcode},
		{"truncated pubkey", append([]byte{byte(OpPushPubKey)}, make([]byte, 31)...), ErrTruncated},
		{"truncated int", []byte{byte(OpPushInt), 1, 2}, ErrTruncated},
		{"trailing unknown", append(NewOneSided(key(1)).Bytes(), 0xff), ErrUnknownOpcode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "PushPubKey", OpPushPubKey.String())
	assert.Equal(t, "Opcode(0x01)", Opcode(0x01).String())
}

// --- Classify tests ---

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		raw       []byte
		wantKind  Kind
		wantKey   [32]byte
		wantNonce [32]byte
	}{
		{"one-sided", NewOneSided(key(7)).Bytes(), OneSided, key(7), [32]byte{}},
		{"stealth", NewStealth(key(3), key(9)).Bytes(), Stealth, key(9), key(3)},
		{"stealth with nop instead of drop",
			Script{PushPubKey(key(3)), Op(OpNop), PushPubKey(key(9))}.Bytes(), Unknown, [32]byte{}, [32]byte{}},
		{"two pushes", Script{PushPubKey(key(3)), PushPubKey(key(9))}.Bytes(), Unknown, [32]byte{}, [32]byte{}},
		{"nop", Script{Op(OpNop)}.Bytes(), Unknown, [32]byte{}, [32]byte{}},
		{"garbage", []byte{0xde, 0xad}, Unknown, [32]byte{}, [32]byte{}},
		{"empty", nil, Unknown, [32]byte{}, [32]byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Classify(tt.raw)
			assert.Equal(t, tt.wantKind, m.Kind)
			assert.Equal(t, tt.wantKey, m.ScriptKey)
			assert.Equal(t, tt.wantNonce, m.Nonce)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "OneSided", OneSided.String())
	assert.Equal(t, "Stealth", Stealth.String())
	assert.Equal(t, "Unknown", Unknown.String())
}

// --- Fuzz tests ---

func FuzzParseNoPanic(f *testing.F) {
	f.Add(NewStealth(key(1), key(2)).Bytes())
	f.Add([]byte{byte(OpPushPubKey)})
	f.Add(bytes.Repeat([]byte{byte(OpDrop)}, 10))
	f.Fuzz(func(t *testing.T, raw []byte) {
		s, err := Parse(raw)
		if err != nil {
			return
		}
		assert.Equal(t, raw, s.Bytes())
		_ = Classify(raw)
	})
}
