package script

// Kind classifies an output script.
type Kind uint8

const (
	// Unknown is any script that is not a one-sided payment script.
	Unknown Kind = iota
	// OneSided is [PushPubKey(K)].
	OneSided
	// Stealth is [PushPubKey(R), Drop, PushPubKey(K_s)].
	Stealth
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case OneSided:
		return "OneSided"
	case Stealth:
		return "Stealth"
	default:
		return "Unknown"
	}
}

// Match is the result of classifying a script. Keys are raw 32-byte
// encodings; they are not validated as group elements here.
type Match struct {
	Kind Kind
	// ScriptKey is K (one-sided) or K_s (stealth).
	ScriptKey [32]byte
	// Nonce is the stealth nonce R; zero for other kinds.
	Nonce [32]byte
}

// Classify recognises the two one-sided script shapes. Scripts that fail to
// parse are Unknown.
func Classify(raw []byte) Match {
	s, err := Parse(raw)
	if err != nil {
		return Match{Kind: Unknown}
	}
	switch {
	case len(s) == 1 && s[0].Op == OpPushPubKey:
		var m Match
		m.Kind = OneSided
		copy(m.ScriptKey[:], s[0].Operand)
		return m
	case len(s) == 3 && s[0].Op == OpPushPubKey && s[1].Op == OpDrop && s[2].Op == OpPushPubKey:
		var m Match
		m.Kind = Stealth
		copy(m.Nonce[:], s[0].Operand)
		copy(m.ScriptKey[:], s[2].Operand)
		return m
	default:
		return Match{Kind: Unknown}
	}
}

// NewOneSided builds [PushPubKey(K)].
func NewOneSided(scriptKey [32]byte) Script {
	return Script{PushPubKey(scriptKey)}
}

// NewStealth builds [PushPubKey(R), Drop, PushPubKey(K_s)].
func NewStealth(nonce, scriptKey [32]byte) Script {
	return Script{PushPubKey(nonce), Op(OpDrop), PushPubKey(scriptKey)}
}
