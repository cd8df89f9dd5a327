package transaction

import "fmt"

// OutputType says what an output is used for.
type OutputType uint8

const (
	OutputTypeStandard OutputType = iota
	OutputTypeCoinbase
	OutputTypeBurn
	OutputTypeValidatorNodeRegistration
	OutputTypeCodeTemplateRegistration
)

// String implements fmt.Stringer.
func (t OutputType) String() string {
	switch t {
	case OutputTypeStandard:
		return "Standard"
	case OutputTypeCoinbase:
		return "Coinbase"
	case OutputTypeBurn:
		return "Burn"
	case OutputTypeValidatorNodeRegistration:
		return "ValidatorNodeRegistration"
	case OutputTypeCodeTemplateRegistration:
		return "CodeTemplateRegistration"
	default:
		return fmt.Sprintf("OutputType(%d)", uint8(t))
	}
}

// RangeProofType selects how an output proves its value is in range.
type RangeProofType uint8

const (
	RangeProofBulletProofPlus RangeProofType = iota
	RangeProofRevealedValue
)

// OutputFeatures are the consensus-visible attributes of an output.
type OutputFeatures struct {
	Version        uint8
	OutputType     OutputType
	Maturity       uint64
	CoinbaseExtra  []byte
	// SideChain is nil for ordinary outputs.
	SideChain      *SideChainFeature
	RangeProofType RangeProofType
}

// IsCoinbase reports whether the output is a coinbase.
func (f OutputFeatures) IsCoinbase() bool {
	return f.OutputType == OutputTypeCoinbase
}
