package transaction

import (
	"fmt"

	"github.com/near/borsh-go"
)

// Size limits enforced by the network on sidechain registration fields.
const (
	MaxTemplateNameLen = 32
	MaxURLLen          = 255
	MaxHashLen         = 32
)

// SideChainFeature variants.
const (
	SideChainValidatorNodeRegistration borsh.Enum = iota
	SideChainCodeTemplateRegistration
	SideChainConfidentialOutput
)

// SchnorrSignature is a Ristretto Schnorr signature (R, s).
type SchnorrSignature struct {
	PublicNonce [32]byte
	Signature   [32]byte
}

// ValidatorNodeSignature proves control of a validator node key.
type ValidatorNodeSignature struct {
	PublicKey [32]byte
	Signature SchnorrSignature
}

// ValidatorNodeRegistration registers a validator node for a sidechain.
type ValidatorNodeRegistration struct {
	Signature ValidatorNodeSignature
}

// WasmTemplate is the payload of a WASM template.
type WasmTemplate struct {
	ABIVersion uint16
}

// TemplateType is Wasm, Flow or Manifest.
type TemplateType struct {
	Enum     borsh.Enum `borsh_enum:"true"`
	Wasm     WasmTemplate
	Flow     struct{}
	Manifest struct{}
}

// BuildInfo locates the source a template was built from.
type BuildInfo struct {
	RepoURL    string
	CommitHash []byte
}

// CodeTemplateRegistration publishes a template binary.
type CodeTemplateRegistration struct {
	AuthorPublicKey [32]byte
	AuthorSignature SchnorrSignature
	TemplateName    string
	TemplateVersion uint16
	TemplateType    TemplateType
	BuildInfo       BuildInfo
	BinarySHA       []byte
	BinaryURL       string
}

// ConfidentialOutputData marks an output claimable on a sidechain.
type ConfidentialOutputData struct {
	ClaimPublicKey [32]byte
}

// SideChainFeature is the optional sidechain payload of OutputFeatures. Only
// the field selected by Enum is encoded.
type SideChainFeature struct {
	Enum                      borsh.Enum `borsh_enum:"true"`
	ValidatorNodeRegistration ValidatorNodeRegistration
	CodeTemplateRegistration  CodeTemplateRegistration
	ConfidentialOutput        ConfidentialOutputData
}

// String implements fmt.Stringer.
func (s *SideChainFeature) String() string {
	switch s.Enum {
	case SideChainValidatorNodeRegistration:
		return "ValidatorNodeRegistration"
	case SideChainCodeTemplateRegistration:
		return "CodeTemplateRegistration"
	case SideChainConfidentialOutput:
		return "ConfidentialOutput"
	default:
		return fmt.Sprintf("SideChainFeature(%d)", uint8(s.Enum))
	}
}

func (s *SideChainFeature) validate() error {
	if s.Enum != SideChainCodeTemplateRegistration {
		return nil
	}
	r := &s.CodeTemplateRegistration
	switch {
	case len(r.TemplateName) > MaxTemplateNameLen:
		return fmt.Errorf("template name is %d bytes", len(r.TemplateName))
	case len(r.BinaryURL) > MaxURLLen, len(r.BuildInfo.RepoURL) > MaxURLLen:
		return fmt.Errorf("template URL longer than %d bytes", MaxURLLen)
	case len(r.BinarySHA) > MaxHashLen, len(r.BuildInfo.CommitHash) > MaxHashLen:
		return fmt.Errorf("template hash longer than %d bytes", MaxHashLen)
	case r.TemplateType.Enum > 2:
		return fmt.Errorf("template type %d", r.TemplateType.Enum)
	}
	return nil
}
