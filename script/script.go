// Package script parses the small subset of the output locking-script
// language that one-sided payments use. It does not execute scripts.
package script

import (
	"encoding/binary"
	"fmt"
)

// Opcode is a single-byte script instruction.
type Opcode byte

// Supported opcodes.
const (
	OpCheckHeightVerify Opcode = 0x66
	OpDrop              Opcode = 0x70
	OpDup               Opcode = 0x71
	OpNop               Opcode = 0x73
	OpPushHash          Opcode = 0x7a
	OpPushZero          Opcode = 0x7b
	OpPushOne           Opcode = 0x7c
	OpPushInt           Opcode = 0x7d
	OpPushPubKey        Opcode = 0x7e
)

// operandLen returns the operand size of op, or -1 if op is not supported.
func operandLen(op Opcode) int {
	switch op {
	case OpDrop, OpDup, OpNop, OpPushZero, OpPushOne:
		return 0
	case OpCheckHeightVerify, OpPushInt:
		return 8
	case OpPushHash, OpPushPubKey:
		return 32
	default:
		return -1
	}
}

// String implements fmt.Stringer.
func (op Opcode) String() string {
	switch op {
	case OpCheckHeightVerify:
		return "CheckHeightVerify"
	case OpDrop:
		return "Drop"
	case OpDup:
		return "Dup"
	case OpNop:
		return "Nop"
	case OpPushHash:
		return "PushHash"
	case OpPushZero:
		return "PushZero"
	case OpPushOne:
		return "PushOne"
	case OpPushInt:
		return "PushInt"
	case OpPushPubKey:
		return "PushPubKey"
	default:
		return fmt.Sprintf("Opcode(0x%02x)", byte(op))
	}
}

// Instruction is an opcode with its operand, if any.
type Instruction struct {
	Op      Opcode
	Operand []byte
}

// Int returns the operand of PushInt or CheckHeightVerify as an integer.
func (i Instruction) Int() uint64 {
	if len(i.Operand) != 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(i.Operand)
}

// Script is a parsed instruction sequence.
type Script []Instruction

// Parse decodes raw script bytes. Any unsupported opcode or short operand
// fails the whole script.
func Parse(raw []byte) (Script, error) {
	if len(raw) == 0 {
		return nil, ErrEmpty
	}
	var out Script
	for i := 0; i < len(raw); {
		op := Opcode(raw[i])
		n := operandLen(op)
		if n < 0 {
			return nil, fmt.Errorf("%w: 0x%02x at offset %d", ErrUnknownOpcode, raw[i], i)
		}
		i++
		if len(raw)-i < n {
			return nil, fmt.Errorf("%w: %s at offset %d", ErrTruncated, op, i-1)
		}
		ins := Instruction{Op: op}
		if n > 0 {
			ins.Operand = append([]byte(nil), raw[i:i+n]...)
		}
		out = append(out, ins)
		i += n
	}
	return out, nil
}

// Bytes encodes the script.
func (s Script) Bytes() []byte {
	var out []byte
	for _, ins := range s {
		out = append(out, byte(ins.Op))
		out = append(out, ins.Operand...)
	}
	return out
}

// PushPubKey returns a PushPubKey instruction for a 32-byte key encoding.
func PushPubKey(key [32]byte) Instruction {
	return Instruction{Op: OpPushPubKey, Operand: append([]byte(nil), key[:]...)}
}

// PushInt returns a PushInt instruction.
func PushInt(v uint64) Instruction {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return Instruction{Op: OpPushInt, Operand: b}
}

// Op returns an instruction without operand.
func Op(op Opcode) Instruction {
	return Instruction{Op: op}
}
