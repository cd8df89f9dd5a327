package script

import "errors"

var (
	// ErrUnknownOpcode indicates a byte that is not a supported opcode.
	ErrUnknownOpcode = errors.New("script: unknown opcode")

	// ErrTruncated indicates an opcode whose operand runs past the end of the script.
	ErrTruncated = errors.New("script: truncated operand")

	// ErrEmpty indicates a script with no instructions.
	ErrEmpty = errors.New("script: empty script")
)
