package transaction

import (
	"fmt"
	"math/bits"
)

// MicroMinotari is an amount in micro units. One Minotari (T) is 1_000_000 uT.
type MicroMinotari uint64

const (
	// MicroMinotariPerMinotari is the number of micro units in one T.
	MicroMinotariPerMinotari MicroMinotari = 1_000_000

	// MaxSupply is the total emission, 21 billion T. No honest output
	// carries more.
	MaxSupply MicroMinotari = 21_000_000_000 * MicroMinotariPerMinotari
)

// CheckedAdd returns m + o or ErrAmountOverflow.
func (m MicroMinotari) CheckedAdd(o MicroMinotari) (MicroMinotari, error) {
	sum, carry := bits.Add64(uint64(m), uint64(o), 0)
	if carry != 0 {
		return 0, ErrAmountOverflow
	}
	return MicroMinotari(sum), nil
}

// CheckedSub returns m - o or ErrAmountOverflow when o > m.
func (m MicroMinotari) CheckedSub(o MicroMinotari) (MicroMinotari, error) {
	diff, borrow := bits.Sub64(uint64(m), uint64(o), 0)
	if borrow != 0 {
		return 0, ErrAmountOverflow
	}
	return MicroMinotari(diff), nil
}

// ExceedsMaxSupply reports whether m is larger than the total emission.
func (m MicroMinotari) ExceedsMaxSupply() bool {
	return m > MaxSupply
}

// String formats the amount as "N µT".
func (m MicroMinotari) String() string {
	return fmt.Sprintf("%d µT", uint64(m))
}

// Minotari formats the amount in whole T with six decimals.
func (m MicroMinotari) Minotari() string {
	return fmt.Sprintf("%d.%06d T", m/MicroMinotariPerMinotari, m%MicroMinotariPerMinotari)
}
