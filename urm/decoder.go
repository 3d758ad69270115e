package urm

import (
	"math/big"

	"github.com/ezrec/urm/prime"
)

// Decoder turns program and tuple numbers into state tables and registers.
// The zero Decoder is ready to use.
type Decoder struct {
	Verbose    bool // If set, logs each decoded state.
	SieveLimit int  // Largest prime the decoder will sieve; zero selects prime.DefaultSieveLimit.
}

func (dec *Decoder) sieve() prime.Sieve {
	return prime.Sieve{Limit: dec.SieveLimit}
}

// DecodeProgram decodes and validates a program number with a zero Decoder.
//
// Execution starts at state 1, so it is checked as if referenced from the
// halt state 0. A program whose state 1 is absent or invalid, such as
// n = 2^7, fails with an *ErrReference{State: 0, Target: 1} even when no
// other state refers to state 1.
func DecodeProgram(n *big.Int) (*StateTable, error) {
	return (&Decoder{}).Program(n)
}

// DecodeRegisters decodes a k-register tuple number with a zero Decoder.
func DecodeRegisters(m *big.Int, k int) (RegisterFile, error) {
	return (&Decoder{}).Registers(m, k)
}

// EncodeInstruction returns the instruction code for a descriptor.
func EncodeInstruction(register int, kind Kind, targets ...int) (*big.Int, error) {
	return Encode(register, kind, targets...)
}
