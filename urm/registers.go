package urm

import (
	"fmt"
	"log"
	"maps"
	"math/big"
	"slices"
	"strings"

	"github.com/ezrec/urm/internal"
	"github.com/ezrec/urm/prime"
)

// RegisterFile maps register indices to values. Missing registers are zero.
type RegisterFile map[int]*big.Int

// Get returns a copy of the value of register r.
func (rf RegisterFile) Get(r int) *big.Int {
	value, ok := rf[r]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(value)
}

// Set assigns a copy of value to register r.
func (rf RegisterFile) Set(r int, value *big.Int) {
	rf[r] = new(big.Int).Set(value)
}

// Clone returns a deep copy of the register file.
func (rf RegisterFile) Clone() RegisterFile {
	clone := make(RegisterFile, len(rf))
	for r, value := range rf {
		clone[r] = new(big.Int).Set(value)
	}
	return clone
}

// Indices returns the explicitly held register indices in ascending order.
func (rf RegisterFile) Indices() []int {
	return slices.Sorted(maps.Keys(rf))
}

// Equal returns true if both files hold the same values, treating missing
// registers as zero.
func (rf RegisterFile) Equal(other RegisterFile) bool {
	for r := range rf {
		if rf.Get(r).Cmp(other.Get(r)) != 0 {
			return false
		}
	}
	for r := range other {
		if rf.Get(r).Cmp(other.Get(r)) != 0 {
			return false
		}
	}
	return true
}

// String renders the file as "{1: 0, 2: 5}".
func (rf RegisterFile) String() string {
	terms := []string{}
	for _, r := range rf.Indices() {
		terms = append(terms, fmt.Sprintf("%d: %v", r, rf[r]))
	}
	return "{" + strings.Join(terms, ", ") + "}"
}

// Registers decodes the tuple number m into registers 1..k.
func (dec *Decoder) Registers(m *big.Int, k int) (regs RegisterFile, err error) {
	if k < 0 {
		err = &ErrTuple{K: k, Err: ErrRegisterCount}
		return
	}

	if m.Sign() <= 0 {
		err = &ErrTuple{K: k, Err: ErrTupleNotPositive}
		return
	}

	fact, err := prime.Factorize(m)
	if err != nil {
		return
	}

	if fact.Has(primeRegister) {
		err = &ErrTuple{K: k, Prime: big.NewInt(2), Err: ErrTupleFactor}
		return
	}

	var primes []*big.Int
	if len(fact) > 0 {
		primes, err = dec.sieve().PrimesUpTo(fact.Largest())
		if err != nil {
			return
		}
		primes = primes[1:]
	}

	if len(primes) > k {
		err = &ErrTuple{K: k, Prime: fact.Largest(), Err: ErrTooManyRegisters}
		return
	}

	regs = make(RegisterFile, k)
	for r := 1; r <= k; r++ {
		regs[r] = new(big.Int)
	}

	for r, q := range internal.IterSeqIndex(slices.Values(primes), 1) {
		regs[r].SetInt64(int64(fact.Exponent(q)))
	}

	if dec.Verbose {
		log.Printf("urm: %v-tuple %v: %v", k, fact.String(), regs)
	}

	return
}

// EncodeTuple returns the tuple number 3^v1 * 5^v2 * ... for the values of
// registers 1, 2, ...
func EncodeTuple(values ...*big.Int) (m *big.Int, err error) {
	primes, err := prime.Sieve{}.First(len(values) + 1)
	if err != nil {
		return
	}

	m = big.NewInt(1)
	for n, value := range values {
		if value.Sign() < 0 {
			m = nil
			err = &ErrTuple{K: len(values), Err: ErrTupleNotPositive}
			return
		}
		m.Mul(m, new(big.Int).Exp(primes[n+1], value, nil))
	}

	return
}
