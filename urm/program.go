package urm

import (
	"fmt"
	"log"
	"math/big"
	"slices"
	"strings"

	"github.com/ezrec/urm/internal"
	"github.com/ezrec/urm/prime"
)

// State is a single entry of a StateTable.
type State struct {
	Index       int          // State index; 0 is the halt state.
	Prime       *big.Int     // Index prime; nil for the halt state.
	Code        *big.Int     // Exponent of Prime in the program number; nil if absent.
	Instruction *Instruction // Decoded instruction; nil if halt or invalid.
	Err         error        // Reason the state is invalid.
}

// Halt returns true for the synthetic halt state.
func (st *State) Halt() bool {
	return st.Index == 0
}

// Valid returns true if the state may be the target of a transition.
func (st *State) Valid() bool {
	return st.Halt() || (st.Err == nil && st.Instruction != nil)
}

// StateTable maps state indices 0..r to their decoded states.
type StateTable struct {
	States []State
}

// NewStateTable builds a table from instructions for states 1, 2, ...
// The table is not validated.
func NewStateTable(instructions ...Instruction) *StateTable {
	table := &StateTable{States: make([]State, 0, len(instructions)+1)}
	table.States = append(table.States, State{})
	for n := range instructions {
		ins := instructions[n]
		table.States = append(table.States, State{Index: n + 1, Instruction: &ins})
	}
	return table
}

// Len returns the number of program states, excluding the halt state.
func (table *StateTable) Len() int {
	if len(table.States) == 0 {
		return 0
	}
	return len(table.States) - 1
}

// State returns the state at index.
func (table *StateTable) State(index int) (st *State, ok bool) {
	if index < 0 || index >= len(table.States) {
		return
	}
	return &table.States[index], true
}

// Validate checks the reference closure of the table. Every valid state may
// only target states that exist and are valid, and the entry state 1 must
// be valid. States are scanned in ascending order.
func (table *StateTable) Validate() (err error) {
	err = table.checkReference(0, 1)
	if err != nil {
		return
	}

	for n := range table.States {
		st := &table.States[n]
		if st.Halt() || !st.Valid() {
			continue
		}
		for _, target := range st.Instruction.Targets {
			err = table.checkReference(st.Index, target)
			if err != nil {
				return
			}
		}
	}

	return
}

func (table *StateTable) checkReference(from, target int) error {
	st, ok := table.State(target)
	if !ok {
		return &ErrReference{State: from, Target: target, Err: ErrUnknownStateReference}
	}

	if !st.Valid() {
		cause := st.Err
		if cause == nil {
			cause = ErrStateAbsent
		}
		return &ErrReference{State: from, Target: target, Err: ErrInvalidStateReference, Cause: cause}
	}

	return nil
}

// newState decodes the instruction code of state index. A zero code is an
// absent state.
func newState(index int, q *big.Int, code *big.Int) (st State) {
	st = State{Index: index, Prime: q}
	if code.Sign() == 0 {
		st.Err = ErrStateAbsent
		return
	}

	st.Code = code
	ins, err := Decode(code)
	if err != nil {
		st.Err = err
		return
	}

	st.Instruction = &ins
	return
}

// Listing renders the table in assembler notation, one state per line, so
// that line i assembles to state i. Invalid and absent states keep their
// raw instruction code as a .code directive.
func (table *StateTable) Listing() string {
	var sb strings.Builder
	for n := range table.States {
		st := &table.States[n]
		if st.Halt() {
			continue
		}
		if !st.Valid() {
			reason := st.Err
			if reason == nil {
				reason = ErrStateAbsent
			}
			code := st.Code
			if code == nil {
				code = new(big.Int)
			}
			fmt.Fprintf(&sb, ".code %v ; %v: %v\n", code, stateName(st.Index), reason)
			continue
		}
		fmt.Fprintf(&sb, "%v ; %v: %v\n", st.Instruction.Mnemonic(), stateName(st.Index), st.Instruction.String())
	}
	return sb.String()
}

// Program decodes the program number n into a validated state table.
// The entry state 1 must be valid, see DecodeProgram.
func (dec *Decoder) Program(n *big.Int) (table *StateTable, err error) {
	if n.Cmp(big.NewInt(2)) < 0 {
		err = ErrProgramEmpty
		return
	}

	fact, err := prime.Factorize(n)
	if err != nil {
		return
	}

	primes, err := dec.sieve().PrimesUpTo(fact.Largest())
	if err != nil {
		return
	}

	if dec.Verbose {
		log.Printf("urm: program %v, %d states", fact.String(), len(primes))
	}

	decoded := &StateTable{States: make([]State, 1, len(primes)+1)}

	for index, q := range internal.IterSeqIndex(slices.Values(primes), 1) {
		st := newState(index, q, big.NewInt(int64(fact.Exponent(q))))

		if dec.Verbose {
			if st.Valid() {
				log.Printf("urm: %v: %v", stateName(index), st.Instruction)
			} else {
				log.Printf("urm: %v: %v", stateName(index), st.Err)
			}
		}

		decoded.States = append(decoded.States, st)
	}

	err = decoded.Validate()
	if err != nil {
		return
	}

	table = decoded
	return
}
