package urm

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ezrec/urm/prime"
)

var (
	primeRegister  = big.NewInt(2) // Exponent is the register index.
	primeDecrement = big.NewInt(3) // Present (exponent 1) for OP_DEC.
	primeNext      = big.NewInt(5) // Exponent is the first target.
	primeZero      = big.NewInt(7) // Exponent is the OP_DEC zero target.
)

// Instruction is a decoded program state.
type Instruction struct {
	Register int   // Register index, 1 or more.
	Kind     Kind  // Operation.
	Targets  []int // [next] for OP_INC, [nonzero, zero] for OP_DEC.
}

// MakeInc creates an increment instruction.
func MakeInc(register, next int) Instruction {
	return Instruction{Register: register, Kind: OP_INC, Targets: []int{next}}
}

// MakeDec creates a decrement-or-branch instruction.
func MakeDec(register, nonzero, zero int) Instruction {
	return Instruction{Register: register, Kind: OP_DEC, Targets: []int{nonzero, zero}}
}

// Validate checks that the instruction can be encoded and decoded back.
func (ins Instruction) Validate() error {
	if ins.Register < 1 {
		return ErrRegisterInvalid
	}

	if ins.Kind != OP_INC && ins.Kind != OP_DEC {
		return ErrOpcodeInvalid
	}

	if len(ins.Targets) != ins.Kind.Targets() {
		return ErrInstructionInvalid
	}

	for _, target := range ins.Targets {
		if target < 0 {
			return ErrTargetInvalid
		}
	}

	return nil
}

// Code encodes the instruction as 2^register * 3^dec * 5^next * 7^zero.
// Missing targets encode as zero; the instruction should pass Validate.
func (ins Instruction) Code() *big.Int {
	code := new(big.Int).Exp(primeRegister, big.NewInt(int64(ins.Register)), nil)

	if ins.Kind == OP_DEC {
		code.Mul(code, primeDecrement)
	}

	if len(ins.Targets) > 0 {
		code.Mul(code, new(big.Int).Exp(primeNext, big.NewInt(int64(ins.Targets[0])), nil))
	}

	if ins.Kind == OP_DEC && len(ins.Targets) > 1 {
		code.Mul(code, new(big.Int).Exp(primeZero, big.NewInt(int64(ins.Targets[1])), nil))
	}

	return code
}

// Next returns the state following the instruction for a register value.
func (ins Instruction) Next(zero bool) int {
	if ins.Kind == OP_DEC && zero {
		return ins.Targets[1]
	}
	return ins.Targets[0]
}

// Equal returns true if both instructions are identical.
func (ins Instruction) Equal(other Instruction) bool {
	if ins.Register != other.Register || ins.Kind != other.Kind || len(ins.Targets) != len(other.Targets) {
		return false
	}
	for n := range ins.Targets {
		if ins.Targets[n] != other.Targets[n] {
			return false
		}
	}
	return true
}

// String returns the tuple notation, e.g. "(2, -, 3, 0)".
func (ins Instruction) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(%d, %v", ins.Register, ins.Kind)
	for _, target := range ins.Targets {
		fmt.Fprintf(&sb, ", %d", target)
	}
	sb.WriteString(")")
	return sb.String()
}

// Mnemonic returns the assembler notation, e.g. "dec r2 s3 halt".
func (ins Instruction) Mnemonic() string {
	words := []string{ins.Kind.Mnemonic(), fmt.Sprintf("r%d", ins.Register)}
	for _, target := range ins.Targets {
		words = append(words, stateName(target))
	}
	return strings.Join(words, " ")
}

// stateName returns the assembler name of a state.
func stateName(state int) string {
	if state == 0 {
		return "halt"
	}
	return fmt.Sprintf("s%d", state)
}

// Encode returns the instruction code for an instruction descriptor.
func Encode(register int, kind Kind, targets ...int) (code *big.Int, err error) {
	ins := Instruction{Register: register, Kind: kind, Targets: targets}
	err = ins.Validate()
	if err != nil {
		return
	}

	code = ins.Code()
	return
}

// Decode classifies an instruction code.
func Decode(code *big.Int) (ins Instruction, err error) {
	fact, err := prime.Factorize(code)
	if err != nil {
		err = &ErrInstruction{Code: new(big.Int).Set(code), Err: err}
		return
	}

	fail := func(p *big.Int, reason error) error {
		err := &ErrInstruction{Code: new(big.Int).Set(code), Err: reason}
		if p != nil {
			err.Prime = new(big.Int).Set(p)
		}
		return err
	}

	for _, pf := range fact {
		if pf.Prime.Cmp(primeZero) > 0 {
			err = fail(pf.Prime, ErrInvalidPrimeFactor)
			return
		}
	}

	if !fact.Has(primeRegister) {
		err = fail(nil, ErrMissingRegisterField)
		return
	}
	ins.Register = fact.Exponent(primeRegister)

	next := fact.Exponent(primeNext)

	switch fact.Exponent(primeDecrement) {
	case 0:
		if fact.Has(primeZero) {
			err = fail(primeZero, ErrIllegalBranchFactor)
			return
		}
		ins.Kind = OP_INC
		ins.Targets = []int{next}
	case 1:
		ins.Kind = OP_DEC
		ins.Targets = []int{next, fact.Exponent(primeZero)}
	default:
		err = fail(primeDecrement, ErrInvalidOperationExponent)
		return
	}

	return
}
