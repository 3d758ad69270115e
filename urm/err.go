package urm

import (
	"errors"
	"math/big"

	"github.com/ezrec/urm/translate"
)

var f = translate.From

var (
	// Instruction decode errors
	ErrInvalidPrimeFactor       = errors.New(f("invalid prime factor"))
	ErrMissingRegisterField     = errors.New(f("missing register field"))
	ErrInvalidOperationExponent = errors.New(f("invalid operation exponent"))
	ErrIllegalBranchFactor      = errors.New(f("illegal branch factor"))
	ErrInstructionInvalid       = errors.New(f("instruction invalid"))

	// Program errors
	ErrProgramEmpty          = errors.New(f("program number must be greater than 1"))
	ErrStateAbsent           = errors.New(f("state prime absent"))
	ErrUnknownStateReference = errors.New(f("unknown state reference"))
	ErrInvalidStateReference = errors.New(f("invalid state reference"))

	// Register tuple errors
	ErrTupleFactor      = errors.New(f("2 cannot be a factor of a register tuple"))
	ErrTooManyRegisters = errors.New(f("too many registers"))
	ErrTupleNotPositive = errors.New(f("register tuple must be positive"))
	ErrRegisterCount    = errors.New(f("register count must not be negative"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelReserved   = errors.New(f("label is a state name"))
	ErrCodeSyntax      = errors.New(f(".code syntax"))
	ErrOpcodeExtraArgs = errors.New(f("excessive arguments"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrTargetMissing   = errors.New(f("target missing"))
	ErrTargetInvalid   = errors.New(f("target invalid"))
)

// ErrInstruction is an instruction code that does not decode.
type ErrInstruction struct {
	Code  *big.Int // Instruction code being decoded.
	Prime *big.Int // Offending prime, if any.
	Err   error
}

func (err *ErrInstruction) Error() string {
	if err.Prime != nil {
		return f("instruction %v: %v %v", err.Code.String(), err.Err, err.Prime.String())
	}
	return f("instruction %v: %v", err.Code.String(), err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}

// ErrReference is a state that refers to a missing or invalid state.
// State 0 refers to state 1, the entry point.
type ErrReference struct {
	State  int   // Referring state.
	Target int   // Referenced state.
	Err    error // ErrUnknownStateReference or ErrInvalidStateReference.
	Cause  error // Why the target is invalid, if it exists.
}

func (err *ErrReference) Error() string {
	if errors.Is(err.Err, ErrUnknownStateReference) {
		return f("state %v does not exist, referenced from state %v", err.Target, err.State)
	}
	if err.Cause != nil {
		return f("state %v is not valid, referenced from state %v: %v", err.Target, err.State, err.Cause)
	}
	return f("state %v is not valid, referenced from state %v", err.Target, err.State)
}

func (err *ErrReference) Unwrap() []error {
	if err.Cause == nil {
		return []error{err.Err}
	}
	return []error{err.Err, err.Cause}
}

// ErrTuple is a register tuple that does not decode.
type ErrTuple struct {
	K     int      // Declared register count.
	Prime *big.Int // Offending prime, if any.
	Err   error
}

func (err *ErrTuple) Error() string {
	if err.Prime != nil {
		return f("%v-tuple: %v (prime %v)", err.K, err.Err, err.Prime.String())
	}
	return f("%v-tuple: %v", err.K, err.Err)
}

func (err *ErrTuple) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
