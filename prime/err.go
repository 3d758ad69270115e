package prime

import (
	"errors"
	"math/big"

	"github.com/ezrec/urm/translate"
)

var f = translate.From

var (
	ErrOutOfRange  = errors.New(f("sieve bound out of range"))
	ErrNotPositive = errors.New(f("not a positive integer"))
)

// ErrSieveBound reports a sieve bound above the configured ceiling.
type ErrSieveBound struct {
	Bound *big.Int
	Limit int
}

func (err *ErrSieveBound) Error() string {
	return f("sieve bound %v exceeds limit %v", err.Bound.String(), err.Limit)
}

func (err *ErrSieveBound) Unwrap() error {
	return ErrOutOfRange
}
