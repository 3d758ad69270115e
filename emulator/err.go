package emulator

import (
	"errors"

	"github.com/ezrec/urm/translate"
)

var f = translate.From

var (
	ErrStateInvalid = errors.New(f("state has no instruction"))
)

// ErrRuntime indicates the state of a runtime error.
type ErrRuntime struct {
	State int
	Err   error
}

func (err *ErrRuntime) Error() string {
	return f("state %d %v", err.State, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
