package dispatch

import (
	"errors"
	"fmt"
)

// Dispatch failures. All are recoverable by the caller, none is fatal.
// Parse failures are wrapped with the argument position and the
// offending token, so errors.Is against the sentinels keeps working.
var (
	ErrEmpty           = errors.New("empty input")
	ErrUnknownFunction = errors.New("unknown function")
	ErrWrongArity      = errors.New("wrong number of arguments")
	ErrBadBool         = errors.New("not a bool literal")
	ErrBadChar         = errors.New("not a single character")
	ErrBadUnsigned     = errors.New("not an unsigned integer literal")
	ErrBadSigned       = errors.New("not a signed integer literal")
	ErrBadFloat        = errors.New("not a float literal")
	ErrBadHexStr       = errors.New("not a hex string literal")
)

// ArityError reports an exact-arity mismatch, too few and too many
// arguments alike. It unwraps to ErrWrongArity.
type ArityError struct {
	Name     string
	Expected int
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("function '%s' takes exactly %d argument(s), got %d", e.Name, e.Expected, e.Got)
}

func (e *ArityError) Unwrap() error {
	return ErrWrongArity
}
